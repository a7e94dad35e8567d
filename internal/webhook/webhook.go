// Package webhook is the HTTP ingress for charge notifications relayed by
// the automation dispatcher (Capital One alert -> Zapier -> webhook). It
// implements the dispatcher's callback contract: a return-args value
// passed through unchanged, an identifier that must match the configured
// one, and a content payload carrying the charge fields.
package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/sagehenstudio/cap-one-wave/internal/charge"
	"github.com/sagehenstudio/cap-one-wave/internal/config"
)

// Recorder is the charge pipeline entry point; satisfied by
// *charge.Recorder.
type Recorder interface {
	Record(ctx context.Context, n charge.Notification) charge.Result
}

// FieldExtractor pulls one charge field out of the dispatcher's content
// payload. Injectable because dispatchers differ in how they encode
// values (strings vs. JSON numbers).
type FieldExtractor func(content map[string]any, key string) string

// ExtractField is the default FieldExtractor: strings are trimmed, JSON
// numbers are formatted without a forced exponent, everything else is
// treated as absent.
func ExtractField(content map[string]any, key string) string {
	switch value := content[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		return value.String()
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return ""
	}
}

type Service struct {
	settings config.Provider
	recorder Recorder
	extract  FieldExtractor
	router   chi.Router
}

type Option func(*Service)

func WithFieldExtractor(extract FieldExtractor) Option {
	return func(s *Service) {
		s.extract = extract
	}
}

func New(settings config.Provider, recorder Recorder, opts ...Option) *Service {
	s := &Service{
		settings: settings,
		recorder: recorder,
		extract:  ExtractField,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/webhook", s.handleWebhook)
	r.Get("/healthz", s.handleHealth)

	s.router = r

	return s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// callbackPayload mirrors the dispatcher's custom-action callback body.
// The content keys are the upstream automation tool's names (date, amt,
// payee).
type callbackPayload struct {
	ReturnArgs map[string]any `json:"return_args"`
	Identifier string         `json:"identifier"`
	Content    map[string]any `json:"content"`
}

type callbackResponse struct {
	ReturnArgs map[string]any `json:"return_args"`
	Processed  bool           `json:"processed"`
	Succeeded  bool           `json:"succeeded"`
}

// Dispatch applies the callback contract to one delivery. When the
// identifier does not match the configured one the delivery is not for
// us: no validation, no mapping, no network call, and the return args go
// back unchanged. The return args are never modified in either case.
func (s *Service) Dispatch(ctx context.Context, returnArgs map[string]any, identifier string, content map[string]any) (map[string]any, bool, charge.Result) {
	logger := zerolog.Ctx(ctx)

	settings, err := s.settings.Settings(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load settings")
		return returnArgs, false, charge.Result{}
	}

	if identifier != settings.WebhookIdentifier {
		logger.Debug().
			Str("webhook.identifier", identifier).
			Msg("ignoring delivery with unexpected identifier")

		return returnArgs, false, charge.Result{}
	}

	n := charge.Notification{
		Date:   s.extract(content, "date"),
		Amount: s.extract(content, "amt"),
		Payee:  s.extract(content, "payee"),
	}

	return returnArgs, true, s.recorder.Record(ctx, n)
}

func (s *Service) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload callbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to decode webhook payload")
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	returnArgs, processed, result := s.Dispatch(r.Context(), payload.ReturnArgs, payload.Identifier, payload.Content)

	writeJSON(w, callbackResponse{
		ReturnArgs: returnArgs,
		Processed:  processed,
		Succeeded:  result.Succeeded,
	})
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	configured := false
	if settings, err := s.settings.Settings(r.Context()); err == nil {
		configured = settings.Configured()
	}

	writeJSON(w, map[string]any{
		"status":     "ok",
		"configured": configured,
	})
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(body)
}
