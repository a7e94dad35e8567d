package capwave

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sagehenstudio/cap-one-wave/internal/api/wave"
	"github.com/sagehenstudio/cap-one-wave/internal/charge"
	"github.com/sagehenstudio/cap-one-wave/internal/config"
	"github.com/sagehenstudio/cap-one-wave/internal/webhook"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the charge webhook server",
	Long:  `Listens for charge notifications from the automation dispatcher and records each one as a Wave money transaction.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	ServeCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides the listen_addr setting)")
}

func runServe(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if !settings.Configured() {
		logger.Warn().Msg("Wave credentials are not configured; charges will be dropped until the API token and business ID are set")
	}

	var categorizer charge.Categorizer
	if settings.CategoryMapPath != "" {
		categoryMap, err := charge.LoadCategoryMap(settings.CategoryMapPath)
		if err != nil {
			return err
		}

		logger.Info().
			Int("categories", len(categoryMap)).
			Str("path", settings.CategoryMapPath).
			Msg("loaded expense category map")

		categorizer = categoryMap
	}

	// Settings are re-read per delivery so credential changes apply
	// without a restart. The Wave client pulls its bearer token from the
	// same fresh source on every request; a failed reload falls back to
	// the startup token.
	provider := config.ProviderFunc(func(_ context.Context) (config.Settings, error) {
		return config.Load()
	})

	client := wave.New(&http.Client{}, wave.WithAuthTokenFunc(func() string {
		current, err := config.Load()
		if err != nil {
			return settings.APIToken
		}

		return current.APIToken
	}))
	recorder := charge.NewRecorder(provider, client, charge.NewMapper(charge.WithCategorizer(categorizer)))
	service := webhook.New(provider, recorder)

	addr := settings.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           service,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return logger.WithContext(context.Background())
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", addr).Msg("webhook server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("webhook server failed: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
