// Package charge turns Capital One charge notifications into Wave money
// transactions: validate the payload, normalize the date, map it onto the
// moneyTransactionCreate mutation, submit it once, and interpret the
// result.
//
// Every failure mode (bad payload, bad date, transport error, Wave
// rejection) is handled here: it is logged with full context and folded
// into the returned Result. Nothing propagates to the caller as an error,
// and nothing is retried; a caller wanting redelivery leaves that to the
// upstream dispatcher.
package charge

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/sagehenstudio/cap-one-wave/internal/api/wave"
	"github.com/sagehenstudio/cap-one-wave/internal/config"
)

// Result is the outcome of one recording attempt. Errors carries Wave's
// structured input errors when the mutation was rejected; it is empty for
// local validation and transport failures (those are only logged).
type Result struct {
	Succeeded bool
	Errors    []wave.InputError
}

type Recorder struct {
	settings config.Provider
	wave     wave.Client
	mapper   *Mapper
}

// NewRecorder wires the pipeline. Settings are read from the provider
// fresh on every recording, so credential changes take effect without a
// restart. A nil mapper gets the defaults (no categorization, weak
// external IDs).
func NewRecorder(settings config.Provider, client wave.Client, mapper *Mapper) *Recorder {
	if mapper == nil {
		mapper = NewMapper()
	}

	return &Recorder{
		settings: settings,
		wave:     client,
		mapper:   mapper,
	}
}

// Record runs a single notification through the pipeline and blocks until
// Wave answers or the call times out. It never returns an error: the
// Result says whether the charge was recorded, and the logs say why not.
func (r *Recorder) Record(ctx context.Context, n Notification) Result {
	logger := zerolog.Ctx(ctx)

	charge, err := Normalize(ctx, n)
	if err != nil {
		logger.Error().
			Err(err).
			Str("charge.date", n.Date).
			Str("charge.amount", n.Amount).
			Str("charge.payee", n.Payee).
			Msg("dropping charge notification")

		return Result{}
	}

	settings, err := r.settings.Settings(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load settings")
		return Result{}
	}

	input := r.mapper.Map(charge, settings)

	result, err := r.wave.CreateMoneyTransaction(ctx, input)
	if err != nil {
		logger.Error().
			Err(err).
			Str("charge.external_id", input.ExternalID).
			Str("charge.date", input.Date).
			Str("charge.payee", input.Description).
			Msg("failed to record charge in Wave")

		return Result{}
	}

	if !result.DidSucceed {
		logger.Error().
			Str("charge.external_id", input.ExternalID).
			Interface("wave.input_errors", result.InputErrors).
			Msg("Wave rejected charge")

		return Result{Errors: result.InputErrors}
	}

	logger.Info().
		Str("charge.external_id", input.ExternalID).
		Str("charge.date", input.Date).
		Str("charge.amount", charge.Amount.String()).
		Str("charge.payee", input.Description).
		Msg("recorded charge in Wave")

	return Result{Succeeded: true}
}
