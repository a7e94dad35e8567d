// Package config holds the Wave credentials and account identifiers the
// charge pipeline runs against. Settings are an input the core never
// mutates; the Provider interface lets callers decide whether they are
// read fresh per operation or fixed at construction.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Placeholder values seeded into fresh installations. A token or business
// ID still equal to its placeholder means the operator has not finished
// setup, and any Wave call is expected to fail.
const (
	PlaceholderToken      = "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"
	PlaceholderBusinessID = "xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"

	DefaultWebhookIdentifier = "cap-one-zap-wave"
	DefaultListenAddr        = ":8080"
)

type Settings struct {
	APIToken           string `mapstructure:"api_token"`
	BusinessID         string `mapstructure:"business_id"`
	LiabilityAccountID string `mapstructure:"liability_account_id"`
	ExpenseAccountID   string `mapstructure:"expense_account_id"`
	WebhookIdentifier  string `mapstructure:"webhook_identifier"`
	ListenAddr         string `mapstructure:"listen_addr"`
	CategoryMapPath    string `mapstructure:"category_map"`
}

// Configured reports whether the credentials have been changed from their
// placeholder values. An unconfigured install is surfaced as a standing
// operator advisory, not as per-event errors.
func (s Settings) Configured() bool {
	return s.APIToken != "" && s.APIToken != PlaceholderToken &&
		s.BusinessID != "" && s.BusinessID != PlaceholderBusinessID
}

func (s Settings) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &s,
		validation.Field(&s.APIToken, validation.Required.Error("API token is required")),
		validation.Field(&s.BusinessID, validation.Required.Error("business ID is required")),
		validation.Field(&s.LiabilityAccountID, validation.Required.Error("liability account ID is required")),
		validation.Field(&s.ExpenseAccountID, validation.Required.Error("expense account ID is required")),
	)
}

type Provider interface {
	Settings(ctx context.Context) (Settings, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (Settings, error)

func (fn ProviderFunc) Settings(ctx context.Context) (Settings, error) {
	return fn(ctx)
}

// Static returns a Provider that always yields the given settings.
func Static(s Settings) Provider {
	return ProviderFunc(func(_ context.Context) (Settings, error) {
		return s, nil
	})
}

// Load reads settings from a capwave.yaml config file (working directory)
// and CAPWAVE_* environment variables, with a .env file honoured if
// present. Environment variables win over the config file. Missing
// credentials fall back to the placeholder sentinels so Configured()
// reports the unconfigured state rather than Load failing.
func Load() (Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("capwave")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CAPWAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_token", PlaceholderToken)
	v.SetDefault("business_id", PlaceholderBusinessID)
	v.SetDefault("liability_account_id", "")
	v.SetDefault("expense_account_id", "")
	v.SetDefault("webhook_identifier", DefaultWebhookIdentifier)
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("category_map", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return settings, nil
}
