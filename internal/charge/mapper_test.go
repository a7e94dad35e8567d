package charge_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sagehenstudio/cap-one-wave/internal/api/wave"
	"github.com/sagehenstudio/cap-one-wave/internal/charge"
	"github.com/sagehenstudio/cap-one-wave/internal/config"
)

const (
	utilitiesAccountID = wave.AccountID("QWNjb3VudDp1dGlsaXRpZXM=")
	defaultExpenseID   = "QWNjb3VudDp1bmNhdGVnb3JpemVk"
	liabilityID        = "QWNjb3VudDpjYXBpdGFsb25l"
)

func testSettings() config.Settings {
	return config.Settings{
		APIToken:           "real-token",
		BusinessID:         "QnVzaW5lc3M6YWJjMTIz",
		LiabilityAccountID: liabilityID,
		ExpenseAccountID:   defaultExpenseID,
		WebhookIdentifier:  config.DefaultWebhookIdentifier,
	}
}

func normalizedCharge(t *testing.T, payee string) charge.NormalizedCharge {
	t.Helper()

	normalized, err := charge.Normalize(context.Background(), charge.Notification{
		Date:   "3/1/2022",
		Amount: "54.99",
		Payee:  payee,
	})
	require.NoError(t, err)

	return normalized
}

func TestMapperMap(t *testing.T) {
	t.Parallel()

	t.Run("fixed transaction shape", func(t *testing.T) {
		t.Parallel()

		mapper := charge.NewMapper()
		input := mapper.Map(normalizedCharge(t, "Acme Co"), testSettings())

		require.Equal(t, wave.BusinessID("QnVzaW5lc3M6YWJjMTIz"), input.BusinessID)
		require.Equal(t, "2022-03-01", input.Date)
		require.Equal(t, "Acme Co", input.Description)

		require.Equal(t, wave.AccountID(liabilityID), input.Anchor.AccountID)
		require.Equal(t, wave.DirectionWithdrawal, input.Anchor.Direction)

		require.Len(t, input.LineItems, 1)
		require.Equal(t, wave.AccountID(defaultExpenseID), input.LineItems[0].AccountID)
		require.Equal(t, wave.BalanceDebit, input.LineItems[0].Balance)

		expected := decimal.RequireFromString("54.99")
		require.True(t, expected.Equal(input.Anchor.Amount), "anchor amount should be the charge amount")
		require.True(t, input.Anchor.Amount.Equal(input.LineItems[0].Amount), "both legs must carry the same amount")

		require.Regexp(t, `^uid:[A-Z][0-9][A-Z][0-9][A-Z]$`, input.ExternalID)
	})

	t.Run("categorization is case-insensitive", func(t *testing.T) {
		t.Parallel()

		mapper := charge.NewMapper(charge.WithCategorizer(charge.NewCategoryMap(map[string]wave.AccountID{
			"verizon": utilitiesAccountID,
		})))

		input := mapper.Map(normalizedCharge(t, "Verizon"), testSettings())
		require.Equal(t, utilitiesAccountID, input.LineItems[0].AccountID)
	})

	t.Run("unmapped payee falls back to the default expense account", func(t *testing.T) {
		t.Parallel()

		mapper := charge.NewMapper(charge.WithCategorizer(charge.NewCategoryMap(map[string]wave.AccountID{
			"verizon": utilitiesAccountID,
		})))

		input := mapper.Map(normalizedCharge(t, "Unknown Corp"), testSettings())
		require.Equal(t, wave.AccountID(defaultExpenseID), input.LineItems[0].AccountID)
	})

	t.Run("custom external ID strategy", func(t *testing.T) {
		t.Parallel()

		mapper := charge.NewMapper(charge.WithExternalIDFunc(func() string {
			return "uid:fixed"
		}))

		input := mapper.Map(normalizedCharge(t, "Acme Co"), testSettings())
		require.Equal(t, "uid:fixed", input.ExternalID)
	})

	t.Run("each mapping generates a fresh external ID", func(t *testing.T) {
		t.Parallel()

		mapper := charge.NewMapper(charge.WithExternalIDFunc(charge.UUIDExternalID))
		settings := testSettings()
		normalized := normalizedCharge(t, "Acme Co")

		first := mapper.Map(normalized, settings)
		second := mapper.Map(normalized, settings)
		require.NotEqual(t, first.ExternalID, second.ExternalID)
	})
}
