package charge_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sagehenstudio/cap-one-wave/internal/charge"
)

func TestNotificationValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		notification charge.Notification
		expectErr    bool
	}{
		"complete": {
			notification: charge.Notification{Date: "1/31/2021", Amount: "54.99", Payee: "Acme Co"},
		},
		"missing payee": {
			notification: charge.Notification{Date: "1/31/2021", Amount: "54.99"},
			expectErr:    true,
		},
		"missing date": {
			notification: charge.Notification{Amount: "54.99", Payee: "Acme Co"},
			expectErr:    true,
		},
		"missing amount": {
			notification: charge.Notification{Date: "1/31/2021", Payee: "Acme Co"},
			expectErr:    true,
		},
		"all empty": {
			notification: charge.Notification{},
			expectErr:    true,
		},
	}
	for name, test := range tests {
		test := test
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := test.notification.Validate(context.Background())

			if test.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("valid notification", func(t *testing.T) {
		t.Parallel()

		normalized, err := charge.Normalize(context.Background(), charge.Notification{
			Date:   "3/1/2022",
			Amount: "54.99",
			Payee:  "Acme Co",
		})
		require.NoError(t, err)
		require.Equal(t, "2022-03-01", normalized.Date)
		require.Equal(t, "Acme Co", normalized.Payee)
		require.True(t, decimal.RequireFromString("54.99").Equal(normalized.Amount))
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		t.Parallel()

		normalized, err := charge.Normalize(context.Background(), charge.Notification{
			Date:   " 3/1/2022 ",
			Amount: " 54.99\n",
			Payee:  "  Acme Co  ",
		})
		require.NoError(t, err)
		require.Equal(t, "2022-03-01", normalized.Date)
		require.Equal(t, "Acme Co", normalized.Payee)
		require.True(t, decimal.RequireFromString("54.99").Equal(normalized.Amount))
	})

	t.Run("whitespace-only payee is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := charge.Normalize(context.Background(), charge.Notification{
			Date:   "3/1/2022",
			Amount: "54.99",
			Payee:  "   ",
		})
		require.Error(t, err)
		require.ErrorContains(t, err, "invalid notification")
	})

	t.Run("missing payee fails before date parsing", func(t *testing.T) {
		t.Parallel()

		_, err := charge.Normalize(context.Background(), charge.Notification{
			Date:   "not-a-date",
			Amount: "54.99",
		})
		require.Error(t, err)
		require.ErrorContains(t, err, "invalid notification")
	})

	t.Run("bad date", func(t *testing.T) {
		t.Parallel()

		_, err := charge.Normalize(context.Background(), charge.Notification{
			Date:   "2021-01-31",
			Amount: "54.99",
			Payee:  "Acme Co",
		})

		var dateErr charge.DateFormatError
		require.ErrorAs(t, err, &dateErr)
	})

	t.Run("unparseable amount", func(t *testing.T) {
		t.Parallel()

		_, err := charge.Normalize(context.Background(), charge.Notification{
			Date:   "1/31/2021",
			Amount: "$54.99",
			Payee:  "Acme Co",
		})
		require.Error(t, err)
		require.ErrorContains(t, err, "invalid amount")
	})
}
