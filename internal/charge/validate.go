package charge

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Notification is a raw charge alert as relayed by the automation
// dispatcher. All three fields must be present and non-empty; a partial
// notification is dropped, never half-processed.
type Notification struct {
	Date   string // M/D/YYYY
	Amount string
	Payee  string
}

func (n Notification) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, &n,
		validation.Field(&n.Date, validation.Required.Error("date is required")),
		validation.Field(&n.Amount, validation.Required.Error("amount is required")),
		validation.Field(&n.Payee, validation.Required.Error("payee is required")),
	)
}

// NormalizedCharge is a validated notification with the date in Wave's
// format and the amount parsed exactly. Immutable once built.
type NormalizedCharge struct {
	Date   string // YYYY-MM-DD
	Amount decimal.Decimal
	Payee  string
}

// Normalize validates a notification and converts it into a
// NormalizedCharge. No I/O happens here: a failure means the charge is
// dropped before any network call. Fields are trimmed first so a
// whitespace-only value counts as missing.
func Normalize(ctx context.Context, n Notification) (NormalizedCharge, error) {
	n.Date = strings.TrimSpace(n.Date)
	n.Amount = strings.TrimSpace(n.Amount)
	n.Payee = strings.TrimSpace(n.Payee)

	if err := n.Validate(ctx); err != nil {
		return NormalizedCharge{}, fmt.Errorf("invalid notification: %w", err)
	}

	date, err := NormalizeDate(n.Date)
	if err != nil {
		return NormalizedCharge{}, err
	}

	amount, err := decimal.NewFromString(n.Amount)
	if err != nil {
		return NormalizedCharge{}, fmt.Errorf("invalid amount %q: %w", n.Amount, err)
	}

	return NormalizedCharge{
		Date:   date,
		Amount: amount,
		Payee:  n.Payee,
	}, nil
}
