package charge

import (
	"github.com/sagehenstudio/cap-one-wave/internal/api/wave"
	"github.com/sagehenstudio/cap-one-wave/internal/config"
)

// Mapper builds the moneyTransactionCreate input for a normalized charge.
// The transaction shape is fixed: the liability account is the anchor leg
// and is always a withdrawal, the expense account is a single line item
// and is always a debit, both for the full charge amount. Refunds,
// transfers, and multi-line splits are not supported.
//
// The categorization and external-ID strategies are injected at
// construction; the defaults are no categorization (everything lands in
// the configured default expense account) and the weak 5-character token
// (see NewExternalID).
type Mapper struct {
	categorizer Categorizer
	externalID  ExternalIDFunc
}

type MapperOption func(*Mapper)

func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{
		externalID: NewExternalID,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(m)
	}

	return m
}

func WithCategorizer(categorizer Categorizer) MapperOption {
	return func(m *Mapper) {
		m.categorizer = categorizer
	}
}

func WithExternalIDFunc(fn ExternalIDFunc) MapperOption {
	return func(m *Mapper) {
		m.externalID = fn
	}
}

// Map is pure apart from external-ID generation: it performs no I/O and
// does not retain the request it builds.
func (m *Mapper) Map(charge NormalizedCharge, settings config.Settings) wave.MoneyTransactionInput {
	expenseAccountID := wave.AccountID(settings.ExpenseAccountID)
	if m.categorizer != nil {
		if accountID, ok := m.categorizer.ExpenseAccount(charge.Payee); ok {
			expenseAccountID = accountID
		}
	}

	return wave.MoneyTransactionInput{
		BusinessID:  wave.BusinessID(settings.BusinessID),
		ExternalID:  m.externalID(),
		Date:        charge.Date,
		Description: charge.Payee,
		Anchor: wave.MoneyTransactionAnchor{
			AccountID: wave.AccountID(settings.LiabilityAccountID),
			Amount:    charge.Amount,
			Direction: wave.DirectionWithdrawal,
		},
		LineItems: []wave.MoneyTransactionLineItem{
			{
				AccountID: expenseAccountID,
				Amount:    charge.Amount,
				Balance:   wave.BalanceDebit,
			},
		},
	}
}
