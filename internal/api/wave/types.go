package wave

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type (
	BusinessID string
	AccountID  string
)

type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeExpense   AccountType = "EXPENSE"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeLiability AccountType = "LIABILITY"
)

type Account struct {
	ID         AccountID   `json:"id"`
	Name       string      `json:"name"`
	Type       AccountType `json:"type"`
	Subtype    string      `json:"subtype"`
	IsArchived bool        `json:"isArchived"`
}

type Business struct {
	ID   BusinessID `json:"id"`
	Name string     `json:"name"`
}

type PageInfo struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
}

type TransactionDirection string

const (
	DirectionDeposit    TransactionDirection = "DEPOSIT"
	DirectionWithdrawal TransactionDirection = "WITHDRAWAL"
)

type LineItemBalance string

const (
	BalanceCredit LineItemBalance = "CREDIT"
	BalanceDebit  LineItemBalance = "DEBIT"
)

// MoneyTransactionAnchor is the primary leg of a money transaction: the
// account the money moves through (here, the liability account being
// charged).
type MoneyTransactionAnchor struct {
	AccountID AccountID            `json:"accountId"`
	Amount    decimal.Decimal      `json:"amount"`
	Direction TransactionDirection `json:"direction"`
}

type MoneyTransactionLineItem struct {
	AccountID AccountID       `json:"accountId"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   LineItemBalance `json:"balance"`
}

type MoneyTransactionInput struct {
	BusinessID  BusinessID                 `json:"businessId"`
	ExternalID  string                     `json:"externalId"`
	Date        string                     `json:"date"` // YYYY-MM-DD
	Description string                     `json:"description"`
	Anchor      MoneyTransactionAnchor     `json:"anchor"`
	LineItems   []MoneyTransactionLineItem `json:"lineItems"`
}

type InputError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

func (e InputError) String() string {
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Path, "."))
}

// MoneyTransactionResult is the decoded moneyTransactionCreate payload.
// DidSucceed false with populated InputErrors is a well-formed rejection,
// not a transport failure.
type MoneyTransactionResult struct {
	DidSucceed  bool         `json:"didSucceed"`
	InputErrors []InputError `json:"inputErrors"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type Error struct {
	HTTPStatus int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (err Error) Error() string {
	return fmt.Sprintf("%s (http status=%d)", err.Message, err.HTTPStatus)
}

func UnmarshalError(status int, body []byte) error {
	if len(body) != 0 {
		apiError := Error{}
		if err := json.Unmarshal(body, &apiError); err == nil && apiError.Message != "" {
			apiError.HTTPStatus = status
			return apiError
		}
	}

	return Error{
		HTTPStatus: status,
		Code:       "unknown",
		Message:    "unknown",
	}
}
