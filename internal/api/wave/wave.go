// Package wave is a minimal client for the Wave Accounting public GraphQL
// API, covering the single mutation and the two read queries this project
// needs. Every call is an authenticated POST to one fixed endpoint, made
// exactly once: failed calls are returned as errors, never retried.
package wave

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/samber/lo"
	resty "resty.dev/v3"

	"github.com/sagehenstudio/cap-one-wave/internal/api"
)

const (
	prodAPI         = "https://gql.waveapps.com/graphql/public"
	defaultPageSize = 100
	maxPageSize     = 500
)

const (
	createMoneyTransactionQuery = `mutation ($inputMoneyTransactionCreate: MoneyTransactionCreateInput!) { moneyTransactionCreate(input: $inputMoneyTransactionCreate) { didSucceed, inputErrors { code, message, path } } }`
	fetchAccountsQuery          = `query ($businessId: ID!, $types: [AccountTypeValue!], $page: Int!, $pageSize: Int!) { business(id: $businessId) { accounts(types: $types, page: $page, pageSize: $pageSize) { pageInfo { currentPage, totalPages, totalCount } edges { node { id, name, type, subtype, isArchived } } } } }`
	fetchBusinessesQuery        = `query { businesses { edges { node { id, name } } } }`
)

type Client interface {
	CreateMoneyTransaction(ctx context.Context, input MoneyTransactionInput) (*MoneyTransactionResult, error)
	FetchAccounts(ctx context.Context, opts FetchAccountsOptions) ([]*Account, error)
	FetchBusinesses(ctx context.Context) ([]*Business, error)
}

var _ Client = (*client)(nil)

type client struct {
	api *api.BaseClient
}

type Option func(*client)

func New(httpClient *http.Client, opts ...Option) *client {
	c := &client{
		api: api.New(
			prodAPI,
			httpClient,
			api.WithErrorUnmarshaller(func(r *resty.Response) error {
				return UnmarshalError(r.StatusCode(), r.Bytes())
			}),
		),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(c)
	}

	return c
}

// WithAuthToken sets the Wave full-access token. The "Bearer " prefix is
// added if not already present.
func WithAuthToken(authToken string) Option {
	return func(c *client) {
		api.WithAuthToken(bearer(authToken))(c.api)
	}
}

// WithAuthTokenFunc consults the given callback for the current
// full-access token on every request, so a token rotated at the source is
// picked up without rebuilding the client. The "Bearer " prefix is added
// if not already present.
func WithAuthTokenFunc(authTokenFn func() string) Option {
	return func(c *client) {
		api.WithAuthTokenFunc(func() string {
			return bearer(authTokenFn())
		})(c.api)
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		api.WithBaseURL(baseURL)(c.api)
	}
}

func bearer(token string) string {
	token = strings.TrimSpace(token)
	if !strings.HasPrefix(token, "Bearer ") {
		token = "Bearer " + token
	}

	return token
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

func (c *client) CreateMoneyTransaction(ctx context.Context, input MoneyTransactionInput) (*MoneyTransactionResult, error) {
	var result struct {
		Data struct {
			MoneyTransactionCreate *MoneyTransactionResult `json:"moneyTransactionCreate"`
		} `json:"data"`
		Errors []GraphQLError `json:"errors"`
	}

	body := graphQLRequest{
		Query: createMoneyTransactionQuery,
		Variables: map[string]any{
			"inputMoneyTransactionCreate": input,
		},
	}

	_, err := c.api.ExecuteRequest(ctx, http.MethodPost, "", body, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to create money transaction: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("moneyTransactionCreate query rejected: %s", result.Errors[0].Message)
	}

	if result.Data.MoneyTransactionCreate == nil {
		return nil, fmt.Errorf("malformed moneyTransactionCreate response: missing data")
	}

	return result.Data.MoneyTransactionCreate, nil
}

type FetchAccountsOptions struct {
	BusinessID BusinessID
	Types      []AccountType
	Page       int
	PageSize   int
}

func (fao *FetchAccountsOptions) Validate(ctx context.Context) error {
	return validation.ValidateStructWithContext(ctx, fao,
		validation.Field(&fao.BusinessID, validation.Required.Error("business ID is required")),
		validation.Field(&fao.Types, validation.Required.Error("at least one account type is required")),
		validation.Field(&fao.Page, validation.Min(0).Error("page must be non-negative")),
		validation.Field(&fao.PageSize, validation.Min(0).Error("page size must be non-negative"), validation.Max(maxPageSize).Error("page size is too large")),
	)
}

// FetchAccounts returns one page of the business's accounts matching the
// given types. Archived accounts are included; hiding them is the
// consumer's concern.
func (c *client) FetchAccounts(ctx context.Context, opts FetchAccountsOptions) ([]*Account, error) {
	if err := opts.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if opts.Page == 0 {
		opts.Page = 1
	}

	if opts.PageSize == 0 {
		opts.PageSize = defaultPageSize
	}

	var result struct {
		Data struct {
			Business struct {
				Accounts struct {
					PageInfo PageInfo      `json:"pageInfo"`
					Edges    []accountEdge `json:"edges"`
				} `json:"accounts"`
			} `json:"business"`
		} `json:"data"`
		Errors []GraphQLError `json:"errors"`
	}

	body := graphQLRequest{
		Query: fetchAccountsQuery,
		Variables: map[string]any{
			"businessId": opts.BusinessID,
			"types":      opts.Types,
			"page":       opts.Page,
			"pageSize":   opts.PageSize,
		},
	}

	_, err := c.api.ExecuteRequest(ctx, http.MethodPost, "", body, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("accounts query rejected: %s", result.Errors[0].Message)
	}

	return lo.Map(result.Data.Business.Accounts.Edges, func(edge accountEdge, _ int) *Account {
		return edge.Node
	}), nil
}

func (c *client) FetchBusinesses(ctx context.Context) ([]*Business, error) {
	var result struct {
		Data struct {
			Businesses struct {
				Edges []businessEdge `json:"edges"`
			} `json:"businesses"`
		} `json:"data"`
		Errors []GraphQLError `json:"errors"`
	}

	body := graphQLRequest{Query: fetchBusinessesQuery}

	_, err := c.api.ExecuteRequest(ctx, http.MethodPost, "", body, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch businesses: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("businesses query rejected: %s", result.Errors[0].Message)
	}

	return lo.Map(result.Data.Businesses.Edges, func(edge businessEdge, _ int) *Business {
		return edge.Node
	}), nil
}

type (
	accountEdge struct {
		Node *Account `json:"node"`
	}
	businessEdge struct {
		Node *Business `json:"node"`
	}
)
