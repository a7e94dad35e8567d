package capwave

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/sagehenstudio/cap-one-wave/internal/api/wave"
	"github.com/sagehenstudio/cap-one-wave/internal/config"
)

var (
	accountsType         string
	accountsPage         int
	accountsPageSize     int
	accountsShowArchived bool
)

var AccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List Wave accounts of a given type",
	Long:  `Lists the business's Wave accounts so their IDs can be copied into the liability and expense account settings. Archived accounts are hidden unless --all is set.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAccounts(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	AccountsCmd.Flags().StringVar(&accountsType, "type", string(wave.AccountTypeLiability), "Account type (ASSET, EQUITY, EXPENSE, INCOME, LIABILITY)")
	AccountsCmd.Flags().IntVar(&accountsPage, "page", 1, "Result page")
	AccountsCmd.Flags().IntVar(&accountsPageSize, "page-size", 100, "Results per page")
	AccountsCmd.Flags().BoolVar(&accountsShowArchived, "all", false, "Include archived accounts")
}

func runAccounts(ctx context.Context, output io.Writer) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if !settings.Configured() {
		return fmt.Errorf("Wave credentials are not configured; set CAPWAVE_API_TOKEN and CAPWAVE_BUSINESS_ID first")
	}

	client := wave.New(&http.Client{}, wave.WithAuthToken(settings.APIToken))

	accounts, err := client.FetchAccounts(ctx, wave.FetchAccountsOptions{
		BusinessID: wave.BusinessID(settings.BusinessID),
		Types:      []wave.AccountType{wave.AccountType(strings.ToUpper(accountsType))},
		Page:       accountsPage,
		PageSize:   accountsPageSize,
	})
	if err != nil {
		return err
	}

	if !accountsShowArchived {
		accounts = lo.Filter(accounts, func(account *wave.Account, _ int) bool {
			return !account.IsArchived
		})
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSUBTYPE\tARCHIVED")

	for _, account := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", account.ID, account.Name, account.Type, account.Subtype, account.IsArchived)
	}

	return w.Flush()
}
