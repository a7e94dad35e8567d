package capwave

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sagehenstudio/cap-one-wave/internal/api/wave"
	"github.com/sagehenstudio/cap-one-wave/internal/config"
)

var BusinessesCmd = &cobra.Command{
	Use:   "businesses",
	Short: "List Wave businesses visible to the token",
	Long:  `Lists the businesses the configured Wave token can access, to help locate the business ID for the settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBusinesses(cmd.Context(), cmd.OutOrStdout())
	},
}

func runBusinesses(ctx context.Context, output io.Writer) error {
	settings, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if settings.APIToken == "" || settings.APIToken == config.PlaceholderToken {
		return fmt.Errorf("Wave API token is not configured; set CAPWAVE_API_TOKEN first")
	}

	client := wave.New(&http.Client{}, wave.WithAuthToken(settings.APIToken))

	businesses, err := client.FetchBusinesses(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")

	for _, business := range businesses {
		fmt.Fprintf(w, "%s\t%s\n", business.ID, business.Name)
	}

	return w.Flush()
}
