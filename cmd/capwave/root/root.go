package root

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sagehenstudio/cap-one-wave/cmd/capwave"
)

var (
	BuildVersion  = `(missing)`
	BuildShortSHA = `(missing)`

	RootCmd = &cobra.Command{
		Use:               "capwave",
		Short:             "Capital One to Wave bridge",
		Long:              `Records Capital One charge alerts as Wave Accounting money transactions.`,
		PersistentPreRunE: setupLogger,
		Version:           fmt.Sprintf("%s (%s)", BuildVersion, BuildShortSHA),
	}
)

func init() {
	RootCmd.SilenceUsage = true
	RootCmd.SilenceErrors = true
	RootCmd.CompletionOptions.DisableDefaultCmd = true
	RootCmd.SetOut(os.Stderr)

	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	RootCmd.AddCommand(capwave.ServeCmd)
	RootCmd.AddCommand(capwave.AccountsCmd)
	RootCmd.AddCommand(capwave.BusinessesCmd)
}

func Main(ctx context.Context, args []string, output io.Writer) error {
	RootCmd.SetOut(output)
	RootCmd.SetArgs(args[1:])

	return RootCmd.ExecuteContext(ctx)
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.RFC3339
	})

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Str("build.version", BuildVersion).
		Str("build.sha", BuildShortSHA).
		Logger()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	return nil
}
