package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verifyXLSX string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Report table counts and the rows referenced by transactions",
	Args:  cobra.NoArgs,
	RunE:  runVerifyReport,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyXLSX, "xlsx", "", "Write the report as an xlsx workbook to this path instead of printing JSON")
}

func runVerifyReport(cmd *cobra.Command, _ []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx := commandContext(cmd)
	if verifyXLSX == "" {
		report, err := env.seedFlow.VerifyDB(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	}

	f, err := os.Create(verifyXLSX)
	if err != nil {
		return fmt.Errorf("create %s: %w", verifyXLSX, err)
	}
	if err := env.seedFlow.VerifyWorkbook(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	env.log.Info().Str("path", verifyXLSX).Msg("verification workbook written")
	return nil
}
