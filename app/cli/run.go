package cli

import (
	"github.com/Luisr26/ExpertSoft/seeder"
	"github.com/spf13/cobra"
)

var runVerify bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load every seed file, then verify the database",
	Long: `run upserts platforms, clients, invoices and transactions in that order.
The first failing stage stops the run; stages already loaded stay committed.
Loading the same files again leaves the database unchanged.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	runCmd.Flags().BoolVar(&runVerify, "verify", true, "Print the verification report after loading")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	ctx := commandContext(cmd)
	res, err := env.seedFlow.InitDB(ctx)
	if err != nil {
		if stage, ok := seeder.FailedStage(err); ok {
			env.log.Error().Err(err).Str("entity", stage).Msg("seed run failed")
		}
		if res != nil {
			_ = printJSON(cmd.OutOrStdout(), res)
		}
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if !runVerify {
		return nil
	}
	report, err := env.seedFlow.VerifyDB(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), report)
}
