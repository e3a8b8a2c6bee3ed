// Package cli implements the seed command line tool
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Luisr26/ExpertSoft/app/bootstrap"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/Luisr26/ExpertSoft/config"
	"github.com/Luisr26/ExpertSoft/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	verbose bool
	dataDir string
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load and verify the ExpertSoft billing data",
		Long: `seed loads the normalised CSV snapshots into PostgreSQL in dependency order
(platforms, clients, invoices, transactions) and reports what the database holds.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the seed CSV files (overrides SEED_DATA_DIR)")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(schemaCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// environment is what every subcommand needs once configuration is loaded
type environment struct {
	cfg      *config.AppConfig
	log      zerolog.Logger
	db       *gorm.DB
	seedFlow businessflow.SeedFlow
	closers  []func()
}

func (e *environment) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

func loadConfig() (*config.AppConfig, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if dataDir != "" {
		cfg.Seed.DataDir = dataDir
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	log, _ := logger.New(cfg.Logging)
	return cfg, log.With().Str("service", "expertsoft-seed").Logger(), nil
}

// setup connects to the database and, when configured, to Redis and the event broker
func setup() (*environment, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	env := &environment{cfg: cfg, log: log}

	env.db, err = bootstrap.InitializeDatabase(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	env.closers = append(env.closers, func() { _ = bootstrap.CloseDatabase(env.db) })

	rc, err := bootstrap.InitializeCache(cfg.Cache, log)
	if err != nil {
		env.close()
		return nil, err
	}
	if rc != nil {
		env.closers = append(env.closers, func() { _ = rc.Close() })
	}

	notifier, closeNotifier, err := bootstrap.NewSeedNotifier(cfg, log)
	if err != nil {
		env.close()
		return nil, err
	}
	env.closers = append(env.closers, closeNotifier)

	env.seedFlow = bootstrap.NewSeedFlow(cfg, bootstrap.NewRepositories(env.db), rc, notifier, log)
	return env, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
