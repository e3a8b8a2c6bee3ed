package cli

import (
	"github.com/Luisr26/ExpertSoft/app/bootstrap"
	"github.com/Luisr26/ExpertSoft/migrations"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create the tables, foreign keys and indexes if they do not exist",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := bootstrap.InitializeDatabase(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = bootstrap.CloseDatabase(db) }()

	if err := migrations.Apply(commandContext(cmd), db); err != nil {
		return err
	}

	names, _ := migrations.Names()
	log.Info().Strs("scripts", names).Msg("schema applied")
	return nil
}
