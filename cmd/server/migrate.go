package main

import (
	"github.com/spf13/cobra"

	"github.com/yukikurage/project-tracker-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		return database.Migrate(database.GetDB(), logger)
	},
}
