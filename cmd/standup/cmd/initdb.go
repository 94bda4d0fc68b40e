package cmd

import (
	"github.com/spf13/cobra"

	"github.com/freddyb/standup/internal/config"
	"github.com/freddyb/standup/internal/database"
	"github.com/freddyb/standup/internal/logging"
)

var initDBCmd = &cobra.Command{
	Use:   "init-db",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		logging.New()
		cfg := config.New()

		db, err := database.Connect(cmd.Context(), cfg.DBUrl, cfg.DBNs, cfg.DBDb, cfg.DBUser, cfg.DBPass)
		if err != nil {
			return err
		}
		defer db.Close(cmd.Context())

		return database.InitSchema(cmd.Context(), db)
	},
}

func init() {
	rootCmd.AddCommand(initDBCmd)
}
