package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// devDefaults are the development fallbacks the old run script exported.
// They apply only when the caller hasn't set the variable, so real
// deployments override them from the environment.
var devDefaults = map[string]string{
	"DEBUG":        "False",
	"SECRET_KEY":   "foo",
	"DATABASE_URL": "ws://localhost:8000/rpc",
}

var rootCmd = &cobra.Command{
	Use:   "standup",
	Short: "standup management commands",
	Long: `Management commands for the standup status application.

Available commands:
  serve      Run the web server
  init-db    Apply the database schema
  version    Print the build version

Use "standup [command] --help" for more information about a specific command.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		for key, value := range devDefaults {
			if _, ok := os.LookupEnv(key); !ok {
				os.Setenv(key, value)
			}
		}
	},
}

// Execute executes the root command. The dispatched command's failure is the
// process's failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
