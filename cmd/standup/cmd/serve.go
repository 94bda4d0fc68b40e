package cmd

import (
	"github.com/spf13/cobra"

	"github.com/freddyb/standup/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Run: func(cmd *cobra.Command, args []string) {
		s := server.New()
		s.RegisterRoutes()
		s.Start(s.Cfg.BindAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
