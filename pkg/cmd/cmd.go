// Package cmd contains the command line interface of the service.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/magicfolder/mfvault/pkg/app"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "mfvault",
		Short: "Document vault with content-addressed ingestion and deduplication",
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	rootCmd.AddCommand(serveCmd)

	registerConfigsCommands()
	registerDBCommands()
	registerAuditCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
