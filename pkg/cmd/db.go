package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magicfolder/mfvault/pkg/configs"
	"github.com/magicfolder/mfvault/pkg/internal/model"
	"github.com/magicfolder/mfvault/pkg/internal/storage/db"
	"github.com/magicfolder/mfvault/pkg/log"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:   "ls",
		Short: "list all registered database types",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")
			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+dbType)
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "run the schema migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return err
			}

			log.Init()

			client, err := db.New(cmd.Context())
			if err != nil {
				return err
			}

			if err := client.WithContext(context.Background()).AutoMigrate(model.All()...); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migration done")

			return nil
		},
	}
)

func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
	dbCmd.AddCommand(dbMigrateCmd)
}
