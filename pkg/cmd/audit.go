package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magicfolder/mfvault/pkg/configs"
	ctxPkg "github.com/magicfolder/mfvault/pkg/context"
	"github.com/magicfolder/mfvault/pkg/internal/service"
	"github.com/magicfolder/mfvault/pkg/internal/storage"
	"github.com/magicfolder/mfvault/pkg/log"
)

var (
	auditSampleSize int

	auditCmd = &cobra.Command{
		Use:   "audit",
		Short: "run one hash audit pass and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return err
			}

			log.Init()

			mgr, err := storage.Init(cmd.Context())
			if err != nil {
				return err
			}

			ctx := ctxPkg.WithStorageManager(cmd.Context(), mgr)
			svc := service.NewVaultService(ctx)

			report, err := svc.RunHashAudit(ctx, auditSampleSize)
			if err != nil {
				return err
			}

			b, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}
)

func registerAuditCommands() {
	auditCmd.Flags().IntVar(&auditSampleSize, "sample", 0, "number of versions to check (0 uses the configured default)")

	rootCmd.AddCommand(auditCmd)
}
