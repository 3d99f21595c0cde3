// Package jobs registers the maintenance cron jobs of the vault.
package jobs

import (
	"context"
	"fmt"
	"time"

	ctxPkg "github.com/magicfolder/mfvault/pkg/context"
	"github.com/magicfolder/mfvault/pkg/internal/service"
	"github.com/magicfolder/mfvault/pkg/internal/storage"
	"github.com/magicfolder/mfvault/pkg/log"
	"github.com/magicfolder/mfvault/pkg/scheduler"
)

// RegisterCronJobs wires the maintenance jobs:
//   - hourly collection of expired upload staging records
//   - nightly hash audit over a random sample of canonical blobs
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	if err := sched.AddCron(JobUploadGC, CronUploadGC, runUploadGC, baseCtx); err != nil {
		return err
	}

	return sched.AddCron(JobHashAudit, CronHashAudit, runHashAudit, baseCtx)
}

func runUploadGC(ctx context.Context) {
	l := log.Logger().With().Str("job", JobUploadGC).Logger()

	svc := service.NewVaultService(ctx)

	removed, err := svc.CollectExpiredUploads(ctx, time.Now())
	if err != nil {
		l.Error().Err(err).Msg("upload gc failed")
		return
	}

	if removed > 0 {
		l.Info().Int("removed", removed).Msg("upload gc done")
	}
}

func runHashAudit(ctx context.Context) {
	l := log.Logger().With().Str("job", JobHashAudit).Logger()

	svc := service.NewVaultService(ctx)

	report, err := svc.RunHashAudit(ctx, 0)
	if err != nil {
		l.Error().Err(err).Msg("hash audit failed")
		return
	}

	l.Info().
		Int("checked", report.Checked).
		Int("mismatches", len(report.Mismatches)).
		Bool("partial", report.Partial).
		Msg("hash audit done")
}
