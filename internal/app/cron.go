package app

import (
	"context"
	"time"

	pkgcron "github.com/mx-space/folio/internal/pkg/cron"
	sessionpkg "github.com/mx-space/folio/internal/pkg/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	sessionRetention = 7 * 24 * time.Hour

	jobPruneSessions = "prune_admin_sessions"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	sched.Register(pkgcron.Job{
		Name:     jobPruneSessions,
		Interval: 24 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := sessionpkg.Prune(ctx, db, time.Now().Add(-sessionRetention))
			if err != nil {
				cronLogger.Warn("prune admin sessions", zap.Error(err))
				return err
			}
			cronLogger.Info("pruned admin sessions", zap.Int64("deleted", n))
			return nil
		},
	})
}

// logCronStates records the last outcome of every job.
func logCronStates(sched *pkgcron.Scheduler, logger *zap.Logger) {
	for _, st := range sched.List() {
		fields := []zap.Field{zap.String("job", st.Name), zap.String("status", string(st.Status))}
		if st.LastRunAt != nil {
			fields = append(fields, zap.Time("last_run", *st.LastRunAt))
		}
		if st.Message != "" {
			fields = append(fields, zap.String("message", st.Message))
		}
		logger.Info("cron job state", fields...)
	}
}
