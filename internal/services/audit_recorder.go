package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskhive/backend/internal/infrastructure/audit"
)

// RecorderConfig controls audit retention.
type RecorderConfig struct {
	Retention     time.Duration
	SweepInterval time.Duration
}

// AuditRecorder appends audit entries to the local store and prunes entries
// past the retention window on a schedule.
type AuditRecorder struct {
	store  *audit.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RecorderConfig
}

func NewAuditRecorder(store *audit.Store, logger *zap.Logger, cfg RecorderConfig) *AuditRecorder {
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &AuditRecorder{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.SweepInterval.Seconds()))
	_, _ = r.cron.AddFunc(schedule, func() {
		if err := r.Sweep(); err != nil {
			r.logger.Error("audit sweep failed", zap.Error(err))
		}
	})

	return r
}

// Start launches the retention scheduler.
func (r *AuditRecorder) Start() {
	if r == nil || r.cron == nil {
		return
	}
	r.cron.Start()
	r.logger.Info("audit recorder started")
}

// Stop gracefully stops the scheduler.
func (r *AuditRecorder) Stop(ctx context.Context) {
	if r == nil || r.cron == nil {
		return
	}
	stopCtx := r.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	r.logger.Info("audit recorder stopped")
}

// Record persists one audit entry.
func (r *AuditRecorder) Record(entry audit.Entry) error {
	if r == nil || r.store == nil {
		return fmt.Errorf("audit recorder not configured")
	}
	return r.store.Append(entry)
}

// Sweep removes entries older than the retention window.
func (r *AuditRecorder) Sweep() error {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Cleanup(time.Now().Add(-r.cfg.Retention))
}

// Size returns the number of stored entries.
func (r *AuditRecorder) Size() int {
	if r == nil || r.store == nil {
		return 0
	}
	size, err := r.store.Size()
	if err != nil {
		return 0
	}
	return size
}
