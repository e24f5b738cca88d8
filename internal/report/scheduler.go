package report

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler periodically logs a Summary.
type Scheduler struct {
	cron    *cron.Cron
	svc     Service
	spec    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewScheduler validates spec (standard 5-field cron or a descriptor such as
// "@hourly") and returns a stopped scheduler.
func NewScheduler(svc Service, spec string, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}

	return &Scheduler{
		cron:    cron.New(),
		svc:     svc,
		spec:    spec,
		timeout: 30 * time.Second,
		logger:  logger,
	}, nil
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting report scheduler", zap.String("schedule", s.spec))

	if _, err := s.cron.AddFunc(s.spec, s.Run); err != nil {
		return fmt.Errorf("schedule report: %w", err)
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping report scheduler")
	<-s.cron.Stop().Done()
}

// Run produces and logs one summary.
func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	sum, err := s.svc.Snapshot(ctx)
	if err != nil {
		s.logger.Error("failed to build occupancy report", zap.Error(err))
		return
	}

	s.logger.Info("occupancy report",
		zap.Time("generated_at", sum.GeneratedAt),
		zap.Int("exclusive_total", sum.ExclusiveTotal),
		zap.Int("exclusive_occupied", sum.ExclusiveOccupied),
		zap.Int("pooled_total", sum.PooledTotal),
		zap.Int("pooled_stock", sum.PooledStock),
		zap.Int("pooled_outstanding", sum.PooledOutstanding),
		zap.Int("holders", sum.Holders),
		zap.String("owed", sum.Owed.StringFixed(2)),
		zap.String("credit", sum.Credit.StringFixed(2)))
}
