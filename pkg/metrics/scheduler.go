package metrics

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// FlushScheduler runs Flush on a cron schedule. The typical use is a
// nightly reset so unique-tracking sets and request accumulators do not
// grow without bound in long-lived processes.
type FlushScheduler struct {
	driver   Driver
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewFlushScheduler creates a scheduler for the given driver and cron
// expression. A nil logger defaults to slog.Default tagged with the
// component name.
//
// Common expressions:
//   - "0 0 * * *"   - daily at midnight
//   - "0 */6 * * *" - every 6 hours
func NewFlushScheduler(driver Driver, schedule string, logger *slog.Logger) *FlushScheduler {
	if logger == nil {
		logger = slog.Default().With("component", "metrics.scheduler")
	}
	return &FlushScheduler{
		driver:   driver,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start begins scheduled flushing. An empty schedule is a no-op.
func (s *FlushScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("flush schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("flush scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid flush schedule %q: %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runFlush); err != nil {
		return fmt.Errorf("failed to schedule flush: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("flush scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduled flushing, waiting for a running flush to finish.
func (s *FlushScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("flush scheduler stopped")
}

// runFlush executes one scheduled flush and logs the boolean outcome.
func (s *FlushScheduler) runFlush() {
	if s.driver.Flush() {
		s.logger.Info("scheduled metrics flush completed")
	} else {
		s.logger.Error("scheduled metrics flush failed")
	}
}
