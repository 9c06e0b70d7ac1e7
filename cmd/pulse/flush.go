package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"helios-hq/pulse/pkg/metrics"
)

var flushScheduled bool

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Clear all accumulated metric data",
	Long: `Clear all accumulated metric data from the configured backend.

For the memory backend this is only useful inside a running process; for
the redis and sqlite backends it clears the shared or persisted store.
The command exits non-zero when the backend reports a failed flush.

With --scheduled, the command stays in the foreground and flushes on the
cron expression from the flush.schedule configuration key instead of
flushing once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadEnvironment()
		if err != nil {
			return err
		}

		driver, err := openDriver(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to open %s backend: %w", cfg.Backend, err)
		}
		defer driver.Close()

		if flushScheduled {
			if cfg.Flush.Schedule == "" {
				return fmt.Errorf("--scheduled requires flush.schedule in the configuration")
			}
			scheduler := metrics.NewFlushScheduler(driver, cfg.Flush.Schedule, logger)
			if err := scheduler.Start(); err != nil {
				return fmt.Errorf("failed to start flush scheduler: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Flushing %s backend on schedule %q, Ctrl-C to stop\n",
				cfg.Backend, cfg.Flush.Schedule)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			scheduler.Stop()
			return nil
		}

		runID := uuid.NewString()
		logger.Info("flush started", "run_id", runID, "backend", cfg.Backend)

		if !driver.Flush() {
			logger.Error("flush failed", "run_id", runID, "backend", cfg.Backend)
			return fmt.Errorf("flush failed (run %s)", runID)
		}

		logger.Info("flush completed", "run_id", runID, "backend", cfg.Backend)
		fmt.Fprintf(cmd.OutOrStdout(), "Flushed %s backend (run %s)\n", cfg.Backend, runID)
		return nil
	},
}

func init() {
	flushCmd.Flags().BoolVar(&flushScheduled, "scheduled", false, "run in the foreground, flushing on flush.schedule")
	rootCmd.AddCommand(flushCmd)
}
