package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the exposition body from the configured backend",
	Long: `Print the Prometheus text exposition body built from the data
currently stored in the configured backend.

Only backends with out-of-process state (redis, sqlite) hold data
between runs; the memory backend always dumps an empty body here.`,
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

		fmt.Fprint(cmd.OutOrStdout(), driver.Metrics())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
