package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version and GitCommit are stamped through -ldflags at release time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pulse %s (commit %s, %s, %s/%s)\n",
			Version, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
