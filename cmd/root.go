package cmd

import (
	"fmt"
	"os"

	"meeting-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "meeting-manager",
	Short: "Meeting Room Booking Service",
	Long: `Meeting Manager is the backend for the meeting room booking board.
It serves the room, reservation and settings APIs and pushes booking
notifications to a WeChat Work group webhook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format at debug level so CLI errors come out pretty with
		// ISO8601 timestamps instead of the production epoch encoding.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
