package cmd

import (
	"context"
	"fmt"
	"os"

	"meeting-manager/core/config"
	"meeting-manager/core/database"
	"meeting-manager/core/logger"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the booking data",
	Long:  `Checks the stored reservations for double bookings, broken time windows and orphaned room references.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// overlapsCmd represents the integrity overlaps command
var overlapsCmd = &cobra.Command{
	Use:   "overlaps",
	Short: "Check for double bookings",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// rangesCmd represents the integrity ranges command
var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "Check reservation time windows",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// orphansCmd represents the integrity orphans command
var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "Check for reservations without a room",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(overlapsCmd, rangesCmd, orphansCmd)
}

func runIntegrityChecks(ctx context.Context, runOverlaps, runRanges, runOrphans bool) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		logg.Fatal("Failed to run migrations", zap.Error(err))
	}

	svc := integrity.NewService(db, logg)

	if runOverlaps {
		logg.Info("Checking for double bookings...")
		issues, err := svc.CheckOverlaps(ctx)
		if err != nil {
			logg.Fatal("Overlap check failed", zap.Error(err))
		}

		if len(issues) == 0 {
			logg.Info("No double bookings found.")
		} else {
			logg.Warn("Double bookings detected", zap.Int("count", len(issues)))
			for _, issue := range issues {
				logg.Warn("Overlap",
					zap.Uint("room_id", issue.RoomID),
					zap.String("room", issue.RoomName),
					zap.String("date", issue.Date),
					zap.Uint("first_id", issue.FirstID),
					zap.String("first", issue.First),
					zap.Uint("second_id", issue.SecondID),
					zap.String("second", issue.Second),
				)
			}
		}
	}

	if runRanges {
		logg.Info("Checking time windows...")
		issues, err := svc.CheckTimeRanges(ctx)
		if err != nil {
			logg.Fatal("Range check failed", zap.Error(err))
		}

		if len(issues) == 0 {
			logg.Info("Time windows are intact.")
		} else {
			logg.Warn("Broken time windows detected", zap.Int("count", len(issues)))
			for _, issue := range issues {
				logg.Warn("Broken window",
					zap.Uint("id", issue.ID),
					zap.String("date", issue.Date),
					zap.String("start", issue.Start),
					zap.String("end", issue.End),
					zap.String("detail", issue.Detail),
				)
			}
		}
	}

	if runOrphans {
		logg.Info("Checking room references...")
		issues, err := svc.CheckOrphans(ctx)
		if err != nil {
			logg.Fatal("Orphan check failed", zap.Error(err))
		}

		if len(issues) == 0 {
			logg.Info("All reservations reference existing rooms.")
		} else {
			logg.Warn("Orphaned reservations detected", zap.Int("count", len(issues)))
			for _, issue := range issues {
				logg.Warn("Orphan",
					zap.Uint("id", issue.ID),
					zap.Uint("room_id", issue.RoomID),
				)
			}
		}
	}
}
