package cmd

import (
	"fmt"
	"time"

	"meeting-manager/core/config"
	"meeting-manager/core/database"
	"meeting-manager/core/logger"
	"meeting-manager/feature/booking"
	"meeting-manager/feature/booking/models"
	"meeting-manager/feature/notify"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var webhookURL string
var webhookTest bool

// webhookCmd represents the webhook command
var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Configure the notification webhook",
	Long: `Stores the WeChat Work group webhook URL in the settings table and
optionally sends a test notification to verify delivery.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		store := booking.NewSettingStore(db)

		if webhookURL != "" {
			if err := store.Set(ctx, notify.SettingWebhookURL, webhookURL); err != nil {
				return fmt.Errorf("failed to save webhook url: %w", err)
			}
			logg.Info("Webhook URL saved", zap.String("key", notify.SettingWebhookURL))
		}

		// Seed the debug flag so it shows up in the settings listing.
		if _, ok := store.Lookup(ctx, notify.SettingDebugMode); !ok {
			if err := store.Set(ctx, notify.SettingDebugMode, "false"); err != nil {
				return fmt.Errorf("failed to seed debug flag: %w", err)
			}
		}

		current, ok := store.Lookup(ctx, notify.SettingWebhookURL)
		if !ok || current == "" {
			logg.Warn("No webhook URL configured. Pass --url to set one.")
			return nil
		}

		if webhookTest {
			logg.Info("Sending test notification...")
			dispatcher := notify.New(store, cfg.Notify, logg)

			now := time.Now()
			sample := models.Reservation{
				Room:      models.Room{Name: "测试会议室"},
				Date:      datatypes.Date(now),
				StartTime: "09:00",
				EndTime:   "09:30",
				Title:     "Webhook 连通性测试",
				Booker:    "meeting-manager",
				CreatedAt: now,
			}
			ok, reason := dispatcher.Send(ctx, sample, notify.ActionCreate)
			if !ok {
				return fmt.Errorf("test notification failed: %s", reason)
			}
			logg.Info("Test notification delivered.")
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(webhookCmd)
	webhookCmd.Flags().StringVar(&webhookURL, "url", "", "WeChat Work group webhook URL to store")
	webhookCmd.Flags().BoolVar(&webhookTest, "test", false, "Send a test notification after saving")
}
