package notify

// Config holds configuration for the webhook notifier.
type Config struct {
	// WebhookURL is the fallback WeChat Work webhook URL, used when the
	// webhook_url setting is absent from the database.
	WebhookURL string `mapstructure:"webhook_url" default:""`
}
