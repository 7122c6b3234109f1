package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"meeting-manager/core/utils"
	"meeting-manager/feature/booking/models"

	"go.uber.org/zap"
)

// Setting keys consulted on every send, so changes take effect without a
// restart.
const (
	SettingWebhookURL = "webhook_url"
	SettingDebugMode  = "debug_mode"
)

const requestTimeout = 10 * time.Second

// SettingsSource resolves runtime settings by key.
type SettingsSource interface {
	Lookup(ctx context.Context, key string) (string, bool)
}

// Notifier delivers reservation event messages to a WeChat Work group
// webhook. Delivery is best effort: every outcome is reported as an
// (ok, reason) pair and logged, and no failure ever propagates to the
// caller as an error.
type Notifier struct {
	settings   SettingsSource
	defaultURL string
	client     *http.Client
	logger     *zap.Logger
}

// webhookResponse is the WeChat Work API response envelope.
type webhookResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// New creates a notifier. The default URL from the config is used when the
// webhook_url setting is absent.
func New(settings SettingsSource, cfg Config, logger *zap.Logger) *Notifier {
	return &Notifier{
		settings:   settings,
		defaultURL: strings.TrimSpace(cfg.WebhookURL),
		client: &http.Client{
			Timeout: requestTimeout,
			// Outbound proxying disabled: the webhook endpoint is reached
			// directly even when the host has proxy environment variables.
			Transport: &http.Transport{Proxy: nil},
		},
		logger: logger,
	}
}

// Send posts a reservation event to the configured webhook.
func (n *Notifier) Send(ctx context.Context, res models.Reservation, action Action) (bool, string) {
	debug := false
	if v, ok := n.settings.Lookup(ctx, SettingDebugMode); ok {
		debug = utils.ToBool(strings.TrimSpace(v))
	}

	target := n.defaultURL
	if v, ok := n.settings.Lookup(ctx, SettingWebhookURL); ok && strings.TrimSpace(v) != "" {
		target = strings.TrimSpace(v)
	}
	if target == "" {
		n.logger.Warn("webhook notification skipped", zap.String("reason", "webhook url not configured"))
		return false, "webhook url not configured"
	}

	content := buildMessage(res, action)
	payload, err := json.Marshal(map[string]any{
		"msgtype":     "markdown_v2",
		"markdown_v2": map[string]string{"content": content},
	})
	if err != nil {
		n.logger.Error("failed to marshal webhook payload", zap.Error(err))
		return false, "failed to build payload: " + err.Error()
	}

	if debug {
		n.logger.Debug("webhook request",
			zap.String("url", target),
			zap.String("action", string(action)),
			zap.ByteString("payload", payload))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		n.logger.Error("invalid webhook url", zap.Error(err))
		return false, "invalid webhook url: " + err.Error()
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := n.client.Do(req)
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			n.logger.Error("webhook request timed out", zap.Duration("timeout", requestTimeout))
			return false, "request timeout (10s)"
		}
		n.logger.Error("webhook connection failed", zap.Error(err))
		return false, "connection failed: " + truncate(err.Error(), 100)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if debug {
		n.logger.Debug("webhook response",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
	}

	if resp.StatusCode != http.StatusOK {
		n.logger.Error("webhook http error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return false, fmt.Sprintf("http error: %d", resp.StatusCode)
	}

	var wr webhookResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		n.logger.Error("failed to parse webhook response", zap.Error(err), zap.ByteString("body", body))
		return false, "invalid response: " + truncate(string(body), 100)
	}
	if wr.ErrCode != 0 {
		n.logger.Error("webhook api error",
			zap.Int("errcode", wr.ErrCode),
			zap.String("errmsg", wr.ErrMsg))
		return false, fmt.Sprintf("api error: %d - %s", wr.ErrCode, wr.ErrMsg)
	}

	n.logger.Info("webhook notification sent",
		zap.String("action", string(action)),
		zap.String("title", res.Title))
	return true, "ok"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
