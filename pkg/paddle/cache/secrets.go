package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/ledgerline-systems/paddlehook/pkg/paddle/client"
	"github.com/ledgerline-systems/paddlehook/pkg/paddle/types"
)

// SecretCache maps webhook request paths to their per-endpoint signing
// secrets, built from the vendor's notification settings. Only active URL
// destinations whose destination contains the configured webhook host are
// kept; the key is the path portion after the host.
type SecretCache struct {
	client      *client.Client
	webhookHost string
	data        atomic.Pointer[map[string]string]
}

// NewSecretCache builds an empty cache; call Refresh to populate it.
func NewSecretCache(c *client.Client, webhookHost string) *SecretCache {
	sc := &SecretCache{client: c, webhookHost: webhookHost}
	empty := map[string]string{}
	sc.data.Store(&empty)
	return sc
}

// Refresh fetches all notification settings and publishes a fresh
// path -> secret map. On error the previous snapshot stays visible.
func (sc *SecretCache) Refresh(ctx context.Context) error {
	settings, err := sc.client.ListNotificationSettings(ctx)
	if err != nil {
		return fmt.Errorf("refresh webhook secrets: %w", err)
	}
	slog.Info("Fetched notification settings", slog.Int("count", len(settings)))

	fresh := make(map[string]string)
	for _, setting := range settings {
		if setting.Type != types.NotificationSettingTypeURL {
			continue
		}
		if !setting.Active {
			continue
		}
		pos := strings.Index(setting.Destination, sc.webhookHost)
		if pos < 0 {
			continue
		}
		path := setting.Destination[pos+len(sc.webhookHost):]
		slog.Info("Adding webhook secret", slog.String("path", path))
		fresh[path] = setting.EndpointSecretKey
	}
	sc.data.Store(&fresh)
	slog.Info("Webhook secret cache updated", slog.Int("webhooks", len(fresh)))
	return nil
}

// GetSecret returns the signing secret for a webhook path.
func (sc *SecretCache) GetSecret(path string) (string, bool) {
	secret, ok := (*sc.data.Load())[path]
	return secret, ok
}

// Len returns the number of cached webhook secrets.
func (sc *SecretCache) Len() int {
	return len(*sc.data.Load())
}
