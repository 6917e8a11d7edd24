package types

import go_json "github.com/goccy/go-json"

// NotificationSettingTypeURL marks webhook (URL destination) notification
// settings; the other vendor value is "email".
const NotificationSettingTypeURL = "url"

// NotificationSetting describes one configured notification destination,
// including the per-endpoint secret used to sign webhook deliveries.
type NotificationSetting struct {
	ID                     string             `json:"id"`
	Description            string             `json:"description"`
	Type                   string             `json:"type"`
	Destination            string             `json:"destination"`
	Active                 bool               `json:"active"`
	APIVersion             int                `json:"api_version"`
	IncludeSensitiveFields bool               `json:"include_sensitive_fields"`
	SubscribedEvents       go_json.RawMessage `json:"subscribed_events,omitempty"`
	EndpointSecretKey      string             `json:"endpoint_secret_key"`
	TrafficSource          string             `json:"traffic_source"`
}
