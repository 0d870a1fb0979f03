package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "stackfind/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// StackExchangeConfig holds settings for the search stage.
type StackExchangeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the Stack Exchange API root (default https://api.stackexchange.com/2.3).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Keys is the ordered credential pool. A single key is a list of one.
	Keys []string `json:"keys,omitempty" yaml:"keys,omitempty" mapstructure:"keys"`

	// RequestsPerSecond caps outbound calls from this process (default 25).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ServeConfig holds settings for the long-lived HTTP bridge.
type ServeConfig struct {
	// Addr is the listen address (default 127.0.0.1:7777).
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// PanelTTL is how long an unread panel is kept before it is discarded (default 30m).
	PanelTTL time.Duration `json:"panel_ttl" yaml:"panel_ttl" mapstructure:"panel_ttl"`

	// MaxPanels bounds the number of open panels; the oldest is evicted first (default 256).
	MaxPanels int `json:"max_panels" yaml:"max_panels" mapstructure:"max_panels"`
}

// LogConfig selects the log level: debug, info, warn, or error.
type LogConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all stackfind settings.
type Config struct {
	StackExchange StackExchangeConfig `json:"stackexchange" yaml:"stackexchange" mapstructure:"stackexchange"`
	Serve         ServeConfig         `json:"serve" yaml:"serve" mapstructure:"serve"`
	Log           LogConfig           `json:"log" yaml:"log" mapstructure:"log"`
}
