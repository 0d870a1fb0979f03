// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads stackfind settings from viper (config file,
// STACKFIND_* environment, flags) into types.Config.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/stackfind/pkg/types"
)

var (
	ErrInvalidTimeout   = errors.New("stackexchange.timeout must be positive")
	ErrInvalidRate      = errors.New("stackexchange.requests_per_second must be positive")
	ErrInvalidMaxPanels = errors.New("serve.max_panels must be positive")
	ErrInvalidPanelTTL  = errors.New("serve.panel_ttl must be positive")
)

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper, version string) {
	v.SetDefault("stackexchange.base_url", "https://api.stackexchange.com/2.3")
	v.SetDefault("stackexchange.timeout", 30*time.Second)
	v.SetDefault("stackexchange.user_agent", "stackfind/"+version)
	v.SetDefault("stackexchange.requests_per_second", 25.0)
	v.SetDefault("stackexchange.keys", []string{})
	v.SetDefault("serve.addr", "127.0.0.1:7777")
	v.SetDefault("serve.panel_ttl", 30*time.Minute)
	v.SetDefault("serve.max_panels", 256)
	v.SetDefault("log.level", "info")
}

// Load reads the settings from v and validates them.
func Load(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		StackExchange: types.StackExchangeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("stackexchange.timeout"),
				UserAgent: v.GetString("stackexchange.user_agent"),
			},
			BaseURL:           v.GetString("stackexchange.base_url"),
			Keys:              splitKeys(v.GetStringSlice("stackexchange.keys")),
			RequestsPerSecond: v.GetFloat64("stackexchange.requests_per_second"),
		},
		Serve: types.ServeConfig{
			Addr:      v.GetString("serve.addr"),
			PanelTTL:  v.GetDuration("serve.panel_ttl"),
			MaxPanels: v.GetInt("serve.max_panels"),
		},
		Log: types.LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. An empty key pool is not a configuration
// error: it is reported per lookup as a missing credential.
func Validate(cfg types.Config) error {
	if cfg.StackExchange.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if cfg.StackExchange.RequestsPerSecond <= 0 {
		return ErrInvalidRate
	}
	if cfg.Serve.MaxPanels <= 0 {
		return ErrInvalidMaxPanels
	}
	if cfg.Serve.PanelTTL <= 0 {
		return ErrInvalidPanelTTL
	}
	if cfg.StackExchange.BaseURL == "" {
		return fmt.Errorf("stackexchange.base_url is required")
	}
	return nil
}

// splitKeys flattens entries that hold several keys, which is how a
// comma-separated STACKFIND_STACKEXCHANGE_KEYS value arrives.
func splitKeys(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, k := range strings.FieldsFunc(entry, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n'
		}) {
			out = append(out, k)
		}
	}
	return out
}
