// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v, "test")
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "https://api.stackexchange.com/2.3", cfg.StackExchange.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.StackExchange.Timeout)
	assert.Equal(t, "stackfind/test", cfg.StackExchange.UserAgent)
	assert.Equal(t, 25.0, cfg.StackExchange.RequestsPerSecond)
	assert.Empty(t, cfg.StackExchange.Keys)
	assert.Equal(t, "127.0.0.1:7777", cfg.Serve.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Serve.PanelTTL)
	assert.Equal(t, 256, cfg.Serve.MaxPanels)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stackfind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
stackexchange:
  keys:
    - key-one
    - key-two
  timeout: 5s
  requests_per_second: 2
serve:
  addr: 127.0.0.1:9000
log:
  level: debug
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, []string{"key-one", "key-two"}, cfg.StackExchange.Keys)
	assert.Equal(t, 5*time.Second, cfg.StackExchange.Timeout)
	assert.Equal(t, 2.0, cfg.StackExchange.RequestsPerSecond)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadKeysFromEnvironment(t *testing.T) {
	t.Setenv("STACKFIND_STACKEXCHANGE_KEYS", "k1,k2 k3")

	v := newViper()
	v.SetEnvPrefix("STACKFIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"k1", "k2", "k3"}, cfg.StackExchange.Keys)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
		want error
	}{
		{"zero timeout", "stackexchange.timeout", 0, ErrInvalidTimeout},
		{"negative rate", "stackexchange.requests_per_second", -1.0, ErrInvalidRate},
		{"zero max panels", "serve.max_panels", 0, ErrInvalidMaxPanels},
		{"zero panel ttl", "serve.panel_ttl", 0, ErrInvalidPanelTTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.val)

			_, err := Load(v)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSplitKeys(t *testing.T) {
	assert.Nil(t, splitKeys(nil))
	assert.Equal(t, []string{"a"}, splitKeys([]string{"a"}))
	assert.Equal(t, []string{"a", "b", "c"}, splitKeys([]string{"a, b", "c"}))
	assert.Nil(t, splitKeys([]string{" , "}))
}
