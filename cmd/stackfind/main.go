// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the stackfind CLI.
// Subcommands: search (one-shot lookup), serve (editor bridge), keys, version.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/stackfind/internal/config"
	"github.com/pdiddy/stackfind/internal/keys"
	"github.com/pdiddy/stackfind/internal/secrets"
	"github.com/pdiddy/stackfind/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by rootCmd's PersistentPreRunE.
var (
	loadedSecrets map[string]string
	cfg           types.Config
	logger        = zap.NewNop()
	pool          *keys.Pool
)

var rootCmd = &cobra.Command{
	Use:   "stackfind",
	Short: "Look up highlighted text on Stack Overflow",
	Long: `stackfind takes the text highlighted in an editor, searches Stack Overflow
through the Stack Exchange API and renders the matching questions as an HTML
panel.

Keys come from stackexchange.keys in stackfind.yaml, STACKFIND_STACKEXCHANGE_KEYS,
or .secrets/stackexchange-api-keys (one key per line). Each lookup uses the next
key in the list.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s

		c, err := config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = c

		l, err := config.NewLogger(cfg.Log)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l

		if len(s) > 0 {
			names := make([]string, 0, len(s))
			for k := range s {
				names = append(names, k)
			}
			sort.Strings(names)
			logger.Debug("loaded secrets", zap.Strings("names", names))
		}
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", zap.String("path", f))
		}

		pool = keys.NewPool(keyList())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// keyList prefers configured keys over the secrets file.
func keyList() []string {
	if len(cfg.StackExchange.Keys) > 0 {
		return cfg.StackExchange.Keys
	}
	return secrets.Lines(loadedSecrets, secrets.StackExchangeKeys)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./stackfind.yaml or ~/.config/stackfind/stackfind.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper(), version)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("stackfind")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "stackfind"))
		}
	}

	viper.SetEnvPrefix("STACKFIND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Reading config file:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
