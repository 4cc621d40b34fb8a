// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the enex-migrate CLI. It converts
// Evernote export archives into a directory tree of PDF and original-format
// files, then optionally mirrors that tree into Google Drive.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/enex-migrate/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when non-empty, otherwise the secret value
// for key if it exists.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the enex-migrate CLI.
var rootCmd = &cobra.Command{
	Use:   "enex-migrate",
	Short: "Migrate Evernote export files to PDF trees and Google Drive",
	Long: `enex-migrate processes Evernote ENEX export files, converting each note
into a merged PDF, a passthrough copy of its attachment, or a text-rendered
PDF, organized one directory per notebook. The resulting tree can be mirrored
into Google Drive with names and nesting preserved.

Each stage is a subcommand: migrate, upload, and report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./enex-migrate.yaml or ~/.config/enex-migrate/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("enex-migrate")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "enex-migrate"))
		}
	}

	viper.SetEnvPrefix("ENEX_MIGRATE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
