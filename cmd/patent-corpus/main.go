// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the patent-corpus CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the patent-corpus CLI.
var rootCmd = &cobra.Command{
	Use:   "patent-corpus",
	Short: "Download cannabis patents into a training corpus",
	Long: `patent-corpus retrieves patent records matching a fixed topical vocabulary
from Google Patents and USPTO PatFT, normalizes them into a unified record
shape, and persists each record as a JSON snapshot, a flattened text file,
and a line in an append-only JSONL corpus for downstream corpus building.

Use download for a full run, search to inspect the search phase only, and
index to rebuild the CSV index from snapshots on disk.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./patent-corpus.yaml or ~/.config/patent-corpus/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("patent-corpus")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "patent-corpus"))
		}
	}

	viper.SetEnvPrefix("PATENT_CORPUS")
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
