// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mibig-prefetch CLI, the batch
// cache-warming companion of the annotation pipeline.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kblin/mibig-html/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the mibig-prefetch CLI.
var rootCmd = &cobra.Command{
	Use:   "mibig-prefetch",
	Short: "Warm the reference caches from a directory of annotation documents",
	Long: `mibig-prefetch scans MIBiG annotation documents for embedded citation
tags ("pubmed:<id>" or "doi:<id>") and resolves every identifier not yet
present in the corresponding reference cache, so full pipeline runs can
work from warm caches without hammering the bibliographic services.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mibig-prefetch.yaml or ~/.config/mibig-prefetch/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mibig-prefetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mibig-prefetch"))
		}
	}

	viper.SetEnvPrefix("MIBIG_PREFETCH")
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
