// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chapter-chef CLI. It imports
// books listed in a JSON manifest, cuts them into chapter PDFs and hands
// the resulting channel tree to the uploader.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/chapter-chef/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the chapter-chef CLI.
var rootCmd = &cobra.Command{
	Use:   "chapter-chef",
	Short: "Split source books into chapter PDFs for a content channel",
	Long: `chapter-chef reads a JSON manifest of books and chapter page ranges,
downloads each book's PDF, writes one PDF per chapter, and builds the channel
tree of topics and documents for upload.

Any failure stops the run with a non-zero exit status: a manifest that does
not match its sources has to be fixed, not partially imported.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./chapter-chef.yaml or ~/.config/chapter-chef/config.yaml)")
	flags.String("manifest", "", "JSON manifest of books and chapters (default page_structure.json)")
	flags.String("download-dir", "", "directory for chapter PDFs (default downloads)")
	flags.BoolP("verbose", "v", false, "log debug diagnostics to stderr")

	viper.BindPFlag("manifest", flags.Lookup("manifest"))
	viper.BindPFlag("download_dir", flags.Lookup("download-dir"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))

	setDefaults(types.DefaultChefConfig())
}

// setDefaults registers every configuration key with viper so that
// environment variables and Unmarshal see all of them.
func setDefaults(d types.ChefConfig) {
	viper.SetDefault("manifest", d.ManifestPath)
	viper.SetDefault("download_dir", d.DownloadDir)
	viper.SetDefault("license", d.License)
	viper.SetDefault("ledger_path", d.LedgerPath)
	viper.SetDefault("handoff_path", d.HandoffPath)
	viper.SetDefault("http.timeout", d.Timeout)
	viper.SetDefault("http.user_agent", d.UserAgent)
	viper.SetDefault("channel.title", d.Channel.Title)
	viper.SetDefault("channel.source_id", d.Channel.SourceID)
	viper.SetDefault("channel.domain", d.Channel.Domain)
	viper.SetDefault("channel.language", d.Channel.Language)
	viper.SetDefault("channel.description", d.Channel.Description)
	viper.SetDefault("channel.thumbnail", d.Channel.Thumbnail)
}

// loadDotenv sets the variables in path that are not already in the
// environment and returns their names, sorted. A missing file is not an
// error.
func loadDotenv(path string) []string {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil
	}
	var keys []string
	for k, v := range env {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		os.Setenv(k, v)
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func initConfig() {
	if keys := loadDotenv(".env"); len(keys) > 0 {
		fmt.Fprintf(os.Stderr, "Loaded environment from .env: %v\n", keys)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chapter-chef")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chapter-chef"))
		}
	}

	viper.SetEnvPrefix("CHAPTER_CHEF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the run configuration from defaults, config file,
// environment and flags, in increasing precedence.
func loadConfig() (types.ChefConfig, error) {
	cfg := types.DefaultChefConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}
