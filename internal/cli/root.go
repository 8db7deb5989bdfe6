// Package cli implements the navreplay CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	journalPath string
)

// Config is the optional navreplay TOML configuration file.
type Config struct {
	JournalPath string `toml:"journal_path"`
	InitialURL  string `toml:"initial_url"`
}

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "navreplay",
	Short: "Replay and inspect navsyncx navigation traces",
	Long:  "Replays recorded navigation traces through the reconciliation engine and inspects the durable navigation journal. YAML traces in, deterministic writes out.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $NAVREPLAY_CONFIG or ~/.navreplay.toml)")
	RootCmd.PersistentFlags().StringVarP(&journalPath, "journal", "j", "", "Journal database path (overrides config)")
}

func loadConfig() Config {
	cfg := Config{InitialURL: "/"}

	path := configPath
	if path == "" {
		path = os.Getenv("NAVREPLAY_CONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg
		}
		path = filepath.Join(home, ".navreplay.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		// Missing config is fine; defaults apply.
		return cfg
	}
	if cfg.InitialURL == "" {
		cfg.InitialURL = "/"
	}
	return cfg
}

func resolveJournalPath(cfg Config) string {
	if journalPath != "" {
		return journalPath
	}
	if cfg.JournalPath != "" {
		return cfg.JournalPath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".navreplay", "nav.db")
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
