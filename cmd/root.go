package cmd

import (
	"fmt"
	"os"

	"github.com/khudka/khudka/internal"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	dbPath  string
	version string = "dev"
	commit  string = "unknown"
	date    string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "khudka",
	Short: "Chat with the Gemini API from your terminal",
	Long: `khudka is a terminal chat client for Google's Gemini API with all
conversation state persisted locally.

Every conversation is saved as a session you can revisit, regenerate
replies in, export, or delete. Nothing leaves your machine except the
prompt you send.

Quick Start:
  khudka key set <api-key>      # Store your Gemini API key
  khudka chat                   # Start chatting
  khudka list                   # List saved sessions
  khudka export <session-id>    # Export a session

For detailed usage, see: https://github.com/khudka/khudka`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Custom database location (defaults to ~/.khudka/khudka.db)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// openStore resolves configuration and opens the local database and
// session store. The caller closes the returned KV.
func openStore() (internal.Config, *internal.SQLiteKV, *internal.SessionStore, error) {
	cfg, err := internal.LoadConfig(dbPath)
	if err != nil {
		return internal.Config{}, nil, nil, fmt.Errorf("failed to resolve configuration: %w", err)
	}

	kv, err := internal.OpenKV(cfg.DBPath)
	if err != nil {
		return internal.Config{}, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := internal.NewSessionStore(kv)
	if err != nil {
		kv.Close()
		return internal.Config{}, nil, nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	return cfg, kv, store, nil
}
