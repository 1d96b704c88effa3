package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "sendactl",
		Short: "CLI tool for the game progress API",
		Long: `sendactl is a CLI tool for interacting with the game progress JSON API.

It supports all API operations: player registration and lookup, game
lifecycle actions (create, start/complete levels, complete, abandon) and
the level catalog.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load saved player id if not provided via flag/env
			if err := cfg.LoadPlayerID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.PlayerID, cfg.AdminToken)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SENDACTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "player", cfg.PlayerID, "Acting player id (env: SENDACTL_PLAYER_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Admin token (env: SENDACTL_ADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newLevelsCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
