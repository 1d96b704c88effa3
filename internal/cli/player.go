package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerGetCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"display_name": name}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			// Save the id so later commands act as this player
			if err := cfg.SavePlayerID(result.ID); err != nil {
				return fmt.Errorf("failed to save player id: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [player-id]",
		Short: "Show a player's cumulative stats",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := cfg.PlayerID
			if len(args) == 1 {
				id = args[0]
			}
			if id == "" {
				return fmt.Errorf("no player id given and none saved")
			}

			var result Player
			if err := client.Get("/api/v1/players/"+id, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}
