package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game lifecycle commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameStartLevelCmd())
	cmd.AddCommand(newGameCompleteLevelCmd())
	cmd.AddCommand(newGameCompleteCmd())
	cmd.AddCommand(newGameAbandonCmd())

	return cmd
}

func requirePlayer() error {
	if cfg.PlayerID == "" {
		return fmt.Errorf("no player id set; register first or pass --player")
	}
	return nil
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Start a new game (supersedes any active one)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			var result Game
			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Show a game session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			var result Game
			if err := client.Get("/api/v1/games/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <game-id> <level-id>",
		Short: "Start a level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			path := fmt.Sprintf("/api/v1/games/%s/levels/%s/start", args[0], args[1])
			var result Game
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCompleteLevelCmd() *cobra.Command {
	var deaths int
	var choice, relic string
	var duration int64

	cmd := &cobra.Command{
		Use:   "complete-level <game-id> <level-id>",
		Short: "Complete a level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			req := map[string]any{"deaths": deaths}
			if choice != "" {
				req["choice"] = choice
			}
			if relic != "" {
				req["relic"] = relic
			}
			if duration > 0 {
				req["duration_seconds"] = duration
			}

			path := fmt.Sprintf("/api/v1/games/%s/levels/%s/complete", args[0], args[1])
			var result Game
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&deaths, "deaths", 0, "Death count for the level")
	cmd.Flags().StringVar(&choice, "choice", "", "Moral choice value")
	cmd.Flags().StringVar(&relic, "relic", "", "Collected relic")
	cmd.Flags().Int64Var(&duration, "duration", 0, "Manual duration override in seconds (deprecated)")

	return cmd
}

func newGameCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <game-id>",
		Short: "Complete a game and fold it into player stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			var result Game
			if err := client.Post("/api/v1/games/"+args[0]+"/complete", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <game-id>",
		Short: "Abandon a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			var result Game
			if err := client.Post("/api/v1/games/"+args[0]+"/abandon", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
