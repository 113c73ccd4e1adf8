package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/trampoline/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGamePlaceCmd())
	cmd.AddCommand(newGameRemoveCmd())
	cmd.AddCommand(newGameFlipCmd())
	cmd.AddCommand(newGameEndTurnCmd())
	cmd.AddCommand(newGameForceTurnCmd())
	cmd.AddCommand(newGameScoresCmd())
	cmd.AddCommand(newGameAutoPlayCmd())

	return cmd
}

func gamePath(id string, parts ...string) string {
	p := "/api/v1/games/" + url.PathEscape(id)
	for _, part := range parts {
		p += "/" + part
	}
	return p
}

// parseInts converts positional arguments named by names into integers
func parseInts(args []string, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		out[i] = n
	}
	return out, nil
}

// postGame sends a game action and prints the resulting state
func postGame(path string, body any) error {
	var result response.Game
	if err := client.Post(path, body, &result); err != nil {
		return err
	}
	NewOutput(cfg.Output).Print(result)
	return nil
}

func newGameCreateCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "create [player names...]",
		Short: "Create a new game",
		Long: `Create a new game.

Solo games take at most one name and deal every tile to that player.
Multiplayer games take two to four names and play in turns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"mode": mode, "players": args}
			var result response.Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "multiplayer", "Game mode: solo, multiplayer")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList
			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0])); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Game deleted")
			return nil
		},
	}
}

func newGamePlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place <id> <player> <tile> <row> <col>",
		Short: "Place a tile from your hand onto the board",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args[1:], "player", "tile", "row", "col")
			if err != nil {
				return err
			}
			req := map[string]int{"player": n[0], "tile": n[1], "row": n[2], "col": n[3]}
			return postGame(gamePath(args[0], "place"), req)
		},
	}
}

func newGameRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id> <player> <row> <col>",
		Short: "Lift an unfrozen tile back into your hand",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args[1:], "player", "row", "col")
			if err != nil {
				return err
			}
			req := map[string]int{"player": n[0], "row": n[1], "col": n[2]}
			return postGame(gamePath(args[0], "remove"), req)
		},
	}
}

func newGameFlipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flip <id> <player> <tile>",
		Short: "Turn a tile over",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args[1:], "player", "tile")
			if err != nil {
				return err
			}
			req := map[string]int{"player": n[0], "tile": n[1]}
			return postGame(gamePath(args[0], "flip"), req)
		},
	}
}

func newGameEndTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end-turn <id> <player>",
		Short: "End your turn (multiplayer only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args[1:], "player")
			if err != nil {
				return err
			}
			return postGame(gamePath(args[0], "end-turn"), map[string]int{"player": n[0]})
		},
	}
}

func newGameForceTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force-turn <id> <player>",
		Short: "Hand the turn to a specific player (multiplayer only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args[1:], "player")
			if err != nil {
				return err
			}
			return postGame(gamePath(args[0], "force-turn"), map[string]int{"player": n[0]})
		},
	}
}

func newGameScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores <id>",
		Short: "Show the score breakdown of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Scores
			if err := client.Get(gamePath(args[0], "scores"), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newGameAutoPlayCmd() *cobra.Command {
	var strategy string
	var moves int

	cmd := &cobra.Command{
		Use:   "autoplay <id> <player>",
		Short: "Let a bot play a turn for a seat",
		Long: `Let a bot place tiles for a seat.

The bot places up to --moves tiles chosen by --strategy (greedy or random),
then ends the turn in multiplayer games.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseInts(args[1:], "player")
			if err != nil {
				return err
			}
			req := map[string]any{"player": n[0], "strategy": strategy, "moves": moves}
			var result response.AutoPlay
			if err := client.Post(gamePath(args[0], "autoplay"), req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&strategy, "strategy", "", "Bot strategy (default greedy)")
	cmd.Flags().IntVar(&moves, "moves", 0, "Maximum tiles to place (default one hand)")
	return cmd
}
