package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"idler/internal/store"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the save slot and start over",
	Long: `reset deletes the save database entirely, returning the game to a
fresh first-run state. It asks for confirmation unless --yes is given.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !resetYes {
		fmt.Fprint(cmd.OutOrStdout(), "This will delete all your game progress. Are you sure? (yes/no): ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "yes" && answer != "y" {
			// Declining is a normal outcome, not an error.
			fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
			return nil
		}
	}

	switch err := store.Erase(cfg.DatabasePath()); {
	case err == nil:
		fmt.Fprintln(cmd.OutOrStdout(), "Game reset. Start fresh next time you play.")
		return nil
	case errors.Is(err, store.ErrNoRecord):
		fmt.Fprintln(cmd.OutOrStdout(), "No save data found. Game is already fresh.")
		return nil
	default:
		return fmt.Errorf("reset failed: %w", err)
	}
}
