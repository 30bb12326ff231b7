// idler is a terminal idle-clicker. The counter grows once per second
// on its own and by ten per click, survives restarts through a sqlite
// save slot, and pays out what accrued while the game was closed.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"idler/cmd/idler/tui"
	"idler/internal/bignum"
	"idler/internal/config"
	"idler/internal/game"
	"idler/internal/logging"
	"idler/internal/store"
)

var (
	configPath string
	dataDir    string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "idler",
	Short: "idler - a terminal idle-clicker with a persistent counter",
	Long: `idler runs an idle-clicker session in the terminal.

The counter grows automatically over time and per manual click, is
auto-saved to a local sqlite save slot, and earns offline while the
game is closed. Run without arguments to play.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSession,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "idler.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(resetCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	return cfg, nil
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(cfg.LogPath(), level, cfg.Logging.Enabled)
	if err != nil {
		return err
	}
	defer logger.Sync()

	numCtx := bignum.NewContext(cfg.Game.Precision)
	st, err := store.Open(cfg.DatabasePath(), numCtx)
	if err != nil {
		// No storage means no durable session; refuse to play unsaved.
		return fmt.Errorf("storage unavailable: %w", err)
	}
	defer st.Close()

	now := time.Now()
	state, err := st.Load()
	welcome := ""
	switch {
	case err == nil:
		offline := now.Sub(state.LastSave)
		earned := state.OfflineEarnings(offline)
		state.ApplyOffline(now, earned)
		if !earned.IsZero() {
			welcome = fmt.Sprintf("Welcome back! You earned %s while away!", earned.Format())
			logger.Info("offline earnings applied",
				zap.Duration("offline", offline),
				zap.String("earned", earned.String()))
		}
	case errors.Is(err, store.ErrNoRecord):
		state, err = freshState(cfg, numCtx, now)
		if err != nil {
			return err
		}
		logger.Info("starting fresh save")
	case errors.Is(err, store.ErrCorrupt):
		// Halting keeps a hand-recoverable row from being overwritten.
		return fmt.Errorf("save slot is damaged, not starting: %w", err)
	default:
		return err
	}

	state.SetObserver(func(counter, delta bignum.Value) {
		logger.Debug("progress",
			zap.String("counter", counter.String()),
			zap.String("delta", delta.String()))
	})

	tick, err := cfg.TickInterval()
	if err != nil {
		return err
	}
	autosave, err := cfg.AutosaveInterval()
	if err != nil {
		return err
	}

	model := tui.New(tui.Options{
		State:    state,
		Store:    st,
		Logger:   logger,
		Tick:     tick,
		Autosave: autosave,
		Welcome:  welcome,
	})

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	// One last save after the loop exits, covering exit paths that
	// bypassed the quit key.
	if m, ok := final.(tui.Model); ok {
		rec := m.State().MarkSaved(time.Now())
		if err := st.Save(rec); err != nil {
			logger.Error("final save failed", zap.Error(err))
			return fmt.Errorf("final save failed: %w", err)
		}
	}
	return nil
}

// freshState builds a default progression from the configured rates.
func freshState(cfg config.Config, numCtx *bignum.Context, now time.Time) (*game.State, error) {
	click, err := bignum.Parse(numCtx, cfg.Game.ClickPower)
	if err != nil {
		return nil, fmt.Errorf("invalid game.click_power %q: %w", cfg.Game.ClickPower, err)
	}
	rate, err := bignum.Parse(numCtx, cfg.Game.AutoRate)
	if err != nil {
		return nil, fmt.Errorf("invalid game.auto_rate %q: %w", cfg.Game.AutoRate, err)
	}
	return game.NewWithRates(numCtx, now, click, rate), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
