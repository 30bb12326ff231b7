package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idler/internal/bignum"
	"idler/internal/game"
	"idler/internal/store"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// session builds a model over a real temp store with a controllable clock.
func session(t *testing.T) (Model, *time.Time) {
	t.Helper()
	ctx := bignum.NewContext(bignum.DefaultPrecision)
	st, err := store.Open(filepath.Join(t.TempDir(), "game.db"), ctx)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	clock := &now

	m := New(Options{
		State:    game.New(ctx, now),
		Store:    st,
		Tick:     100 * time.Millisecond,
		Autosave: 10 * time.Second,
		Now:      func() time.Time { return *clock },
	})
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestStartsPaused(t *testing.T) {
	m, _ := session(t)
	assert.False(t, m.Running())
}

func TestPausedTickIsDiscarded(t *testing.T) {
	m, clock := session(t)
	*clock = clock.Add(5 * time.Second)

	m, cmd := update(t, m, tickMsg(*clock))
	assert.True(t, m.state.Counter.IsZero())
	assert.NotNil(t, cmd, "tick schedule must keep running while paused")
}

func TestResumeAppliesTicksAndPaysPausedInterval(t *testing.T) {
	m, clock := session(t)

	m, _ = update(t, m, keyRune('p'))
	require.True(t, m.Running())

	// The interval spent paused is charged in one catch-up tick.
	*clock = clock.Add(5 * time.Second)
	m, _ = update(t, m, tickMsg(*clock))
	assert.Equal(t, "5", m.state.Counter.String())
}

func TestClickAddsClickPower(t *testing.T) {
	m, _ := session(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "10", m.state.Counter.String())
	assert.Equal(t, "+10", m.flash)

	m, _ = update(t, m, keyRune('c'))
	assert.Equal(t, "20", m.state.Counter.String())
}

func TestManualSaveRoundTrips(t *testing.T) {
	m, clock := session(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	*clock = clock.Add(time.Minute)
	m, cmd := update(t, m, keyRune('s'))
	require.NotNil(t, cmd)
	assert.Equal(t, *clock, m.state.LastSave)

	res, ok := cmd().(saveResultMsg)
	require.True(t, ok)
	require.NoError(t, res.err)
	assert.True(t, res.manual)

	m, _ = update(t, m, res)
	assert.Equal(t, "Game saved!", m.banner)

	loaded, err := m.store.Load()
	require.NoError(t, err)
	assert.Equal(t, "10", loaded.Counter.String())
}

func TestAutosaveStampsLastSave(t *testing.T) {
	m, clock := session(t)
	before := m.state.LastSave

	*clock = clock.Add(30 * time.Second)
	m, cmd := update(t, m, autosaveMsg(*clock))
	require.NotNil(t, cmd)
	assert.True(t, m.state.LastSave.After(before))
}

func TestSaveFailureKeepsSessionAlive(t *testing.T) {
	m, _ := session(t)

	m, _ = update(t, m, saveResultMsg{err: assert.AnError})
	assert.Contains(t, m.banner, "unsaved")
	assert.False(t, m.quitting)
}

func TestResetConfirmationFlow(t *testing.T) {
	m, _ := session(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, "10", m.state.Counter.String())

	// Anything but y cancels.
	m, _ = update(t, m, keyRune('r'))
	assert.True(t, m.confirmReset)
	m, _ = update(t, m, keyRune('n'))
	assert.False(t, m.confirmReset)
	assert.Equal(t, "10", m.state.Counter.String())

	// y replaces the state with fresh defaults.
	m, _ = update(t, m, keyRune('r'))
	m, _ = update(t, m, keyRune('y'))
	assert.True(t, m.state.Counter.IsZero())
	assert.Equal(t, "10", m.state.ClickPower.String())
}

func TestResetKeepsConfiguredRates(t *testing.T) {
	m, _ := session(t)
	ctx := m.state.Counter.Ctx()
	m.state.ClickPower = bignum.MustParse(ctx, "50")
	m.state.AutoRate = bignum.MustParse(ctx, "2.5")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	m, _ = update(t, m, keyRune('r'))
	m, cmd := update(t, m, keyRune('y'))
	require.NotNil(t, cmd)

	assert.True(t, m.state.Counter.IsZero())
	assert.Equal(t, "50", m.state.ClickPower.String(), "reset must not revert configured rates")
	assert.Equal(t, "2.5", m.state.AutoRate.String(), "reset must not revert configured rates")
}

func TestInitSchedulesWelcomeBannerClear(t *testing.T) {
	m, _ := session(t)

	batch, ok := m.Init()().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2, "tick and autosave schedules")

	welcomed := New(Options{
		State:    m.state,
		Store:    m.store,
		Tick:     100 * time.Millisecond,
		Autosave: 10 * time.Second,
		Welcome:  "Welcome back! You earned 42 while away!",
		Now:      m.now,
	})
	batch, ok = welcomed.Init()().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 3, "welcome banner clear must be scheduled too")

	// The scheduled clear targets the welcome banner's sequence.
	cleared, _ := update(t, welcomed, clearBannerMsg{seq: welcomed.bannerSeq})
	assert.Empty(t, cleared.banner)
}

func TestQuitStampsFinalSave(t *testing.T) {
	m, clock := session(t)
	before := m.state.LastSave

	*clock = clock.Add(time.Second)
	m, cmd := update(t, m, keyRune('q'))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.True(t, m.state.LastSave.After(before))
}

func TestFlashClearsOnMatchingSeq(t *testing.T) {
	m, _ := session(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	require.NotEmpty(t, m.flash)

	// A stale clear from an earlier flash is ignored.
	m, _ = update(t, m, clearFlashMsg{seq: m.flashSeq - 1})
	assert.NotEmpty(t, m.flash)

	m, _ = update(t, m, clearFlashMsg{seq: m.flashSeq})
	assert.Empty(t, m.flash)
}

func TestViewShowsCounterAndWelcome(t *testing.T) {
	m, _ := session(t)
	m.banner = "Welcome back! You earned 42 while away!"

	view := m.View()
	assert.Contains(t, view, "Resources")
	assert.Contains(t, view, "0")
	assert.Contains(t, view, "Welcome back!")
	assert.True(t, strings.Contains(view, "paused"))
}
