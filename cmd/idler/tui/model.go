// Package tui is the interactive session driver: a bubbletea model that
// runs the tick and autosave schedules, routes key presses into the
// progression state, and renders the counter. All state mutation happens
// on the update loop; persistence writes run as background commands over
// immutable snapshots, so no operation races another against the state.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"idler/internal/bignum"
	"idler/internal/game"
	"idler/internal/store"
)

// flashTTL is how long an increment flash stays on screen.
const flashTTL = time.Second

// Messages driving the session schedules.
type (
	tickMsg     time.Time
	autosaveMsg time.Time

	saveResultMsg struct {
		err    error
		manual bool
	}

	clearFlashMsg  struct{ seq int }
	clearBannerMsg struct{ seq int }
)

// Options configures the session model.
type Options struct {
	State    *game.State
	Store    *store.Store
	Logger   *zap.Logger
	Tick     time.Duration
	Autosave time.Duration

	// Welcome is shown once at startup (offline-earnings banner).
	Welcome string

	// Now is the session clock; nil means time.Now. Tests inject one.
	Now func() time.Time
}

// Model is the session driver state.
type Model struct {
	state *game.State
	store *store.Store
	log   *zap.Logger

	styles Styles
	keys   keyMap
	help   help.Model

	tickEvery     time.Duration
	autosaveEvery time.Duration
	now           func() time.Time

	// significant is the smallest increment worth flashing.
	significant bignum.Value

	running      bool
	confirmReset bool
	quitting     bool

	flash     string
	flashSeq  int
	banner    string
	bannerSeq int
	saveAt    time.Time

	width  int
	height int
}

// New builds the session model. The game starts paused; the player
// enables updates explicitly with the pause key.
func New(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := Model{
		state:         opts.State,
		store:         opts.Store,
		log:           log,
		styles:        DefaultStyles(),
		keys:          defaultKeyMap(),
		help:          help.New(),
		tickEvery:     opts.Tick,
		autosaveEvery: opts.Autosave,
		now:           now,
		significant:   bignum.MustParse(opts.State.Counter.Ctx(), "0.1"),
		banner:        opts.Welcome,
	}
	if m.banner != "" {
		m.bannerSeq++
	}
	return m
}

// State exposes the live progression state to the driver that owns the
// program, for the final save after the loop exits.
func (m Model) State() *game.State {
	return m.state
}

// Running reports whether ticks are currently applied.
func (m Model) Running() bool {
	return m.running
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.scheduleTick(), m.scheduleAutosave()}
	if m.banner != "" {
		cmds = append(cmds, m.clearBannerCmd(m.bannerSeq))
	}
	return tea.Batch(cmds...)
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.tickEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) scheduleAutosave() tea.Cmd {
	return tea.Tick(m.autosaveEvery, func(t time.Time) tea.Msg { return autosaveMsg(t) })
}

// saveCmd writes the snapshot off-loop. The record shares nothing with
// the live state, so the update loop keeps mutating freely meanwhile.
func (m Model) saveCmd(rec game.Record, manual bool) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return saveResultMsg{err: st.Save(rec), manual: manual}
	}
}

func (m Model) clearFlashCmd(seq int) tea.Cmd {
	return tea.Tick(flashTTL, func(time.Time) tea.Msg { return clearFlashMsg{seq: seq} })
}

func (m Model) clearBannerCmd(seq int) tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg { return clearBannerMsg{seq: seq} })
}

func (m *Model) setBanner(text string) tea.Cmd {
	m.banner = text
	m.bannerSeq++
	return m.clearBannerCmd(m.bannerSeq)
}

func (m *Model) setFlash(delta bignum.Value) tea.Cmd {
	m.flash = "+" + delta.Format()
	m.flashSeq++
	return m.clearFlashCmd(m.flashSeq)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		var cmd tea.Cmd
		if m.running {
			// Paused sessions skip the tick entirely; the elapsed
			// interval is charged in one catch-up on resume.
			increment := m.state.Tick(m.now())
			if increment.Cmp(m.significant) >= 0 {
				cmd = m.setFlash(increment)
			}
		}
		return m, tea.Batch(m.scheduleTick(), cmd)

	case autosaveMsg:
		if m.quitting {
			return m, nil
		}
		rec := m.state.MarkSaved(m.now())
		return m, tea.Batch(m.scheduleAutosave(), m.saveCmd(rec, false))

	case saveResultMsg:
		if msg.err != nil {
			// Storage trouble must not end the session; play on unsaved.
			m.log.Error("save failed", zap.Error(msg.err))
			return m, m.setBanner("Save failed; progressing unsaved")
		}
		m.saveAt = m.now()
		if msg.manual {
			return m, m.setBanner("Game saved!")
		}
		return m, nil

	case clearFlashMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case clearBannerMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		return m.handleResetConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		// Final save regardless of the pause flag, then quit.
		m.quitting = true
		rec := m.state.MarkSaved(m.now())
		return m, tea.Sequence(m.saveCmd(rec, false), tea.Quit)

	case key.Matches(msg, m.keys.Click):
		added := m.state.Click()
		return m, m.setFlash(added)

	case key.Matches(msg, m.keys.Save):
		rec := m.state.MarkSaved(m.now())
		return m, m.saveCmd(rec, true)

	case key.Matches(msg, m.keys.Pause):
		m.running = !m.running
		if m.running {
			return m, m.setBanner("Game updates enabled")
		}
		return m, m.setBanner("Game updates disabled")

	case key.Matches(msg, m.keys.Reset):
		m.confirmReset = true
		return m, nil
	}
	return m, nil
}

// handleResetConfirm is the inline y/n confirmation: y confirms,
// anything else cancels.
func (m Model) handleResetConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmReset = false
	switch msg.String() {
	case "y", "Y":
		now := m.now()
		m.state = m.state.Reset(now)
		m.flash = ""
		m.flashSeq++
		rec := m.state.MarkSaved(now)
		return m, tea.Batch(m.saveCmd(rec, false), m.setBanner("Game reset! Starting fresh."))
	default:
		return m, m.setBanner("Reset cancelled.")
	}
}
