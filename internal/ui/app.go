package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tagview/internal/prefs"
	"github.com/five82/tagview/internal/state"
	"github.com/five82/tagview/internal/view"
)

// Options configures the UI.
type Options struct {
	Store     *state.Store
	APIBind   string
	LogFile   string
	PollTick  time.Duration
	ThemeName string
	Category  string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store     *state.Store
	apiBind   string
	logFile   string
	prefsPath string
	pollTick  time.Duration
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot *state.Snapshot
	filter   view.Filter

	// Table state
	selectedRow int
	offset      int

	// Search input
	search    textinput.Model
	searching bool

	// Overlays
	modal    Modal
	showHelp bool

	// Transient command bar message
	notice    string
	noticeSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	category := opts.Category
	if category == "" {
		category = view.AllCategories
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "tag name"
	search.CharLimit = 64

	return Model{
		store:     opts.Store,
		apiBind:   opts.APIBind,
		logFile:   opts.LogFile,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		filter:    view.Filter{Category: category},
		search:    search,
	}
}

// NewProgram wraps a new model in a full-screen Bubble Tea program.
func NewProgram(opts Options) *tea.Program {
	return tea.NewProgram(New(opts), tea.WithAltScreen())
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(10, m.width-20)
		m.ensureVisible()
		return m, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd(m.pollTick)}
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.applySnapshot(msg.snap)
		return m, nil

	case logLinesMsg:
		m.modal = newLogModal(m.logFile, msg, m.theme, m.width, m.height)
		return m, nil

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderHeader() + "\n" +
		m.renderCategoryBar() + "\n" +
		m.renderTable() + "\n" +
		m.renderCommandBar()
}

// applySnapshot installs the newest snapshot and re-runs the filter. The store
// is preferred over the message payload so late messages never roll back.
func (m *Model) applySnapshot(snap *state.Snapshot) {
	if m.store != nil {
		snap = m.store.Snapshot()
	}
	previous, _ := m.selectedName()
	m.snapshot = snap
	m.updateSelection(previous)
}

// currentSnapshot returns the newest snapshot available.
func (m Model) currentSnapshot() *state.Snapshot {
	if m.store != nil {
		return m.store.Snapshot()
	}
	return m.snapshot
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.filter.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.ClearFilter):
		m.setFilter(view.Filter{Category: view.AllCategories})
		m.savePrefs()
	case key.Matches(msg, m.keys.Escape):
		if m.filter.Search != "" {
			m.setFilter(view.Filter{Category: m.filter.Category})
		}
	case key.Matches(msg, m.keys.Details):
		cmd := m.openDetail()
		return m, cmd
	case key.Matches(msg, m.keys.Logs):
		return m, loadLogsCmd(m.logFile)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(-len(m.visibleTags()))
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(len(m.visibleTags()))
	case key.Matches(msg, m.keys.HalfPageDown):
		m.moveSelection(max(1, m.tableRows()/2))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.moveSelection(-max(1, m.tableRows()/2))
	}
	return m, nil
}

// handleSearchKey feeds the search input. The filter is re-applied on every
// keystroke; enter keeps the query, esc discards it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.setFilter(view.Filter{Category: m.filter.Category})
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setFilter(view.Filter{Category: m.filter.Category, Search: m.search.Value()})
	return m, cmd
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, done := m.modal.Update(msg, m.keys)
	if done {
		m.modal = nil
		return m, cmd
	}
	m.modal = next
	return m, cmd
}

// setFilter replaces the filter, keeping the cursor on the same tag if it is
// still visible.
func (m *Model) setFilter(f view.Filter) {
	previous, _ := m.selectedName()
	m.filter = f
	m.updateSelection(previous)
}

// activeCategory returns the category filter value, defaulting to all.
func (m Model) activeCategory() string {
	if m.filter.Category == "" {
		return view.AllCategories
	}
	return m.filter.Category
}

func (m Model) categoryKnown(options []view.CategoryOption) bool {
	for _, opt := range options {
		if opt.Value == m.activeCategory() {
			return true
		}
	}
	return false
}

// cycleCategory moves the category filter delta steps through the options.
// A remembered category missing from the snapshot restarts the cycle at all.
func (m *Model) cycleCategory(delta int) {
	options := view.CategoryOptions(m.snapshot)
	idx := 0
	for i, opt := range options {
		if opt.Value == m.activeCategory() {
			idx = i
			break
		}
	}
	if !m.categoryKnown(options) {
		idx = 0
		delta = 0
	}
	n := len(options)
	idx = ((idx+delta)%n + n) % n
	m.setFilter(view.Filter{Category: options[idx].Value, Search: m.filter.Search})
	m.savePrefs()
}

// savePrefs persists theme and category. Failures are not fatal.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, Category: m.activeCategory()})
}

// setNotice shows msg in the command bar for NoticeDuration.
func (m *Model) setNotice(msg string) tea.Cmd {
	m.noticeSeq++
	m.notice = msg
	seq := m.noticeSeq
	return tea.Tick(NoticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// Messages

type tickMsg time.Time

type snapshotMsg struct {
	snap *state.Snapshot
}

type clearNoticeMsg struct {
	seq int
}

// SnapshotMsg wraps a refreshed snapshot for delivery through tea.Program.Send.
func SnapshotMsg(snap *state.Snapshot) tea.Msg {
	return snapshotMsg{snap: snap}
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: store.Snapshot()}
	}
}
