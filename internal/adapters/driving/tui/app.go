// Package tui implements the interactive terminal driving adapter: a
// live search screen over the catalog with the user's shelf membership
// folded into every row.
//
// Two channels feed the model: the debounced search stream's results
// and the saved-set subscription's snapshots. Each is pumped through a
// tea.Cmd that re-arms itself after every receive, so emissions arrive
// as ordinary messages and the join re-runs whenever either side moves.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shelfwise/shelfwise-cli/internal/adapters/driving/tui/styles"
	"github.com/shelfwise/shelfwise-cli/internal/core/domain"
	"github.com/shelfwise/shelfwise-cli/internal/core/ports/driving"
	"github.com/shelfwise/shelfwise-cli/internal/logger"
)

// Config wires the app to the core. Join is the row projection,
// injected so the adapter stays behind the driving ports.
type Config struct {
	Library driving.LibraryService
	Stream  driving.SearchStream
	UserID  string

	Join func(books []domain.BookRecord, saved domain.SavedBookSet) []domain.BookRow
}

// resultsMsg carries one applied search state.
type resultsMsg domain.SearchState

// savedMsg carries one saved-set snapshot.
type savedMsg domain.SavedBookSet

// streamClosedMsg signals the results channel is done.
type streamClosedMsg struct{}

// Model is the bubbletea model for the search screen.
type Model struct {
	config Config
	styles *styles.Styles

	input   textinput.Model
	spinner spinner.Model

	rows     []domain.BookRow
	books    []domain.BookRecord
	saved    domain.SavedBookSet
	selected int

	savedCh     <-chan domain.SavedBookSet
	savedSub    driving.Subscription
	width       int
	height      int
	searching   bool
	unavailable bool
	err         error
}

// NewModel creates the app model.
func NewModel(config Config) *Model {
	input := textinput.New()
	input.Placeholder = "Search books by title or author"
	input.Focus()
	input.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		config:  config,
		styles:  styles.DefaultStyles(),
		input:   input,
		spinner: sp,
		saved:   domain.NewSavedBookSet(nil),
	}
}

// Init opens the saved-set subscription and starts both pumps.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.waitForResults()}

	if m.config.Library != nil && m.config.UserID != "" {
		snaps, sub, err := m.config.Library.SubscribeSaved(context.Background(), m.config.UserID)
		if err != nil {
			m.err = err
		} else {
			m.savedCh = snaps
			m.savedSub = sub
			cmds = append(cmds, m.waitForSaved())
		}
	}

	// An empty query change kicks off the initial browse listing.
	m.config.Stream.OnQueryChange("")
	m.searching = true
	cmds = append(cmds, m.spinner.Tick)

	return tea.Batch(cmds...)
}

// waitForResults pumps the search stream into the update loop.
func (m *Model) waitForResults() tea.Cmd {
	return func() tea.Msg {
		state, ok := <-m.config.Stream.Results()
		if !ok {
			return streamClosedMsg{}
		}
		return resultsMsg(state)
	}
}

// waitForSaved pumps saved-set snapshots into the update loop.
func (m *Model) waitForSaved() tea.Cmd {
	ch := m.savedCh
	return func() tea.Msg {
		set, ok := <-ch
		if !ok {
			return nil
		}
		return savedMsg(set)
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 6
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultsMsg:
		m.books = msg.Books
		m.unavailable = msg.Unavailable
		m.searching = m.config.Stream.Busy()
		m.rejoin()
		return m, m.waitForResults()

	case savedMsg:
		m.saved = domain.SavedBookSet(msg)
		m.rejoin()
		return m, m.waitForSaved()

	case streamClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.teardown()
		return m, tea.Quit

	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case tea.KeyDown:
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
		return m, nil

	case tea.KeyEnter:
		return m, m.toggleSelected()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if after := m.input.Value(); after != before {
		m.config.Stream.OnQueryChange(after)
		m.searching = true
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

// toggleSelected flips shelf membership for the highlighted row. The
// write is fire-and-forget: the saved-set snapshot updates the marker.
func (m *Model) toggleSelected() tea.Cmd {
	if m.config.Library == nil || m.config.UserID == "" {
		return nil
	}
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil
	}
	book := m.rows[m.selected].Book

	return func() tea.Msg {
		if err := m.config.Library.ToggleSaved(context.Background(), m.config.UserID, book); err != nil {
			logger.Warn("toggling %s: %v", book.ID, err)
		}
		return nil
	}
}

// rejoin recomputes the row projection and clamps the cursor.
func (m *Model) rejoin() {
	if m.config.Join != nil {
		m.rows = m.config.Join(m.books, m.saved)
	} else {
		m.rows = nil
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) teardown() {
	if m.savedSub != nil {
		m.savedSub.Cancel()
		m.savedSub = nil
	}
	m.config.Stream.Close()
}

// View renders the screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Shelfwise"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.InputBox.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.searching:
		b.WriteString(m.spinner.View())
		b.WriteString(m.styles.Muted.Render(" searching..."))
		b.WriteString("\n")
	case m.unavailable:
		b.WriteString(m.styles.Error.Render("catalog unavailable"))
		b.WriteString("\n")
	case len(m.rows) == 0:
		b.WriteString(m.styles.Muted.Render("no books found"))
		b.WriteString("\n")
	}

	maxRows := m.height - 10
	if maxRows < 1 {
		maxRows = len(m.rows)
	}
	for i, row := range m.rows {
		if i >= maxRows {
			b.WriteString(m.styles.Muted.Render("  ..."))
			b.WriteString("\n")
			break
		}
		b.WriteString(m.renderRow(i, row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ navigate · enter toggle shelf · esc quit"))
	return b.String()
}

func (m *Model) renderRow(i int, row domain.BookRow) string {
	marker := "  "
	if row.Saved {
		marker = m.styles.Saved.Render("● ")
	}

	line := row.Book.Title
	if authors := row.Book.AuthorLine(); authors != "" {
		line += m.styles.Muted.Render(" by " + authors)
	}

	if i == m.selected {
		return marker + m.styles.Selected.Render("> ") + line
	}
	return marker + "  " + line
}

// Run starts the program and blocks until it exits.
func Run(config Config) error {
	model := NewModel(config)
	defer model.teardown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
