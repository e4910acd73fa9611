package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/scrob/internal/cache"
	"github.com/desertthunder/scrob/internal/history"
	"github.com/desertthunder/scrob/internal/models"
	"github.com/desertthunder/scrob/internal/scrobble"
	"github.com/desertthunder/scrob/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	QueueView ViewState = iota
	ConfirmView
	SubmitView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	cache     *cache.Cache
	submitter scrobble.Submitter
	journal   *history.Repository
	batchSize int
	width     int
	height    int
	queueList list.Model
	result    *scrobble.FlushResult
	err       error
	help      help.Model
	keys      keyMap
}

// scrobbleItem wraps [models.Track] to implement [list.Item].
type scrobbleItem struct {
	track models.Track
}

var _ list.Item = scrobbleItem{}

func (i scrobbleItem) FilterValue() string { return i.track.Title }
func (i scrobbleItem) Title() string       { return i.track.Title }
func (i scrobbleItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return fmt.Sprintf("%s • %s", desc, shared.FormatTimestamp(i.track.Timestamp))
}

type flushCompleteMsg struct {
	result *scrobble.FlushResult
	err    error
}

// NewModel creates a new TUI model over a user's queue.
func NewModel(ctx context.Context, c *cache.Cache, submitter scrobble.Submitter, journal *history.Repository, batchSize int) *Model {
	m := &Model{
		ctx:       ctx,
		view:      QueueView,
		cache:     c,
		submitter: submitter,
		journal:   journal,
		batchSize: batchSize,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.rebuildQueueList()
	return m
}

// Init is a no-op; the queue is already loaded.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.queueList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case QueueView:
			return m.handleQueueKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case flushCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	if m.view == QueueView {
		var cmd tea.Cmd
		m.queueList, cmd = m.queueList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case QueueView:
		return m.renderQueue()
	case ConfirmView:
		return m.renderConfirm()
	case SubmitView:
		return m.renderSubmit()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s", "enter":
		if len(m.cache.Tracks()) > 0 {
			m.view = ConfirmView
		}
		return m, nil
	case "d", "x":
		if item, ok := m.queueList.SelectedItem().(scrobbleItem); ok {
			m.cache.Discard([]models.Track{item.track})
			m.rebuildQueueList()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.queueList, cmd = m.queueList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = QueueView
		return m, nil
	case "y":
		m.view = SubmitView
		return m, m.startFlush()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc", "enter":
		m.rebuildQueueList()
		if msg.String() == "esc" || msg.String() == "enter" {
			m.view = QueueView
			m.result = nil
			m.err = nil
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startFlush() tea.Cmd {
	return func() tea.Msg {
		result, err := scrobble.Flush(m.ctx, m.cache, m.submitter, m.journal, scrobble.FlushOptions{BatchSize: m.batchSize})
		return flushCompleteMsg{result: result, err: err}
	}
}

func (m *Model) rebuildQueueList() {
	tracks := m.cache.Tracks()
	items := make([]list.Item, len(tracks))
	for i, track := range tracks {
		items[i] = scrobbleItem{track: track}
	}

	m.queueList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.queueList.Title = fmt.Sprintf("Pending scrobbles • %s", m.cache.Username())
	if m.width > 0 {
		m.queueList.SetSize(m.width-4, m.height-8)
	}
}

func (m *Model) renderQueue() string {
	helpKeys := []key.Binding{m.keys.submit, m.keys.discard, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.queueList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	count := len(m.cache.Tracks())
	title := styles.title.Render(fmt.Sprintf("Submit %d scrobbles for %s?", count, m.cache.Username()))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", title, helpView)
}

func (m *Model) renderSubmit() string {
	return styles.title.Render("Submitting...") + "\n"
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil {
		submitted := 0
		if m.result != nil {
			submitted = m.result.Submitted
		}
		body := styles.error.Render(fmt.Sprintf("Submission failed: %v", m.err))
		note := styles.warning.Render(fmt.Sprintf("%d submitted before the failure; the rest stay queued", submitted))
		return fmt.Sprintf("%s\n%s\n\n%s", body, note, helpView)
	}

	title := styles.success.Render("✓ Submission complete")
	info := fmt.Sprintf("\nSubmitted: %d\nRemaining: %d\n", m.result.Submitted, m.result.Remaining)
	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
