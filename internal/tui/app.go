package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mfreeman/picbind/internal/config"
	"github.com/mfreeman/picbind/internal/domain"
	"github.com/mfreeman/picbind/internal/service"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateViewer
	StateConfirmClear
)

// Pane identifies which pane has focus while browsing
type Pane int

const (
	PaneForm Pane = iota
	PaneGallery
)

// galleryRow addresses one renderable gallery line: a recipient header
// (item == -1) or one reference within an expanded group.
type galleryRow struct {
	group int // Index into visible groups
	item  int // Reference index within the group, -1 for the header
}

// Model is the main Bubble Tea model for the application
type Model struct {
	keys KeyMap

	prefetch    *service.Prefetcher
	assignments *service.AssignmentService
	viewer      *service.Viewer
	ui          config.UIConfig
	logger      *slog.Logger

	state ApplicationState
	pane  Pane

	emailInput  textinput.Model
	filterInput textinput.Model
	filtering   bool // Filter input captures keys
	suggestions []string

	current      domain.ImageRecord
	placeholder  bool
	loadingImage bool

	groups   []service.GalleryGroup // Full projection of the store
	visible  []service.GalleryGroup // After the recipient filter
	rows     []galleryRow
	cursor   int
	expanded map[string]bool

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel creates the application model
func NewModel(pf *service.Prefetcher, as *service.AssignmentService, ui config.UIConfig, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}

	email := textinput.New()
	email.Placeholder = "recipient@example.com"
	email.CharLimit = 254
	email.Focus()

	filter := textinput.New()
	filter.Placeholder = "filter recipients"
	filter.CharLimit = 64

	m := &Model{
		keys:         DefaultKeyMap(),
		prefetch:     pf,
		assignments:  as,
		viewer:       service.NewViewer(),
		ui:           ui,
		logger:       logger,
		state:        StateBrowsing,
		pane:         PaneForm,
		emailInput:   email,
		filterInput:  filter,
		loadingImage: true,
		expanded:     make(map[string]bool),
	}
	m.refreshGallery()
	return m
}

// Init starts the image pipeline
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, TakeNextCmd(m.prefetch))
}

// refreshGallery re-derives the projection from a fresh store enumeration.
// Called after every mutation; the gallery never diffs incrementally.
func (m *Model) refreshGallery() {
	m.groups = service.ProjectGallery(m.assignments.ListAll())
	m.applyFilter()
}

// applyFilter rebuilds the visible groups and row index from the current
// filter query.
func (m *Model) applyFilter() {
	m.visible = service.FilterGallery(m.groups, m.filterInput.Value())

	m.rows = m.rows[:0]
	for gi, g := range m.visible {
		m.rows = append(m.rows, galleryRow{group: gi, item: -1})
		if m.expanded[g.Recipient] {
			for ii := range g.References {
				m.rows = append(m.rows, galleryRow{group: gi, item: ii})
			}
		}
	}

	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// setStatus sets the transient status line
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusErr = isErr
	return ClearStatusCmd()
}

// knownRecipients lists every recipient in the unfiltered projection
func (m *Model) knownRecipients() []string {
	recipients := make([]string, 0, len(m.groups))
	for _, g := range m.groups {
		recipients = append(recipients, g.Recipient)
	}
	return recipients
}

// currentRow returns the gallery row under the cursor
func (m *Model) currentRow() (galleryRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return galleryRow{}, false
	}
	return m.rows[m.cursor], true
}

// Update handles all messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ImageReadyMsg:
		m.loadingImage = false
		m.placeholder = msg.Placeholder
		m.current = msg.Record
		if msg.Placeholder {
			return m, m.setStatus("Image source unavailable, showing placeholder", true)
		}
		return m, nil

	case AssignDoneMsg:
		m.refreshGallery()
		var cmds []tea.Cmd
		if msg.Outcome == domain.OutcomeAlreadyAssigned {
			cmds = append(cmds, m.setStatus("That image is already assigned to "+msg.Recipient, false))
		} else {
			cmds = append(cmds, m.setStatus("Assigned to "+msg.Recipient, false))
			if m.ui.AutoExpandGroup {
				m.expanded[msg.Recipient] = true
				m.applyFilter()
			}
			if !m.ui.KeepDisplayed {
				m.loadingImage = true
				cmds = append(cmds, TakeNextCmd(m.prefetch))
			}
		}
		if m.ui.ClearInput {
			m.emailInput.Reset()
			m.suggestions = nil
		}
		return m, tea.Batch(cmds...)

	case RemoveDoneMsg:
		m.refreshGallery()
		return m, m.setStatus("Removed image from "+msg.Recipient, false)

	case ClearedMsg:
		m.state = StateBrowsing
		m.expanded = make(map[string]bool)
		m.refreshGallery()
		return m, m.setStatus("All assignments cleared", false)

	case ClearStatusMsg:
		m.status = ""
		m.statusErr = false
		return m, nil

	case ErrMsg:
		m.logger.Error("operation failed", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key events by application state
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.state {
	case StateViewer:
		return m.handleViewerKey(msg)
	case StateConfirmClear:
		return m.handleConfirmKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Filter input swallows everything except its terminators
	if m.filtering {
		switch {
		case key.Matches(msg, m.keys.Escape):
			m.filtering = false
			m.filterInput.Reset()
			m.filterInput.Blur()
			m.applyFilter()
			return m, nil
		case key.Matches(msg, m.keys.Enter):
			m.filtering = false
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Tab):
		if m.pane == PaneForm {
			m.pane = PaneGallery
			m.emailInput.Blur()
		} else {
			m.pane = PaneForm
			m.emailInput.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Skip):
		m.loadingImage = true
		return m, TakeNextCmd(m.prefetch)

	case key.Matches(msg, m.keys.ClearAll):
		m.state = StateConfirmClear
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if m.pane == PaneGallery {
			m.filtering = true
			return m, m.filterInput.Focus()
		}
	}

	if m.pane == PaneForm {
		return m.handleFormKey(msg)
	}
	return m.handleGalleryKey(msg)
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Enter) {
		return m, m.submitAssign()
	}

	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	m.suggestions = service.SuggestRecipients(m.knownRecipients(), m.emailInput.Value(), 3)
	return m, cmd
}

// submitAssign validates the form and assigns the displayed image
func (m *Model) submitAssign() tea.Cmd {
	recipient := m.emailInput.Value()
	if !domain.ValidRecipient(recipient) {
		return m.setStatus("Please enter a valid email address", true)
	}
	if m.placeholder || m.current.IsZero() {
		return m.setStatus("No image loaded to assign", true)
	}
	return AssignCmd(m.assignments, recipient, m.current.Reference)
}

func (m *Model) handleGalleryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Right):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if row.item == -1 {
			recipient := m.visible[row.group].Recipient
			m.expanded[recipient] = !m.expanded[recipient]
			m.applyFilter()
			return m, nil
		}
		return m, m.openViewer(row)

	case key.Matches(msg, m.keys.Left):
		row, ok := m.currentRow()
		if ok && row.item == -1 {
			delete(m.expanded, m.visible[row.group].Recipient)
			m.applyFilter()
		}
		return m, nil

	case key.Matches(msg, m.keys.View):
		row, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		return m, m.openViewer(row)

	case key.Matches(msg, m.keys.Delete):
		row, ok := m.currentRow()
		if !ok || row.item == -1 {
			return m, nil
		}
		// Position comes straight from the projection rebuilt after the
		// last mutation, so it is never stale.
		return m, RemoveCmd(m.assignments, m.visible[row.group].Recipient, row.item)
	}

	return m, nil
}

// openViewer seeds the viewer from the row's group and enters viewer state
func (m *Model) openViewer(row galleryRow) tea.Cmd {
	group := m.visible[row.group]
	start := row.item
	if start < 0 {
		start = 0
	}
	if err := m.viewer.Open(group.References, start); err != nil {
		m.logger.Warn("viewer open rejected", "error", err)
		return m.setStatus("Nothing to view", true)
	}
	m.state = StateViewer
	return nil
}

func (m *Model) handleViewerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if err := m.viewer.Prev(); err != nil {
			m.logger.Warn("viewer navigation on closed viewer", "error", err)
		}
	case key.Matches(msg, m.keys.Right):
		if err := m.viewer.Next(); err != nil {
			m.logger.Warn("viewer navigation on closed viewer", "error", err)
		}
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Enter):
		m.viewer.Close()
		m.state = StateBrowsing
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m, ClearAllCmd(m.assignments)
	case key.Matches(msg, m.keys.Deny), key.Matches(msg, m.keys.Escape):
		m.state = StateBrowsing
	}
	return m, nil
}
