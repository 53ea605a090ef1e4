package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/1broseidon/deskwm/internal/controls"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/geometry"
)

const doubleClickWindow = 400 * time.Millisecond

// dragState tracks a title-bar drag or corner resize until release.
type dragState struct {
	id     string
	resize bool
	startX int
	startY int
	orig   geometry.Rect
	dx, dy int
}

type click struct {
	id string
	at time.Time
}

// model is the root bubbletea model: the terminal is the display surface.
type model struct {
	desk    *desktop.Desktop
	metrics Metrics
	logger  *log.Logger
	now     func() time.Time

	// Terminal dimensions; the last row holds the help bar.
	width  int
	height int

	keys keyMap
	help help.Model

	drag      *dragState
	lastClick click
	inDock    bool
	status    string
	isError   bool

	launchpad *list.Model
	settings  *settingsForm
}

func newModel(d *desktop.Desktop, m Metrics, logger *log.Logger) model {
	return model{
		desk:    d,
		metrics: m,
		logger:  logger,
		now:     time.Now,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
}

func (m model) surfaceRows() int { return max(0, m.height-1) }

func (m model) scene() scene {
	s := buildScene(m.desk, m.metrics, m.width, m.surfaceRows())
	if m.drag != nil {
		for i := range s.windows {
			if s.windows[i].st.ID != m.drag.id {
				continue
			}
			if m.drag.resize {
				s.windows[i].w = max(2, s.windows[i].w+m.drag.dx)
				s.windows[i].h = max(2, s.windows[i].h+m.drag.dy)
			} else {
				s.windows[i].x += m.drag.dx
				s.windows[i].y = max(0, s.windows[i].y+m.drag.dy)
			}
		}
	}
	return s
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.height = ws.Height
		m.help.Width = ws.Width
		w, h := m.metrics.Surface(m.width, m.surfaceRows())
		vp := m.desk.Resize(w, h)
		m.logger.Debug("surface resized", "cols", m.width, "rows", m.surfaceRows(), "policy", vp.Policy)
	}

	if m.settings != nil {
		return m.updateSettings(msg)
	}

	m.syncLaunchpad()
	if m.launchpad != nil {
		return m.updateLaunchpad(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	return m, nil
}

// syncLaunchpad opens or drops the launchpad list to follow the desktop flag,
// which the dock can also toggle.
func (m *model) syncLaunchpad() {
	visible := m.desk.Launchpad().Get()
	switch {
	case visible && m.launchpad == nil:
		l := newLaunchpad(m.desk, m.width, m.height)
		m.launchpad = &l
	case !visible:
		m.launchpad = nil
	}
}

func (m model) updateLaunchpad(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.launchpad.FilterState() != list.Filtering {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc", " ":
			m.desk.ToggleLaunchpad(false)
			m.launchpad = nil
			return m, nil
		case "enter":
			if it, ok := selectedApp(*m.launchpad); ok {
				m.activateDock(it.id)
			}
			m.syncLaunchpad()
			return m, nil
		}
	}
	l, cmd := m.launchpad.Update(msg)
	m.launchpad = &l
	return m, cmd
}

func (m model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.settings = nil
			return m, nil
		}
	}

	form, cmd := m.settings.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.settings.form = f
	}

	switch m.settings.form.State {
	case huh.StateCompleted:
		if err := m.desk.SetDockSettings(m.settings.values()); err != nil {
			m.setError(err.Error())
		} else {
			m.setStatus("dock settings updated")
		}
		m.settings = nil
		return m, nil
	case huh.StateAborted:
		m.settings = nil
		return m, nil
	}
	return m, cmd
}

func (m model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	focused := m.desk.Manager().Focused()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		m.focusNext()
	case key.Matches(msg, m.keys.Minimize):
		m.activate(focused, controls.Minimize)
	case key.Matches(msg, m.keys.Maximize):
		m.activate(focused, controls.Maximize)
	case key.Matches(msg, m.keys.Close):
		m.activate(focused, controls.Close)
	case key.Matches(msg, m.keys.Left):
		m.nudge(focused, -1, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(focused, 1, 0)
	case key.Matches(msg, m.keys.Up):
		m.nudge(focused, 0, -1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(focused, 0, 1)
	case key.Matches(msg, m.keys.Launchpad):
		m.desk.FlipLaunchpad()
		m.syncLaunchpad()
	case key.Matches(msg, m.keys.Settings):
		m.settings = newSettingsForm(m.desk.Settings().Snapshot())
		return m, m.settings.form.Init()
	}
	return m, nil
}

func (m *model) activate(id string, c controls.Control) {
	if id == "" {
		return
	}
	if !m.desk.Activate(controls.Activate{Window: id, Control: c, Modality: controls.Mouse}) {
		m.setStatus(c.String() + " is not available for " + id)
	}
}

// focusNext raises the backmost visible window, cycling through the stack.
func (m *model) focusNext() {
	s := m.scene()
	if len(s.windows) < 2 {
		return
	}
	m.desk.Focus(s.windows[0].st.ID)
}

// nudge moves a window by whole cells.
func (m *model) nudge(id string, dx, dy int) {
	if id == "" {
		return
	}
	st, ok := m.desk.Frames().Render(id)
	if !ok {
		return
	}
	x := st.Bounds.X + float64(dx)*m.metrics.CellWidth
	y := st.Bounds.Y + float64(dy)*m.metrics.CellHeight
	m.desk.Frames().DragStop(id, x, y)
}

func (m *model) updateMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.mouseMotion(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.mousePress(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		m.mouseRelease()
	}
}

func (m *model) mouseMotion(x, y int) {
	if m.drag != nil {
		m.drag.dx = x - m.drag.startX
		m.drag.dy = y - m.drag.startY
		return
	}

	s := m.scene()
	overDock := y >= s.dockTop && y < s.rows && !s.dock.Hidden
	switch {
	case overDock:
		px := m.metrics.x(x)
		m.desk.Pointer(&px)
		m.inDock = true
	case m.inDock:
		m.desk.Pointer(nil)
		m.inDock = false
	}
}

func (m *model) mousePress(x, y int) {
	m.status = ""
	h := m.scene().hitTest(x, y)
	switch h.kind {
	case hitControl:
		m.desk.Activate(controls.Activate{Window: h.box.st.ID, Control: h.control, Modality: controls.Mouse})
	case hitTitle:
		id := h.box.st.ID
		now := m.now()
		if m.lastClick.id == id && now.Sub(m.lastClick.at) <= doubleClickWindow {
			m.desk.Frames().TitleDoubleClick(id)
			m.lastClick = click{}
			return
		}
		m.lastClick = click{id: id, at: now}
		m.desk.Frames().PointerDown(id)
		if h.box.st.Draggable {
			m.drag = &dragState{id: id, startX: x, startY: y, orig: h.box.st.Bounds}
		}
	case hitResize:
		m.desk.Frames().PointerDown(h.box.st.ID)
		m.drag = &dragState{id: h.box.st.ID, resize: true, startX: x, startY: y, orig: h.box.st.Bounds}
	case hitBody:
		m.desk.Frames().PointerDown(h.box.st.ID)
	case hitDock:
		idx := m.desk.Dock().HitTest(m.metrics.x(x))
		items := m.desk.Dock().Items()
		if idx >= 0 && idx < len(items) {
			m.activateDock(items[idx].ID)
		}
	}
}

func (m *model) mouseRelease() {
	d := m.drag
	m.drag = nil
	if d == nil || (d.dx == 0 && d.dy == 0) {
		return
	}
	dx := float64(d.dx) * m.metrics.CellWidth
	dy := float64(d.dy) * m.metrics.CellHeight
	if d.resize {
		r := d.orig
		r.Width += dx
		r.Height += dy
		m.desk.Frames().ResizeStop(d.id, r)
		return
	}
	m.desk.Frames().DragStop(d.id, d.orig.X+dx, d.orig.Y+dy)
}

func (m *model) activateDock(id string) {
	res, ok := m.desk.ActivateDock(id)
	if !ok {
		return
	}
	if res.Action == desktop.DockLink {
		m.setStatus("link: " + res.Link)
	}
	m.logger.Debug("dock", "id", id, "action", res.Action, "changed", res.Changed)
}

func (m *model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *model) setError(s string) {
	m.status = s
	m.isError = true
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	rows := m.surfaceRows()
	var body string
	switch {
	case m.settings != nil:
		body = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, overlayStyle.Render(m.settings.form.View()))
	case m.launchpad != nil:
		body = lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, overlayStyle.Render(m.launchpad.View()))
	default:
		body = drawScene(m.scene(), m.metrics).render(palette)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.bottomBar())
}

func (m model) bottomBar() string {
	if m.status != "" {
		if m.isError {
			return helpBarStyle.Render(errorStyle.Render(m.status))
		}
		return helpBarStyle.Render(m.status)
	}
	return helpBarStyle.Render(m.help.View(m.keys))
}
