package tui

import (
	"math"

	"github.com/1broseidon/deskwm/internal/controls"
	"github.com/1broseidon/deskwm/internal/desktop"
	"github.com/1broseidon/deskwm/internal/frame"
)

// Metrics maps surface pixels to terminal cells.
type Metrics struct {
	CellWidth  float64
	CellHeight float64
}

// DefaultMetrics approximates a common monospace cell.
var DefaultMetrics = Metrics{CellWidth: 8, CellHeight: 16}

func (m Metrics) col(px float64) int { return int(math.Round(px / m.CellWidth)) }
func (m Metrics) row(px float64) int { return int(math.Round(px / m.CellHeight)) }

// x and y return the pixel at the center of a cell.
func (m Metrics) x(col int) float64 { return (float64(col) + 0.5) * m.CellWidth }
func (m Metrics) y(row int) float64 { return (float64(row) + 0.5) * m.CellHeight }

// Surface returns the pixel size of a cols×rows grid.
func (m Metrics) Surface(cols, rows int) (float64, float64) {
	return float64(cols) * m.CellWidth, float64(rows) * m.CellHeight
}

// Controls sit on the top border, two cells apart.
const controlsOffset = 2

var controlOrder = []controls.Control{controls.Close, controls.Minimize, controls.Maximize}

// winBox is a visible window in cell coordinates.
type winBox struct {
	st         frame.State
	x, y, w, h int
}

func (b winBox) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

func (b winBox) controlAt(x, y int) (controls.Control, bool) {
	if y != b.y {
		return 0, false
	}
	for i, c := range controlOrder {
		if x == b.x+controlsOffset+2*i {
			return c, true
		}
	}
	return 0, false
}

// scene is one frame of the desktop laid out on the cell grid.
type scene struct {
	cols, rows int
	windows    []winBox // back to front
	dock       desktop.DockState
	dockTop    int
	focused    string
}

func buildScene(d *desktop.Desktop, m Metrics, cols, rows int) scene {
	s := scene{cols: cols, rows: rows, dock: d.DockState(), focused: d.Manager().Focused()}

	dockRows := int(math.Ceil(d.Manager().Viewport().DockHeight() / m.CellHeight))
	s.dockTop = max(0, rows-dockRows)

	for _, st := range d.Frames().RenderAll() {
		if !st.Visible {
			continue
		}
		s.windows = append(s.windows, toBox(st, m))
	}
	return s
}

// toBox converts bounds to cells. A window pushed above the surface keeps
// its title bar on the first row so it stays reachable.
func toBox(st frame.State, m Metrics) winBox {
	b := winBox{
		st: st,
		x:  m.col(st.Bounds.X),
		y:  m.row(st.Bounds.Y),
		w:  max(2*controlsOffset+2*len(controlOrder)+1, m.col(st.Bounds.Width)),
		h:  max(2, m.row(st.Bounds.Height)),
	}
	if b.y < 0 {
		b.h = max(2, b.h+b.y)
		b.y = 0
	}
	return b
}

type hitKind int

const (
	hitNone hitKind = iota
	hitTitle
	hitControl
	hitBody
	hitResize
	hitDock
)

type hit struct {
	kind    hitKind
	box     winBox
	control controls.Control
}

// hitTest finds what is under a cell. The dock is on top unless it is
// hidden behind a maximized window.
func (s scene) hitTest(x, y int) hit {
	inDock := y >= s.dockTop && y < s.rows
	if inDock && !s.dock.Hidden {
		return hit{kind: hitDock}
	}
	for i := len(s.windows) - 1; i >= 0; i-- {
		b := s.windows[i]
		if !b.contains(x, y) {
			continue
		}
		if c, ok := b.controlAt(x, y); ok {
			return hit{kind: hitControl, box: b, control: c}
		}
		if y == b.y {
			return hit{kind: hitTitle, box: b}
		}
		if x == b.x+b.w-1 && y == b.y+b.h-1 && b.st.Resizable {
			return hit{kind: hitResize, box: b}
		}
		return hit{kind: hitBody, box: b}
	}
	if inDock {
		return hit{kind: hitDock}
	}
	return hit{kind: hitNone}
}
