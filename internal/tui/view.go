package tui

import (
	"strings"

	"github.com/1broseidon/deskwm/internal/controls"
)

func drawScene(s scene, m Metrics) *canvas {
	c := newCanvas(s.cols, s.rows)
	if s.dock.Hidden {
		drawDock(c, s, m)
		drawWindows(c, s)
	} else {
		drawWindows(c, s)
		drawDock(c, s, m)
	}
	return c
}

func drawWindows(c *canvas, s scene) {
	for _, b := range s.windows {
		drawWindow(c, b, b.st.ID == s.focused)
	}
}

func drawWindow(c *canvas, b winBox, focused bool) {
	border := stBorder
	if focused {
		border = stBorderFocused
	}
	c.box(b.x, b.y, b.w, b.h, border)

	for i, btn := range b.st.Controls {
		ch, st := '●', controlStyle(btn.Control)
		if !btn.Enabled {
			ch, st = '○', stDisabled
		} else if btn.Glyph == controls.GlyphExitFull {
			ch = '◉'
		}
		c.set(b.x+controlsOffset+2*i, b.y, ch, st)
	}

	titleX := b.x + controlsOffset + 2*len(controlOrder)
	if room := b.x + b.w - 1 - titleX - 1; room > 0 {
		c.text(titleX, b.y, " "+b.st.Title+" ", room, stTitle)
	}
	if b.st.Resizable {
		c.set(b.x+b.w-1, b.y+b.h-1, '◢', border)
	}
}

func controlStyle(ctl controls.Control) styleID {
	switch ctl {
	case controls.Close:
		return stClose
	case controls.Minimize:
		return stMinimize
	default:
		return stMaximize
	}
}

// drawDock draws the icon row one line above the bottom and marks open
// apps on the bottom line. Icon widths follow the magnified scales.
func drawDock(c *canvas, s scene, m Metrics) {
	if s.rows == 0 {
		return
	}
	itemRow := max(s.dockTop, s.rows-2)
	dotRow := s.rows - 1

	for i, item := range s.dock.Items {
		if i >= len(s.dock.Layout.Centers) || i >= len(s.dock.Scales) {
			break
		}
		cx := m.col(s.dock.Layout.Centers[i])
		w := max(3, m.col(s.dock.Scales[i]))
		label := dockLabel(item.Title, w)
		c.text(cx-w/2, itemRow, label, w, stDockItem)
		if item.IsOpen && dotRow != itemRow {
			c.set(cx, dotRow, '•', stDockOpen)
		}
	}
}

// dockLabel fits title into a bracketed label of exactly w cells.
func dockLabel(title string, w int) string {
	inner := w - 2
	runes := []rune(title)
	if len(runes) > inner {
		runes = runes[:inner]
	}
	pad := inner - len(runes)
	left := pad / 2
	return "[" + strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", pad-left) + "]"
}
