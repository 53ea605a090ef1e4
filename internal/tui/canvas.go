package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleID indexes the palette a canvas is rendered with.
type styleID int

const (
	stPlain styleID = iota
	stBorder
	stBorderFocused
	stTitle
	stClose
	stMinimize
	stMaximize
	stDisabled
	stDockItem
	stDockOpen
	stStatus
)

type cell struct {
	ch rune
	st styleID
}

// canvas is a fixed grid of styled cells. Drawing outside the grid is
// clipped.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{ch: ' '}
	}
	return c
}

func (c *canvas) set(x, y int, ch rune, st styleID) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell{ch: ch, st: st}
}

func (c *canvas) at(x, y int) rune {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.cells[y*c.w+x].ch
}

// text writes s starting at (x, y), at most limit runes (limit < 0 means
// no limit).
func (c *canvas) text(x, y int, s string, limit int, st styleID) {
	i := 0
	for _, r := range s {
		if limit >= 0 && i >= limit {
			return
		}
		c.set(x+i, y, r, st)
		i++
	}
}

// box draws a rounded border and clears the interior.
func (c *canvas) box(x, y, w, h int, st styleID) {
	if w < 2 || h < 2 {
		return
	}
	for row := y + 1; row < y+h-1; row++ {
		for col := x + 1; col < x+w-1; col++ {
			c.set(col, row, ' ', stPlain)
		}
	}
	for col := x + 1; col < x+w-1; col++ {
		c.set(col, y, '─', st)
		c.set(col, y+h-1, '─', st)
	}
	for row := y + 1; row < y+h-1; row++ {
		c.set(x, row, '│', st)
		c.set(x+w-1, row, '│', st)
	}
	c.set(x, y, '╭', st)
	c.set(x+w-1, y, '╮', st)
	c.set(x, y+h-1, '╰', st)
	c.set(x+w-1, y+h-1, '╯', st)
}

// plain returns the canvas without styling, one line per row.
func (c *canvas) plain() string {
	var sb strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < c.w; x++ {
			sb.WriteRune(c.cells[y*c.w+x].ch)
		}
	}
	return sb.String()
}

// render styles runs of equal style with the palette.
func (c *canvas) render(palette map[styleID]lipgloss.Style) string {
	var sb strings.Builder
	var run strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		cur := styleID(-1)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := palette[cur]; ok {
				sb.WriteString(style.Render(run.String()))
			} else {
				sb.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := c.cells[y*c.w+x]
			if cl.st != cur {
				flush()
				cur = cl.st
			}
			run.WriteRune(cl.ch)
		}
		flush()
	}
	return sb.String()
}
