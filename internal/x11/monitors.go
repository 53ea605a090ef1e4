package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}

	return monitors, nil
}

// Surface returns the usable area of the monitor under the pointer: the
// monitor minus the struts of any panel docked to it. Without RandR the
// root window is the surface.
func (c *Connection) Surface() (Monitor, error) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return Monitor{}, fmt.Errorf("failed to get root geometry: %w", err)
	}
	rootW, rootH := int(rootGeom.Width), int(rootGeom.Height)
	root := Monitor{Name: "root", Width: rootW, Height: rootH}

	monitors, err := c.GetMonitors()
	if err != nil || len(monitors) == 0 {
		return applyStruts(root, rootW, rootH, c.panelStruts(rootW, rootH)), nil
	}

	px, py := -1, -1
	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		px, py = int(pointer.RootX), int(pointer.RootY)
	}
	mon := pickMonitor(monitors, px, py)
	return applyStruts(mon, rootW, rootH, c.panelStruts(rootW, rootH)), nil
}

// pickMonitor returns the monitor containing (x, y), or the first one.
func pickMonitor(monitors []Monitor, x, y int) Monitor {
	for _, m := range monitors {
		if m.contains(x, y) {
			return m
		}
	}
	return monitors[0]
}

// panelStruts collects the struts of every _NET_WM_WINDOW_TYPE_DOCK client.
func (c *Connection) panelStruts(rootW, rootH int) []ewmh.WmStrutPartial {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil
	}

	var out []ewmh.WmStrutPartial
	for _, win := range clients {
		types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
		if err != nil || !hasType(types, "_NET_WM_WINDOW_TYPE_DOCK") {
			continue
		}
		if sp, err := ewmh.WmStrutPartialGet(c.XUtil, win); err == nil {
			out = append(out, *sp)
			continue
		}
		// Some panels only set _NET_WM_STRUT, which spans the whole edge.
		if s, err := ewmh.WmStrutGet(c.XUtil, win); err == nil {
			out = append(out, fullEdgeStrut(s, rootW, rootH))
		}
	}
	return out
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

func fullEdgeStrut(s *ewmh.WmStrut, rootW, rootH int) ewmh.WmStrutPartial {
	return ewmh.WmStrutPartial{
		Left:       s.Left,
		Right:      s.Right,
		Top:        s.Top,
		Bottom:     s.Bottom,
		LeftEndY:   uint(rootH - 1),
		RightEndY:  uint(rootH - 1),
		TopEndX:    uint(rootW - 1),
		BottomEndX: uint(rootW - 1),
	}
}

// applyStruts shrinks mon by the part of each strut that overlaps it.
func applyStruts(mon Monitor, rootW, rootH int, struts []ewmh.WmStrutPartial) Monitor {
	var left, right, top, bottom int
	for _, sp := range struts {
		if sp.Top > 0 {
			w, h := overlap(mon, int(sp.TopStartX), 0, int(sp.TopEndX)+1, int(sp.Top))
			if w > 0 {
				top = max(top, h)
			}
		}
		if sp.Bottom > 0 {
			w, h := overlap(mon, int(sp.BottomStartX), rootH-int(sp.Bottom), int(sp.BottomEndX)+1, rootH)
			if w > 0 {
				bottom = max(bottom, h)
			}
		}
		if sp.Left > 0 {
			w, h := overlap(mon, 0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY)+1)
			if h > 0 {
				left = max(left, w)
			}
		}
		if sp.Right > 0 {
			w, h := overlap(mon, rootW-int(sp.Right), int(sp.RightStartY), rootW, int(sp.RightEndY)+1)
			if h > 0 {
				right = max(right, w)
			}
		}
	}

	mon.X += left
	mon.Y += top
	mon.Width = max(1, mon.Width-left-right)
	mon.Height = max(1, mon.Height-top-bottom)
	return mon
}

// overlap returns the size of the intersection of mon with [x1,x2)×[y1,y2).
func overlap(mon Monitor, x1, y1, x2, y2 int) (int, int) {
	ix1, iy1 := max(mon.X, x1), max(mon.Y, y1)
	ix2, iy2 := min(mon.X+mon.Width, x2), min(mon.Y+mon.Height, y2)
	if ix2 <= ix1 || iy2 <= iy1 {
		return 0, 0
	}
	return ix2 - ix1, iy2 - iy1
}
