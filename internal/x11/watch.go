package x11

import (
	"io"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/charmbracelet/log"
)

// Watcher reports the surface whenever the root window is reconfigured
// (resolution change, monitor hotplug). Repeated notifications with the
// same size are reported once.
type Watcher struct {
	conn   *Connection
	logger *log.Logger

	mu   sync.Mutex
	last Monitor
}

// NewWatcher creates a watcher on conn.
func NewWatcher(conn *Connection, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Watcher{conn: conn, logger: logger}
}

// Start measures the surface once, reports it, and subscribes to root
// ConfigureNotify. Events are dispatched by Connection.EventLoop.
func (w *Watcher) Start(onResize func(Monitor)) error {
	if err := xwindow.New(w.conn.XUtil, w.conn.Root).Listen(xproto.EventMaskStructureNotify); err != nil {
		return err
	}

	w.measure(onResize)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if ev.Window != w.conn.Root {
			return
		}
		w.measure(onResize)
	}).Connect(w.conn.XUtil, w.conn.Root)
	return nil
}

func (w *Watcher) measure(onResize func(Monitor)) {
	mon, err := w.conn.Surface()
	if err != nil {
		w.logger.Warn("surface probe failed", "err", err)
		return
	}
	if !w.changed(mon) {
		return
	}
	w.logger.Debug("surface", "monitor", mon.Name, "width", mon.Width, "height", mon.Height)
	onResize(mon)
}

func (w *Watcher) changed(mon Monitor) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if mon.Width == w.last.Width && mon.Height == w.last.Height {
		return false
	}
	w.last = mon
	return true
}
