package session

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultWatchInterval is how often the watchdog polls for expiry.
const DefaultWatchInterval = 30 * time.Second

// Watchdog periodically checks the stored session for an expired access
// token and hands the renew-or-exit decision to its owner via the callback.
// The poll is a cheap local read; no network traffic happens until the
// owner acts on the callback. Start and Stop are idempotent, and Stop must
// be called when the owning context goes away so no timer outlives it.
type Watchdog struct {
	manager    *Manager
	interval   time.Duration
	onExpiring func(*Session)

	mu   sync.Mutex
	stop chan struct{}
}

func NewWatchdog(manager *Manager, interval time.Duration, onExpiring func(*Session)) *Watchdog {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	return &Watchdog{
		manager:    manager,
		interval:   interval,
		onExpiring: onExpiring,
	}
}

func (w *Watchdog) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		return
	}
	w.stop = make(chan struct{})
	go w.run(w.stop)
}

func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop == nil {
		return
	}
	close(w.stop)
	w.stop = nil
}

func (w *Watchdog) run(stop chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *Watchdog) poll() {
	session, err := w.manager.Current()
	if err != nil {
		slog.Error("failed to read session", "error", err)
		return
	}
	if session == nil {
		return
	}
	if w.manager.IsExpired(session) {
		slog.Debug("access token expired", "user", session.User.Email)
		w.onExpiring(session)
	}
}
