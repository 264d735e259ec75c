// ===== internal/monitor/monitor.go =====
package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"mikrotik-hosts/internal/syncer"
	"mikrotik-hosts/pkg/utils"
)

// DefaultDebounce is how long the hosts file must stay quiet before a resync
const DefaultDebounce = 2 * time.Second

// Runner performs one synchronization
type Runner interface {
	Run(ctx context.Context) (syncer.Result, error)
}

// Monitor re-runs synchronization on a timer and whenever the hosts file is rewritten
type Monitor struct {
	runner   Runner
	path     string
	interval time.Duration
	debounce time.Duration
	log      logrus.FieldLogger

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New creates a new monitor instance
func New(runner Runner, path string, interval time.Duration, log logrus.FieldLogger) *Monitor {
	return &Monitor{
		runner:   runner,
		path:     path,
		interval: interval,
		debounce: DefaultDebounce,
		log:      log.WithField("file", path),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetDebounce changes the quiet period applied to file events
func (m *Monitor) SetDebounce(d time.Duration) {
	m.debounce = d
}

// Start begins monitoring. The first synchronization happens immediately.
func (m *Monitor) Start(ctx context.Context) error {
	var err error
	m.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// watch the directory: the file itself is replaced by rename on every write
	dir := filepath.Dir(m.path)
	if err := m.watcher.Add(dir); err != nil {
		m.watcher.Close()
		m.watcher = nil
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, m.cancel = context.WithCancel(ctx)
	go m.loop(ctx)

	return nil
}

// Stop stops monitoring and waits for a running synchronization to finish
func (m *Monitor) Stop() {
	close(m.stopCh)
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcher != nil {
		m.watcher.Close()
		<-m.doneCh
	}
}

// loop serializes every synchronization on a single goroutine
func (m *Monitor) loop(ctx context.Context) {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var settle <-chan time.Time

	m.sync(ctx, "startup")

	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if !m.isHostsEvent(event) {
				continue
			}
			m.log.WithField("op", event.Op.String()).Debug("Hosts file modified")
			settle = time.After(m.debounce)

		case <-settle:
			settle = nil
			m.sync(ctx, "file change")

		case <-ticker.C:
			m.sync(ctx, "interval")

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.log.WithError(err).Warn("File watcher error")

		case <-m.stopCh:
			return

		case <-ctx.Done():
			return
		}
	}
}

// isHostsEvent reports whether event rewrote the hosts file itself
func (m *Monitor) isHostsEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(m.path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

func (m *Monitor) sync(ctx context.Context, reason string) {
	log := m.log.WithField("reason", reason)

	result, err := m.runner.Run(ctx)
	if utils.CheckWarn(log, err, "Synchronization failed") {
		return
	}

	log.WithFields(logrus.Fields{
		"discovered": result.Discovered,
		"changed":    result.Changed,
	}).Debug("Synchronization finished")
}
