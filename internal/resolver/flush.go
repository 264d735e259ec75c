// ===== internal/resolver/flush.go =====
package resolver

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"mikrotik-hosts/internal/shell"
)

// Flusher clears the local resolver caches through systemd
type Flusher struct {
	runner shell.Runner
	log    logrus.FieldLogger
}

// NewFlusher creates a new cache flusher
func NewFlusher(runner shell.Runner, log logrus.FieldLogger) *Flusher {
	return &Flusher{runner: runner, log: log}
}

// Flush asks systemd-resolved to drop its caches and restarts systemd-hostnamed.
// Both steps are best effort; any output means something went wrong and is logged.
func (f *Flusher) Flush(ctx context.Context) {
	f.log.Info("Flush DNS caches")
	f.step(ctx, "DNS cache flush", "resolvectl", "flush-caches")

	f.log.Info("Restart DNS")
	f.step(ctx, "DNS restart", "systemctl", "restart", "systemd-hostnamed")
}

func (f *Flusher) step(ctx context.Context, what, name string, args ...string) {
	output, err := f.runner.Run(ctx, name, args...)
	output = strings.TrimSpace(output)
	if err != nil || output != "" {
		f.log.WithError(err).WithField("output", output).Warnf("%s attempt finished unexpectedly", what)
	}
}
