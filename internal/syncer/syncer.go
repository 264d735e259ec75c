// ===== internal/syncer/syncer.go =====
package syncer

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"mikrotik-hosts/internal/hosts"
	"mikrotik-hosts/internal/mikrotik"
	"mikrotik-hosts/pkg/models"
	"mikrotik-hosts/pkg/utils"
)

// Source supplies raw host candidates from the router
type Source interface {
	Hosts(ctx context.Context, source mikrotik.NameSource) []models.HostEntry
}

// Flusher clears local DNS caches
type Flusher interface {
	Flush(ctx context.Context)
}

// Store persists the hosts file
type Store interface {
	Load() (string, error)
	Backup() (bool, error)
	Save(content string) (bool, error)
}

// Options controls a single run
type Options struct {
	Suffix     string
	NameSource mikrotik.NameSource
	Flush      bool
	DryRun     bool

	// Output receives the rendered table in dry-run mode
	Output io.Writer
}

// Result summarizes a run
type Result struct {
	Suffix        string
	Discovered    int
	Rows          int
	Named         int
	BackupCreated bool
	Changed       bool
}

// Syncer runs the whole discover, reconcile and write pipeline
type Syncer struct {
	source  Source
	flusher Flusher
	store   Store
	opts    Options
	log     logrus.FieldLogger

	parser     *hosts.Parser
	reconciler *hosts.Reconciler
}

// New creates a new syncer
func New(source Source, flusher Flusher, store Store, opts Options, log logrus.FieldLogger) *Syncer {
	return &Syncer{
		source:     source,
		flusher:    flusher,
		store:      store,
		opts:       opts,
		log:        log,
		parser:     hosts.NewParser(log),
		reconciler: hosts.NewReconciler(log),
	}
}

// Run performs one synchronization.
// Nothing is written until the new table is fully built, so a failed run leaves the file as it was.
func (s *Syncer) Run(ctx context.Context) (Result, error) {
	var result Result

	if s.opts.Flush && s.flusher != nil {
		s.flusher.Flush(ctx)
	}

	result.Suffix = hosts.ResolveSuffix(s.opts.Suffix, s.log)

	entries := hosts.ValidateNewHostnames(s.source.Hosts(ctx, s.opts.NameSource))
	result.Discovered = len(entries)
	s.log.WithField("hosts", entries).Debug("Parsed hostnames")

	if err := ctx.Err(); err != nil {
		return result, err
	}

	content, err := s.store.Load()
	if err != nil {
		return result, err
	}

	rows := s.reconciler.Reconcile(s.parser.ParseContent(content), entries, result.Suffix)
	result.Rows = len(rows)
	result.Named = hosts.CountNamed(rows)
	rendered := hosts.Render(rows)

	if s.opts.DryRun {
		if s.opts.Output != nil {
			if _, err := io.WriteString(s.opts.Output, rendered); err != nil {
				return result, fmt.Errorf("failed to print hosts table: %w", err)
			}
		}
		result.Changed = rendered != content
		return result, nil
	}

	if result.BackupCreated, err = s.store.Backup(); err != nil {
		return result, err
	}

	if result.Changed, err = s.store.Save(rendered); err != nil {
		return result, utils.WrapError(err, "failed to save hosts file")
	}

	s.log.WithFields(logrus.Fields{
		"discovered": result.Discovered,
		"rows":       result.Rows,
		"changed":    result.Changed,
	}).Info("Hosts update completed")

	return result, nil
}
