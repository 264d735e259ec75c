// ===== internal/hosts/reconcile.go =====
package hosts

import (
	"strings"

	"github.com/sirupsen/logrus"

	"mikrotik-hosts/pkg/models"
)

// Row is one output line of the hosts table.
// A passthrough row has a single column holding the original line.
type Row []string

// Reconciler merges discovered hosts into an existing hosts table
type Reconciler struct {
	log logrus.FieldLogger
}

// NewReconciler creates a new reconciler
func NewReconciler(log logrus.FieldLogger) *Reconciler {
	return &Reconciler{log: log}
}

// Reconcile rewrites existing rows for discovered IPs in place and appends rows for new IPs.
// Any alias that this run owns (bare or suffixed) is removed from every other row, so a
// name never ends up attached to two addresses.
func (r *Reconciler) Reconcile(existing []string, discovered []models.HostEntry, suffix string) []Row {
	entries := Collapse(discovered)

	pending := make(map[string]string, len(entries))
	owned := make(map[string]struct{}, 2*len(entries))
	for _, entry := range entries {
		name := WithSuffix(entry.Hostname, suffix)
		pending[entry.IP] = name
		// hosts lookups ignore case, so ownership does too
		owned[strings.ToLower(entry.Hostname)] = struct{}{}
		owned[strings.ToLower(name)] = struct{}{}
	}

	rows := make([]Row, 0, len(existing)+len(entries))
	for _, line := range existing {
		columns := splitColumns(strings.TrimSpace(line))
		if len(columns) == 0 || isComment(columns[0]) || !IsValidIP(columns[0]) {
			rows = append(rows, Row{line})
			continue
		}

		ip := columns[0]
		aliases := make([]string, 0, len(columns)-1)
		for _, alias := range columns[1:] {
			if _, ok := owned[strings.ToLower(alias)]; !ok {
				aliases = append(aliases, alias)
			}
		}

		// first row for an IP takes the canonical name, later ones keep what is left
		if name, ok := pending[ip]; ok {
			aliases = []string{name}
			delete(pending, ip)
		}

		rows = append(rows, append(Row{ip}, aliases...))
	}

	var added []string
	for _, entry := range entries {
		name, ok := pending[entry.IP]
		if !ok {
			continue
		}
		rows = append(rows, Row{entry.IP, name})
		added = append(added, name)
	}

	r.log.WithField("added", added).Debug("New host names to add")
	return rows
}

// isComment catches commented-out rows such as "#192.168.1.5 nas", whose first column still holds an address
func isComment(column string) bool {
	return strings.HasPrefix(column, "#") || strings.HasPrefix(column, ";")
}

// WithSuffix appends .suffix to hostname unless it is already there
func WithSuffix(hostname, suffix string) string {
	suffix = "." + suffix
	if strings.HasSuffix(hostname, suffix) {
		return hostname
	}
	return hostname + suffix
}
