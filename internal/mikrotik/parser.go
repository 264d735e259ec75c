// ===== internal/mikrotik/parser.go =====
package mikrotik

import (
	"sort"
	"strings"

	"mikrotik-hosts/pkg/models"
)

// terminal noise RouterOS emits when a pseudo-terminal is allocated
var terminalNoise = []string{"\r", "\x1b", "[9999B"}

const interruptMarker = "\ninterrupted\n"

// cleanOutput strips terminal control sequences and everything after the session interrupt
func cleanOutput(output string) string {
	for _, noise := range terminalNoise {
		output = strings.ReplaceAll(output, noise, "")
	}
	if idx := strings.Index(output, interruptMarker); idx >= 0 {
		output = output[:idx]
	}
	return strings.TrimSpace(output)
}

// parseLeases parses "address<TAB>host-name" lines.
// Leases without a host name collapse to a single column and are skipped.
func parseLeases(output string) []models.HostEntry {
	lines := strings.Split(output, "\n")
	sort.Strings(lines)

	var entries []models.HostEntry
	for _, line := range lines {
		if line == "" {
			continue
		}

		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) != 2 {
			continue
		}

		entries = append(entries, models.HostEntry{
			IP:       strings.TrimSpace(fields[0]),
			Hostname: strings.TrimSpace(fields[1]),
		})
	}

	return entries
}
