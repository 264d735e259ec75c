// ===== internal/hosts/discovery.go =====
package hosts

import (
	"sort"

	"mikrotik-hosts/pkg/models"
)

// ValidateNewHostnames filters and normalizes raw discovered entries.
// Survivors are sorted by IP as plain strings, so 192.168.1.10 sorts before 192.168.1.9.
// Duplicate IPs are kept; Collapse decides between them.
func ValidateNewHostnames(raw []models.HostEntry) []models.HostEntry {
	var entries []models.HostEntry

	for _, entry := range raw {
		if !IsValidIP(entry.IP) {
			continue
		}
		hostname := NormalizeHostname(entry.Hostname)
		if !IsValidHostname(hostname) {
			continue
		}
		entries = append(entries, models.HostEntry{IP: entry.IP, Hostname: hostname})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IP < entries[j].IP
	})

	return entries
}

// Collapse reduces entries to one per IP.
// An IP keeps the position of its first occurrence and the hostname of its last.
func Collapse(entries []models.HostEntry) []models.HostEntry {
	index := make(map[string]int, len(entries))
	out := make([]models.HostEntry, 0, len(entries))

	for _, entry := range entries {
		if i, ok := index[entry.IP]; ok {
			out[i].Hostname = entry.Hostname
			continue
		}
		index[entry.IP] = len(out)
		out = append(out, entry)
	}

	return out
}
