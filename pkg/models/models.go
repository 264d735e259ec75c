// ===== pkg/models/models.go =====
package models

import "fmt"

// HostEntry represents a discovered (ip, hostname) pair
type HostEntry struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
}

// String returns the entry the way it would appear as a hosts row
func (e HostEntry) String() string {
	return fmt.Sprintf("%s\t%s", e.IP, e.Hostname)
}
