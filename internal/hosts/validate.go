// ===== internal/hosts/validate.go =====
package hosts

import (
	"regexp"
	"strings"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// DefaultSuffix is used whenever the configured suffix is unusable
const DefaultSuffix = "lan"

// mDNS owns .local, so names ending with it are never written
const multicastSuffix = ".local"

var (
	reservedPrefixes  = []string{"127.", "::1", "fe00:", "ff00:", "ff02:"}
	reservedHostnames = map[string]struct{}{"*": {}, "?": {}, "_gateway": {}}
	reservedSuffixes  = map[string]struct{}{"local": {}}

	dottedQuadRegexp      = regexp.MustCompile(`[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}`)
	invalidHostnameRegexp = regexp.MustCompile(`[^A-Za-z0-9.\-_]`)
	separatorRegexp       = regexp.MustCompile(`[ _-]+`)
)

// IsLoopbackOrReserved reports whether ip is a loopback or multicast address that must never be touched
func IsLoopbackOrReserved(ip string) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}

// IsValidIP reports whether ip looks like a usable IPv4 address.
// The dotted-quad match is unanchored on purpose: lease output sometimes carries
// trailing garbage and older hosts files were accepted that way.
func IsValidIP(ip string) bool {
	return ip != "" && !IsLoopbackOrReserved(ip) && dottedQuadRegexp.MatchString(ip)
}

// IsValidHostname reports whether name may be written to the hosts file
func IsValidHostname(name string) bool {
	if name == "" || invalidHostnameRegexp.MatchString(name) {
		return false
	}
	if strings.HasSuffix(name, multicastSuffix) {
		return false
	}
	_, reserved := reservedHostnames[name]
	return !reserved
}

// NormalizeHostname lowercases a valid hostname and collapses separator runs into a single hyphen.
// An empty result means the name was rejected.
func NormalizeHostname(name string) string {
	if !IsValidHostname(name) {
		return ""
	}
	name = strings.ToLower(strings.TrimSpace(name))
	return separatorRegexp.ReplaceAllString(name, "-")
}

// ResolveSuffix trims the configured suffix and falls back to DefaultSuffix when it is unusable
func ResolveSuffix(raw string, log logrus.FieldLogger) string {
	suffix := strings.Trim(raw, " ,.")
	if _, reserved := reservedSuffixes[suffix]; suffix == "" || reserved || !isDomainSuffix(suffix) {
		log.WithFields(logrus.Fields{
			"suffix":  suffix,
			"default": DefaultSuffix,
		}).Info("Invalid suffix, using default instead")
		return DefaultSuffix
	}
	return suffix
}

func isDomainSuffix(s string) bool {
	if !IsValidHostname(s) {
		return false
	}
	_, ok := dns.IsDomainName(s)
	return ok
}
