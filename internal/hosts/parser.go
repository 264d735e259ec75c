// ===== internal/hosts/parser.go =====
package hosts

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Parser handles hosts file parsing
type Parser struct {
	log logrus.FieldLogger
}

// NewParser creates a new hosts parser
func NewParser(log logrus.FieldLogger) *Parser {
	return &Parser{log: log}
}

// ParseContent splits hosts file content into trimmed lines.
// Lines that are neither blank, comments, reserved-address rows nor rows led by a
// valid IP are dropped rather than reported.
func (p *Parser) ParseContent(content string) []string {
	var lines []string

	raw := strings.Split(content, "\n")
	// the final newline terminates the last line, it does not start a new one
	if n := len(raw); raw[n-1] == "" {
		raw = raw[:n-1]
	}

	for _, line := range raw {
		line = strings.TrimSpace(line)
		if !p.keepLine(line) {
			p.log.WithField("line", line).Debug("Dropping malformed hosts line")
			continue
		}
		lines = append(lines, line)
	}

	p.log.Debugf("Read %d lines", len(lines))
	return lines
}

// keepLine decides whether a trimmed line survives parsing
func (p *Parser) keepLine(line string) bool {
	if line == "" || isComment(line) {
		return true
	}
	if IsLoopbackOrReserved(line) {
		return true
	}
	fields := splitColumns(line)
	return len(fields) > 0 && IsValidIP(fields[0])
}

// splitColumns splits a line on runs of tabs and spaces
func splitColumns(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
}
