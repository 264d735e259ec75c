// ===== internal/mikrotik/client.go =====
package mikrotik

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"mikrotik-hosts/internal/shell"
	"mikrotik-hosts/pkg/models"
)

// NameSource selects which router attribute names the router's own address
type NameSource string

const (
	NameSourceBoard    NameSource = "board"
	NameSourceIdentity NameSource = "identity"
	NameSourceNone     NameSource = "none"
)

// ParseNameSource validates a configured name source
func ParseNameSource(s string) (NameSource, error) {
	switch ns := NameSource(s); ns {
	case NameSourceBoard, NameSourceIdentity, NameSourceNone:
		return ns, nil
	}
	return "", fmt.Errorf("unknown name source %q", s)
}

const (
	boardNameScript = ":put [/system resource get board-name]"
	identityScript  = ":put [/system identity get name]"
	leasesScript    = `/ip dhcp-server lease;
:foreach i in=[find] do={
	:put ([get $i address]."\t".[get $i host-name])
};`
)

// Client queries a RouterOS device over ssh
type Client struct {
	User string
	Host string
	Port int
	SSH  string

	runner shell.Runner
	log    logrus.FieldLogger
}

// NewClient creates a new RouterOS client
func NewClient(runner shell.Runner, log logrus.FieldLogger, user, host string, port int) *Client {
	return &Client{
		User:   user,
		Host:   host,
		Port:   port,
		SSH:    "ssh",
		runner: runner,
		log:    log.WithField("router", fmt.Sprintf("%s@%s:%d", user, host, port)),
	}
}

// Query runs a RouterOS script and returns its cleaned output.
// A failed command is only logged: garbage output is filtered downstream.
func (c *Client) Query(ctx context.Context, script string) string {
	output, err := c.runner.Run(ctx, c.SSH,
		"-t",
		fmt.Sprintf("%s@%s", c.User, c.Host),
		"-p", strconv.Itoa(c.Port),
		script+"; :delay 1000ms; /quit;",
	)
	if err != nil {
		c.log.WithError(err).Warn("Router command finished unexpectedly")
	}
	return cleanOutput(output)
}

// BoardName returns the router's hardware board name
func (c *Client) BoardName(ctx context.Context) string {
	return c.Query(ctx, boardNameScript)
}

// Identity returns the router's configured system identity
func (c *Client) Identity(ctx context.Context) string {
	return c.Query(ctx, identityScript)
}

// Leases returns the raw address/host-name pairs from the DHCP server lease table
func (c *Client) Leases(ctx context.Context) []models.HostEntry {
	return parseLeases(c.Query(ctx, leasesScript))
}

// Hosts returns the router's own entry followed by every lease, unvalidated
func (c *Client) Hosts(ctx context.Context, source NameSource) []models.HostEntry {
	var entries []models.HostEntry

	switch source {
	case NameSourceBoard:
		entries = append(entries, models.HostEntry{IP: c.Host, Hostname: c.BoardName(ctx)})
	case NameSourceIdentity:
		entries = append(entries, models.HostEntry{IP: c.Host, Hostname: c.Identity(ctx)})
	}

	leases := c.Leases(ctx)
	c.log.Debugf("Received %d leases", len(leases))

	return append(entries, leases...)
}
