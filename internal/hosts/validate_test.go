package hosts

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLoopbackOrReserved(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"127.0.1.1", true},
		{"::1", true},
		{"fe00::0", true},
		{"ff00::0", true},
		{"ff02::1", true},
		{"192.168.88.1", false},
		{"fe80::1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLoopbackOrReserved(tt.ip))
		})
	}
}

func TestIsValidIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"plain address", "192.168.1.10", true},
		{"loopback", "127.0.0.1", false},
		{"ipv6 loopback", "::1", false},
		{"empty", "", false},
		{"hostname", "router.lan", false},
		{"three octets", "10.0.0", false},
		{"trailing garbage still matches", "10.0.0.1x", true},
		{"ipv6 without dotted quad", "2001:db8::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidIP(tt.ip))
		})
	}
}

func TestIsValidHostname(t *testing.T) {
	tests := []struct {
		name string
		host string
		want bool
	}{
		{"simple", "printer", true},
		{"dotted", "printer.lan", true},
		{"underscore and hyphen", "my_host-1", true},
		{"multicast suffix", "my_host.local", false},
		{"empty", "", false},
		{"space", "my host", false},
		{"caret", "hAP^2", false},
		{"wildcard", "*", false},
		{"question mark", "?", false},
		{"gateway placeholder", "_gateway", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidHostname(tt.host))
		})
	}
}

func TestNormalizeHostname(t *testing.T) {
	assert.Equal(t, "my-host", NormalizeHostname("My_Host"))
	assert.Equal(t, "a-b", NormalizeHostname("a__-_b"))
	assert.Equal(t, "rb750gr3", NormalizeHostname("RB750Gr3"))
	assert.Equal(t, "", NormalizeHostname("bad name"))
	assert.Equal(t, "", NormalizeHostname("phone.local"))
	assert.Equal(t, "", NormalizeHostname(""))
}

func TestResolveSuffix(t *testing.T) {
	log, hook := test.NewNullLogger()

	tests := []struct {
		raw      string
		want     string
		fallback bool
	}{
		{"lan", "lan", false},
		{" home.arpa. ", "home.arpa", false},
		{".lan,", "lan", false},
		{" local, ", DefaultSuffix, true},
		{"", DefaultSuffix, true},
		{" ,. ", DefaultSuffix, true},
		{"my domain", DefaultSuffix, true},
		{"corp.local", DefaultSuffix, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			hook.Reset()
			assert.Equal(t, tt.want, ResolveSuffix(tt.raw, log))
			if tt.fallback {
				require.NotNil(t, hook.LastEntry())
				assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
			} else {
				assert.Empty(t, hook.AllEntries())
			}
		})
	}
}
