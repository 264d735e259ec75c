package hosts

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestParseContent(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := NewParser(log)

	content := "# managed by hand\r\n" +
		"127.0.0.1\tlocalhost\n" +
		"::1 localhost ip6-localhost\n" +
		"\n" +
		"  192.168.1.10   printer.lan  \n" +
		"; old style comment\n" +
		"garbage line here\n" +
		"fe80::1 link-local\n" +
		"10.0.0.1 gw\n"

	assert.Equal(t, []string{
		"# managed by hand",
		"127.0.0.1\tlocalhost",
		"::1 localhost ip6-localhost",
		"",
		"192.168.1.10   printer.lan",
		"; old style comment",
		"10.0.0.1 gw",
	}, p.ParseContent(content))
}

func TestParseContentTrailingNewline(t *testing.T) {
	log, _ := test.NewNullLogger()
	p := NewParser(log)

	assert.Equal(t, []string{"10.0.0.1 gw"}, p.ParseContent("10.0.0.1 gw\n"))
	assert.Equal(t, []string{"10.0.0.1 gw"}, p.ParseContent("10.0.0.1 gw"))
	assert.Equal(t, []string{"10.0.0.1 gw", ""}, p.ParseContent("10.0.0.1 gw\n\n"))
	assert.Empty(t, p.ParseContent(""))
}
