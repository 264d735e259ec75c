package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type fakeRunner struct {
	outputs  map[string]string
	failures map[string]error
	commands []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.commands = append(f.commands, cmd)
	return f.outputs[cmd], f.failures[cmd]
}

func warnings(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}

func TestFlush(t *testing.T) {
	log, hook := test.NewNullLogger()
	runner := &fakeRunner{}

	NewFlusher(runner, log).Flush(context.Background())

	assert.Equal(t, []string{
		"resolvectl flush-caches",
		"systemctl restart systemd-hostnamed",
	}, runner.commands)
	assert.Equal(t, 0, warnings(hook))
}

func TestFlushWarnsOnOutput(t *testing.T) {
	log, hook := test.NewNullLogger()
	runner := &fakeRunner{
		outputs: map[string]string{
			"resolvectl flush-caches": "Failed to flush caches\n",
		},
		failures: map[string]error{
			"systemctl restart systemd-hostnamed": errors.New("exit status 1"),
		},
	}

	NewFlusher(runner, log).Flush(context.Background())

	assert.Len(t, runner.commands, 2)
	assert.Equal(t, 2, warnings(hook))
}
