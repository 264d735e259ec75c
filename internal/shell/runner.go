// ===== internal/shell/runner.go =====
package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner executes an external command and returns its raw text output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Exec runs commands on the local machine
type Exec struct {
	log     logrus.FieldLogger
	timeout time.Duration
}

// NewExec creates a runner; a zero timeout means no per-command limit
func NewExec(log logrus.FieldLogger, timeout time.Duration) *Exec {
	return &Exec{log: log, timeout: timeout}
}

// Run executes the command and returns its stdout.
// The output is returned even when the command fails; stderr only ends up in logs and errors.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	e.log.WithFields(logrus.Fields{
		"command": joinLines(name + " " + strings.Join(args, " ")),
		"output":  stdout.String(),
		"stderr":  stderr.String(),
	}).Debug("Ran command")

	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.String(), fmt.Errorf("failed to run %s: %w: %s", name, err, msg)
		}
		return stdout.String(), fmt.Errorf("failed to run %s: %w", name, err)
	}
	return stdout.String(), nil
}

// joinLines folds a multi-line script into one line for logging
func joinLines(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
