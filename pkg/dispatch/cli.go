package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

const (
	defaultCLITimeout = 30 * time.Second
	waitDelay         = 2 * time.Second
)

type runResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

type runFunc func(ctx context.Context, name string, args []string) (runResult, error)

type cliTransport struct {
	binary  string
	timeout time.Duration
	run     runFunc
}

// NewCLITransport delivers through the local gateway command line tool.
func NewCLITransport(binary string, timeout time.Duration) *cliTransport {
	if timeout <= 0 {
		timeout = defaultCLITimeout
	}
	return &cliTransport{
		binary:  binary,
		timeout: timeout,
		run:     runCommand,
	}
}

func (t *cliTransport) Name() string { return "cli" }

func (t *cliTransport) Deliver(ctx context.Context, channel, text, media string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	args := cliArgs(newMessage(channel, text, media))
	slog.DebugContext(ctx, "Running gateway cli", "binary", t.binary, "channel", channel)

	res, err := t.run(ctx, t.binary, args)
	if err != nil {
		return &domain.DispatchError{Transport: t.Name(), ExitCode: res.ExitCode, Body: res.Stderr, Err: err}
	}
	if res.ExitCode != 0 {
		return &domain.DispatchError{Transport: t.Name(), ExitCode: res.ExitCode, Body: strings.TrimSpace(res.Stderr)}
	}

	slog.DebugContext(ctx, "Gateway cli finished", "stdout", strings.TrimSpace(res.Stdout))
	return nil
}

func cliArgs(m message) []string {
	return []string{
		"message", m.Action,
		"--channel", m.Channel,
		"--message", m.Message,
		"--media", m.Media,
	}
}

// runCommand returns an error only when the process could not be run to
// completion. A non-zero exit is reported through ExitCode.
func runCommand(ctx context.Context, name string, args []string) (runResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	res := runResult{Stdout: outBuf.String(), Stderr: errBuf.String()}

	if ctx.Err() != nil {
		res.ExitCode = -1
		return res, fmt.Errorf("running %s: %w", name, ctx.Err())
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	default:
		res.ExitCode = -1
		return res, fmt.Errorf("starting %s: %w", name, err)
	}
}
