package transcribe

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

// Command runs an external recognizer and reads JSON segments from its
// stdout.
type Command struct {
	args        []string
	path        string
	stopTimeout time.Duration
	logger      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// CommandOption configures a Command.
type CommandOption func(*Command)

// WithLogger sets the logger for recognizer diagnostics.
func WithLogger(l *slog.Logger) CommandOption {
	return func(c *Command) { c.logger = l }
}

// NewCommand resolves the program once. If it cannot be found the
// transcriber reports itself unavailable.
func NewCommand(cfg Config, opts ...CommandOption) *Command {
	c := &Command{
		stopTimeout: cfg.StopTimeout,
		logger:      slog.New(slog.DiscardHandler),
	}
	if c.stopTimeout <= 0 {
		c.stopTimeout = DefaultConfig().StopTimeout
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(cfg.Command) == 0 {
		return c
	}
	path, err := exec.LookPath(cfg.Command[0])
	if err != nil {
		c.logger.Info("speech recognizer not found", "command", cfg.Command[0], "err", err)
		return c
	}
	c.path = path
	c.args = cfg.Command[1:]
	return c
}

func (c *Command) Available() bool { return c.path != "" }

func (c *Command) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done != nil
}

// Start launches the recognizer.
func (c *Command) Start(ctx context.Context) (<-chan Segment, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return nil, ErrActive
	}

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, c.path, c.args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("recognizer stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start recognizer: %w", err)
	}

	out := make(chan Segment, 16)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		defer close(out)

		sc := bufio.NewScanner(stdout)
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 {
				continue
			}
			var seg Segment
			if err := json.Unmarshal(line, &seg); err != nil {
				c.logger.Debug("skipping recognizer line", "err", err)
				continue
			}
			select {
			case out <- seg:
			case <-runCtx.Done():
			}
		}
		if err := cmd.Wait(); err != nil && runCtx.Err() == nil {
			c.logger.Warn("speech recognizer exited", "err", err)
		}

		c.mu.Lock()
		if c.done == done {
			c.done = nil
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}()

	return out, nil
}

// Stop terminates the recognizer and waits for it to exit.
func (c *Command) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()
	if done == nil {
		return nil
	}

	cancel()
	select {
	case <-done:
		return nil
	case <-time.After(c.stopTimeout):
		return fmt.Errorf("speech recognizer did not exit within %s", c.stopTimeout)
	}
}
