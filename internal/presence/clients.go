package presence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// StatusFileClient writes the current activity as JSON to a file, for
// status bars and tmux segments to pick up. The file is removed on Close.
type StatusFileClient struct {
	Path string
}

// Connect checks that the status file location is writable.
func (c *StatusFileClient) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return fmt.Errorf("presence: status dir: %w", err)
	}
	return c.write(Activity{})
}

// SetActivity replaces the status file contents.
func (c *StatusFileClient) SetActivity(ctx context.Context, a Activity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.write(a)
}

// Close removes the status file.
func (c *StatusFileClient) Close() error {
	if err := os.Remove(c.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("presence: remove status file: %w", err)
	}
	return nil
}

func (c *StatusFileClient) write(a Activity) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("presence: encode: %w", err)
	}
	tmp := c.Path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("presence: write status file: %w", err)
	}
	if err := os.Rename(tmp, c.Path); err != nil {
		return fmt.Errorf("presence: replace status file: %w", err)
	}
	return nil
}

// LogClient reports activity changes to a logger.
type LogClient struct {
	Logger *log.Logger
}

// Connect implements Client.
func (c *LogClient) Connect(context.Context) error {
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	return nil
}

// SetActivity implements Client.
func (c *LogClient) SetActivity(_ context.Context, a Activity) error {
	c.Logger.Info("activity", "details", a.Details, "state", a.State, "start", a.Start)
	return nil
}

// Close implements Client.
func (c *LogClient) Close() error {
	return nil
}
