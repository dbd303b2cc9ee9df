// Package notify prints short operator-facing messages.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Console writes one line per notification. Error chains never reach it;
// callers pass a short description and log the detail themselves.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

func NewConsole(w io.Writer, quiet bool) *Console {
	return &Console{w: w, quiet: quiet}
}

func (c *Console) Success(title, description string) {
	slog.Default().Info(title, slog.String("description", description))
	if c.quiet {
		return
	}
	c.print("ok", title, description)
}

func (c *Console) Error(title, description string) {
	slog.Default().Warn(title, slog.String("description", description))
	c.print("error", title, description)
}

func (c *Console) print(level, title, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := fmt.Sprintf("[%s] %s", level, title)
	if d := strings.TrimSpace(description); d != "" {
		line += ": " + d
	}
	fmt.Fprintln(c.w, line)
}
