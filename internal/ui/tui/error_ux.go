package tui

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/aalvaropc/bracefix/internal/domain"
)

// userMessage turns an error into a one-line status for the footer.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		if errors.Is(err, context.DeadlineExceeded) {
			return "Check timed out"
		}
		return "Unexpected error (see logs)"
	}

	base := "file"
	if oe.Path != "" {
		base = filepath.Base(oe.Path)
	}

	switch oe.Kind {
	case domain.KindNotFound:
		return base + " not found"
	case domain.KindInvalidConfig:
		return "Invalid range or config"
	case domain.KindConflict:
		return base + " is locked or changed"
	default:
		return "Unexpected error (see logs)"
	}
}

// debugDetail is the raw error plus the log location, shown only with --debug.
func (m model) debugDetail() string {
	if !m.deps.Debug || m.err == nil {
		return ""
	}
	out := m.err.Error()
	if m.deps.LogPath != "" {
		out += "\nlog: " + m.deps.LogPath
	}
	return out
}
