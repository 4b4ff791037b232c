package tui

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/bracefix/internal/domain"
)

// Deps wires the viewer to a brace check. Check is called on start and on
// every reload.
type Deps struct {
	Path  string
	Range domain.Range
	Check func(ctx context.Context) (domain.BraceReport, error)

	Logger *slog.Logger
	// Debug shows raw errors and LogPath on the error screen.
	Debug   bool
	LogPath string
}
