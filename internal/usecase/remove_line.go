package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

type RemoveLine struct {
	store   ports.LineStore
	journal ports.Journal
	log     *slog.Logger
}

func NewRemoveLine(store ports.LineStore, journal ports.Journal, log *slog.Logger) *RemoveLine {
	return &RemoveLine{store: store, journal: journal, log: orDiscard(log)}
}

// Execute removes line spec.Line from path. A file with fewer lines is left
// untouched and an out_of_range error is returned.
func (uc *RemoveLine) Execute(ctx context.Context, path string, spec domain.RemoveSpec, dryRun bool) (domain.PatchResult, error) {
	res := domain.PatchResult{Op: domain.OpRemove, Path: path, Line: spec.Line, DryRun: dryRun}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := spec.Validate(); err != nil {
		return res, err
	}

	return withLock(uc.store, path, dryRun, func() (domain.PatchResult, error) {
		lines, err := uc.store.Load(path)
		if err != nil {
			return res, err
		}
		res.Before = lines.Window(spec.Context)

		out, removed, err := domain.ApplyRemove(lines, spec)
		if err != nil {
			var oe *domain.OpError
			if errors.As(err, &oe) {
				oe.Path = path
			}
			uc.log.Info("remove.skipped", "path", path, "line", spec.Line, "lines", lines.Len(), "err", err)
			return res, err
		}

		res.Text = strings.TrimRight(removed, "\r\n")
		res.After = out.Window(spec.Context)
		res.Changed = true

		if dryRun {
			return res, nil
		}
		if err := commit(ctx, uc.store, uc.journal, &res, lines, out); err != nil {
			return res, err
		}
		uc.log.Info("remove.applied", "path", path, "line", res.Line, "journal_id", res.JournalID)
		return res, nil
	})
}
