package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

type InsertLine struct {
	store   ports.LineStore
	journal ports.Journal
	log     *slog.Logger
}

// NewInsertLine builds the use case. journal may be nil to skip recording.
func NewInsertLine(store ports.LineStore, journal ports.Journal, log *slog.Logger) *InsertLine {
	return &InsertLine{store: store, journal: journal, log: orDiscard(log)}
}

// Execute inserts spec.Text into path. The returned result always carries the
// Before window, even when no insertion point is found.
func (uc *InsertLine) Execute(ctx context.Context, path string, spec domain.InsertSpec, dryRun bool) (domain.PatchResult, error) {
	res := domain.PatchResult{Op: domain.OpInsert, Path: path, DryRun: dryRun}
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
		res.Before = lines.Window(spec.Before)

		out, at, err := domain.ApplyInsert(lines, spec)
		if err != nil {
			var oe *domain.OpError
			if errors.As(err, &oe) {
				oe.Path = path
			}
			uc.log.Info("insert.skipped", "path", path, "anchor", spec.Anchor, "err", err)
			return res, err
		}

		res.Line = at + 1
		res.Text = out.Text(at)
		res.After = out.Window(spec.After)
		res.Changed = true

		if dryRun {
			return res, nil
		}
		if err := commit(ctx, uc.store, uc.journal, &res, lines, out); err != nil {
			return res, err
		}
		uc.log.Info("insert.applied", "path", path, "line", res.Line, "journal_id", res.JournalID)
		return res, nil
	})
}
