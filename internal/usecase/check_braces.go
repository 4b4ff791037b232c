package usecase

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

const maxParallelChecks = 8

type CheckBraces struct {
	store ports.LineStore
	log   *slog.Logger
}

func NewCheckBraces(store ports.LineStore, log *slog.Logger) *CheckBraces {
	return &CheckBraces{store: store, log: orDiscard(log)}
}

// Execute traces the running brace depth of path over r.
func (uc *CheckBraces) Execute(ctx context.Context, path string, r domain.Range) (domain.BraceReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.BraceReport{}, err
	}
	if err := r.Validate(); err != nil {
		return domain.BraceReport{}, &domain.OpError{Op: "check", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	lines, err := uc.store.Load(path)
	if err != nil {
		return domain.BraceReport{}, err
	}

	rep := domain.TraceBraces(lines, r)
	rep.Path = path

	uc.log.Debug("check.done",
		"path", path,
		"range", r.String(),
		"final", rep.Final,
		"negative", rep.Negative,
		"negative_line", rep.NegativeLine,
	)
	return rep, nil
}

// ExecuteMany checks every path concurrently. Reports of the paths that could
// be read come back in argument order together with the joined errors of the
// ones that could not.
func (uc *CheckBraces) ExecuteMany(ctx context.Context, paths []string, r domain.Range) ([]domain.BraceReport, error) {
	reps := make([]domain.BraceReport, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(maxParallelChecks)

	for i, p := range paths {
		g.Go(func() error {
			reps[i], errs[i] = uc.Execute(ctx, p, r)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.BraceReport, 0, len(paths))
	for i, rep := range reps {
		if errs[i] == nil {
			out = append(out, rep)
		}
	}
	return out, errors.Join(errs...)
}
