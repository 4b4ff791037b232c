package usecase

import (
	"context"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

type WatchBraces struct {
	check   *CheckBraces
	watcher ports.ChangeWatcher
}

func NewWatchBraces(check *CheckBraces, watcher ports.ChangeWatcher) *WatchBraces {
	return &WatchBraces{check: check, watcher: watcher}
}

// Execute reports a check of path right away and again after every change,
// until ctx is done. Check errors are reported, not returned.
func (uc *WatchBraces) Execute(ctx context.Context, path string, r domain.Range, report func(domain.BraceReport, error)) error {
	run := func() {
		rep, err := uc.check.Execute(ctx, path, r)
		if ctx.Err() != nil {
			return
		}
		report(rep, err)
	}

	run()
	return uc.watcher.Watch(ctx, path, run)
}
