package usecase

import (
	"context"
	"errors"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

// withLock runs fn under the store's lock for path unless dryRun is set.
func withLock(store ports.LineStore, path string, dryRun bool, fn func() (domain.PatchResult, error)) (res domain.PatchResult, err error) {
	if dryRun {
		return fn()
	}

	unlock, err := store.Lock(path)
	if err != nil {
		return domain.PatchResult{Path: path}, err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = uerr
		}
	}()

	return fn()
}

// commit writes out over before and journals the change. The file is
// written first; a journal failure is reported but the edit stays.
func commit(ctx context.Context, store ports.LineStore, journal ports.Journal, res *domain.PatchResult, before, out domain.Lines) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := store.Save(res.Path, out); err != nil {
		return err
	}
	if journal == nil {
		return nil
	}

	id, err := journal.Record(domain.JournalEntry{
		Op:         res.Op,
		Path:       res.Path,
		Line:       res.Line,
		Text:       res.Text,
		BeforeHash: before.Fingerprint(),
		AfterHash:  out.Fingerprint(),
		Backup:     before.Bytes(),
	})
	res.JournalID = id
	if err != nil {
		return errors.Join(errors.New("file written but journal entry failed"), err)
	}
	return nil
}
