package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

type UndoPatch struct {
	store   ports.LineStore
	journal ports.Journal
	log     *slog.Logger
}

func NewUndoPatch(store ports.LineStore, journal ports.Journal, log *slog.Logger) *UndoPatch {
	return &UndoPatch{store: store, journal: journal, log: orDiscard(log)}
}

// Execute restores the content saved by journal entry id, or by the latest
// entry for path when id is empty. The file must still hold exactly what the
// patch wrote; otherwise a conflict error is returned and nothing changes.
// The restore itself is journaled, so it can be undone too.
func (uc *UndoPatch) Execute(ctx context.Context, id string, path string) (domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.JournalEntry{}, err
	}

	var (
		entry domain.JournalEntry
		err   error
	)
	if id != "" {
		entry, err = uc.journal.Get(id)
	} else {
		entry, err = uc.journal.Latest(path)
	}
	if err != nil {
		return domain.JournalEntry{}, err
	}

	unlock, err := uc.store.Lock(entry.Path)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	defer func() { _ = unlock() }()

	current, err := uc.store.Load(entry.Path)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	if got := current.Fingerprint(); got != entry.AfterHash {
		return domain.JournalEntry{}, &domain.OpError{
			Op:   "undo",
			Kind: domain.KindConflict,
			Path: entry.Path,
			Err:  fmt.Errorf("%w: file changed since %s (have %s, want %s)", domain.ErrConflict, entry.ID, got, entry.AfterHash),
		}
	}

	restored := domain.SplitLines(entry.Backup)
	if err := uc.store.Save(entry.Path, restored); err != nil {
		return domain.JournalEntry{}, err
	}

	rec := domain.JournalEntry{
		Op:         domain.OpRestore,
		Path:       entry.Path,
		Line:       entry.Line,
		Text:       entry.Text,
		BeforeHash: current.Fingerprint(),
		AfterHash:  restored.Fingerprint(),
		Backup:     current.Bytes(),
		RevertOf:   entry.ID,
	}
	rec.ID, err = uc.journal.Record(rec)
	if err != nil {
		return rec, err
	}

	uc.log.Info("undo.applied", "path", entry.Path, "reverted", entry.ID, "journal_id", rec.ID)
	return rec, nil
}
