package ports

import "github.com/aalvaropc/bracefix/internal/domain"

// Journal persists applied patches so they can be listed and reverted.
type Journal interface {
	Record(entry domain.JournalEntry) (id string, err error)
	Get(id string) (domain.JournalEntry, error)
	// Latest returns the most recent entry, optionally restricted to path.
	Latest(path string) (domain.JournalEntry, error)
	List() ([]domain.JournalEntry, error)
}
