package ports

import "github.com/aalvaropc/bracefix/internal/domain"

// LineStore loads and persists a file as lines.
type LineStore interface {
	Load(path string) (domain.Lines, error)
	Save(path string, lines domain.Lines) error
	// Lock takes an exclusive lock on path for a read-modify-write cycle.
	Lock(path string) (unlock func() error, err error)
}
