package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

type History struct {
	journal ports.Journal
}

func NewHistory(journal ports.Journal) *History {
	return &History{journal: journal}
}

func (uc *History) List(ctx context.Context) ([]domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.journal.List()
}

// Query evaluates a JSONPath expression against the journal, viewed as an
// array of objects with keys id, op, path, line, text, applied_at, revert_of.
// Example: $[?(@.op=="remove")].id
func (uc *History) Query(ctx context.Context, expr string) (any, error) {
	entries, err := uc.List(ctx)
	if err != nil {
		return nil, err
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, &domain.OpError{Op: "history.query", Kind: domain.KindInvalidConfig, Err: domain.ErrInvalidConfig}
	}

	doc := make([]any, 0, len(entries))
	for _, e := range entries {
		doc = append(doc, map[string]any{
			"id":         e.ID,
			"op":         string(e.Op),
			"path":       e.Path,
			"line":       float64(e.Line),
			"text":       e.Text,
			"applied_at": e.AppliedAt.UTC().Format(time.RFC3339),
			"revert_of":  e.RevertOf,
		})
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{Op: "history.query", Kind: domain.KindInvalidConfig, Err: err}
	}
	return val, nil
}
