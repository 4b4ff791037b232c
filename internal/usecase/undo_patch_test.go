package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/infra/journal"
	"github.com/aalvaropc/bracefix/internal/infra/linefile"
)

func TestUndoPatch_RestoresLatestOnDisk(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "study-context.tsx")
	src := studyContextSource()
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	store := linefile.NewStore()
	j := journal.NewJSONStore(root, domain.JournalConfig{Enabled: true})

	ins, err := NewInsertLine(store, j, nil).Execute(context.Background(), path, domain.DefaultConfig().Insert, false)
	require.NoError(t, err)

	rec, err := NewUndoPatch(store, j, nil).Execute(context.Background(), "", path)
	require.NoError(t, err)
	require.Equal(t, domain.OpRestore, rec.Op)
	require.Equal(t, ins.JournalID, rec.RevertOf)
	require.NotEmpty(t, rec.ID)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, src, string(b))

	// The restore is journaled and can itself be undone.
	redo, err := NewUndoPatch(store, j, nil).Execute(context.Background(), rec.ID, "")
	require.NoError(t, err)
	require.Equal(t, rec.ID, redo.RevertOf)

	b, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "        }\n        }\n    };\n")
}

func TestUndoPatch_RefusesWhenFileChanged(t *testing.T) {
	store := newMemStore(map[string]string{"a.tsx": studyContextSource()})
	j := &memJournal{}

	_, err := NewInsertLine(store, j, nil).Execute(context.Background(), "a.tsx", domain.DefaultConfig().Insert, false)
	require.NoError(t, err)

	store.files["a.tsx"] += "// edited by hand\n"
	edited := store.content("a.tsx")

	_, err = NewUndoPatch(store, j, nil).Execute(context.Background(), "j1", "")
	require.True(t, domain.IsKind(err, domain.KindConflict))
	require.ErrorIs(t, err, domain.ErrConflict)
	require.Equal(t, edited, store.content("a.tsx"))
}

func TestUndoPatch_NothingToUndo(t *testing.T) {
	_, err := NewUndoPatch(newMemStore(nil), &memJournal{}, nil).Execute(context.Background(), "", "a.tsx")
	require.True(t, domain.IsKind(err, domain.KindNotFound))
}
