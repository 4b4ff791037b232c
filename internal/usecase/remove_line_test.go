package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/bracefix/internal/domain"
)

func TestRemoveLine_UndoesInsertedBrace(t *testing.T) {
	src := studyContextSource()
	store := newMemStore(map[string]string{"a.tsx": src})
	cfg := domain.DefaultConfig()

	_, err := NewInsertLine(store, nil, nil).Execute(context.Background(), "a.tsx", cfg.Insert, false)
	require.NoError(t, err)

	res, err := NewRemoveLine(store, nil, nil).Execute(context.Background(), "a.tsx", cfg.Remove, false)
	require.NoError(t, err)
	require.True(t, res.Changed)
	require.Equal(t, 420, res.Line)
	require.Equal(t, "        }", res.Text)

	// Line 420 was the brace the insert added; removing it restores the source.
	require.Equal(t, src, store.content("a.tsx"))
}

func TestRemoveLine_ShortFileIsUntouched(t *testing.T) {
	store := newMemStore(map[string]string{"a.tsx": "{\n}\n"})
	j := &memJournal{}

	res, err := NewRemoveLine(store, j, nil).Execute(context.Background(), "a.tsx", domain.DefaultConfig().Remove, false)
	require.True(t, domain.IsKind(err, domain.KindOutOfRange))
	require.False(t, res.Changed)
	require.Equal(t, "{\n}\n", store.content("a.tsx"))
	require.Zero(t, store.saves)
	require.Empty(t, j.entries)
}

func TestRemoveLine_ExpectMismatch(t *testing.T) {
	src := studyContextSource()
	store := newMemStore(map[string]string{"a.tsx": src})

	// Line 420 of the unpatched source is `    };`, not a lone brace.
	spec := domain.RemoveSpec{Line: 420, Expect: "}"}
	_, err := NewRemoveLine(store, nil, nil).Execute(context.Background(), "a.tsx", spec, false)
	require.True(t, domain.IsKind(err, domain.KindConflict))
	require.Equal(t, src, store.content("a.tsx"))
}

func TestRemoveLine_JournalsBackup(t *testing.T) {
	src := studyContextSource()
	store := newMemStore(map[string]string{"a.tsx": src})
	j := &memJournal{}

	res, err := NewRemoveLine(store, j, nil).Execute(context.Background(), "a.tsx", domain.RemoveSpec{Line: 1}, false)
	require.NoError(t, err)
	require.Equal(t, "j1", res.JournalID)
	require.Len(t, j.entries, 1)

	e := j.entries[0]
	require.Equal(t, domain.OpRemove, e.Op)
	require.Equal(t, []byte(src), e.Backup)
	require.Equal(t, domain.Fingerprint([]byte(src)), e.BeforeHash)
	require.Equal(t, domain.Fingerprint([]byte(store.content("a.tsx"))), e.AfterHash)
}

func TestRemoveLine_DryRun(t *testing.T) {
	src := studyContextSource()
	store := newMemStore(map[string]string{"a.tsx": src})

	res, err := NewRemoveLine(store, nil, nil).Execute(context.Background(), "a.tsx", domain.DefaultConfig().Remove, true)
	require.NoError(t, err)
	require.True(t, res.DryRun)
	require.Equal(t, "    };", res.Text)
	require.Equal(t, src, store.content("a.tsx"))
}
