package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aalvaropc/bracefix/internal/domain"
)

// --- fixtures ---

// studyContextSource mirrors the broken block of hooks/study-context.tsx:
// the `if (isActive) {` opened on line 413 is never closed.
func studyContextSource() string {
	var b strings.Builder
	for i := 1; i <= 398; i++ {
		fmt.Fprintf(&b, "// line %d\n", i)
	}
	b.WriteString("  useEffect(() => {\n")            // 399
	b.WriteString("    let isActive = true;\n")       // 400
	b.WriteString("    const load = async () => {\n") // 401
	for i := 402; i <= 412; i++ {
		fmt.Fprintf(&b, "      // step %d\n", i)
	}
	b.WriteString("      if (isActive) {\n")                    // 413
	b.WriteString("        try {\n")                            // 414
	b.WriteString("          await AsyncStorage.clear();\n")    // 415
	b.WriteString("          setSubjects(DEFAULT_SUBJECTS);\n") // 416
	b.WriteString("        } catch (e) {\n")                    // 417
	b.WriteString("          console.warn(e);\n")               // 418
	b.WriteString("        }\n")                                // 419
	b.WriteString("    };\n")                                   // 420
	b.WriteString("    load();\n")                              // 421
	b.WriteString("    return () => {\n")                       // 422
	b.WriteString("      isActive = false;\n")                  // 423
	b.WriteString("    };\n")                                   // 424
	b.WriteString("  }, []);\n")                                // 425
	for i := 426; i <= 440; i++ {
		fmt.Fprintf(&b, "// tail %d\n", i)
	}
	return b.String()
}

// --- fakes ---

type memStore struct {
	mu      sync.Mutex
	files   map[string]string
	locked  map[string]bool
	saves   int
	saveErr error
}

func newMemStore(files map[string]string) *memStore {
	return &memStore{files: files, locked: map[string]bool{}}
}

func (s *memStore) Load(path string) (domain.Lines, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.files[path]
	if !ok {
		return nil, &domain.OpError{Op: "mem.load", Kind: domain.KindNotFound, Path: path, Err: domain.ErrNotFound}
	}
	return domain.SplitLines([]byte(c)), nil
}

func (s *memStore) Save(path string, lines domain.Lines) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.files[path] = string(lines.Bytes())
	return nil
}

func (s *memStore) Lock(path string) (func() error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked[path] {
		return nil, &domain.OpError{Op: "mem.lock", Kind: domain.KindConflict, Path: path, Err: domain.ErrLocked}
	}
	s.locked[path] = true
	return func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.locked, path)
		return nil
	}, nil
}

func (s *memStore) content(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[path]
}

type memJournal struct {
	entries []domain.JournalEntry
	err     error
}

func (j *memJournal) Record(e domain.JournalEntry) (string, error) {
	if j.err != nil {
		return "", j.err
	}
	e.ID = fmt.Sprintf("j%d", len(j.entries)+1)
	j.entries = append(j.entries, e)
	return e.ID, nil
}

func (j *memJournal) Get(id string) (domain.JournalEntry, error) {
	for _, e := range j.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.JournalEntry{}, &domain.OpError{Op: "mem.get", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
}

func (j *memJournal) Latest(path string) (domain.JournalEntry, error) {
	for i := len(j.entries) - 1; i >= 0; i-- {
		if path == "" || j.entries[i].Path == path {
			return j.entries[i], nil
		}
	}
	return domain.JournalEntry{}, &domain.OpError{Op: "mem.latest", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
}

func (j *memJournal) List() ([]domain.JournalEntry, error) {
	return append([]domain.JournalEntry(nil), j.entries...), nil
}

// scriptedWatcher fires onChange once per tick, then blocks until ctx is done.
type scriptedWatcher struct {
	ticks  int
	before func(i int)
}

func (w *scriptedWatcher) Watch(ctx context.Context, _ string, onChange func()) error {
	for i := 0; i < w.ticks; i++ {
		if w.before != nil {
			w.before(i)
		}
		onChange()
	}
	<-ctx.Done()
	return nil
}
