package linefile

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/aalvaropc/bracefix/internal/domain"
)

func TestLoadSave_PreservesBytes(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "study-context.tsx")
	content := "useEffect(() => {\r\n  if (isActive) {\r\n  }\r\n}, []);"
	if err := os.WriteFile(path, []byte(content), 0o640); err != nil {
		t.Fatalf("write: %v", err)
	}

	s := NewStore()
	lines, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if lines.Len() != 4 {
		t.Fatalf("expected 4 lines, got %d", lines.Len())
	}

	if err := s.Save(path, lines); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != content {
		t.Fatalf("expected identical bytes, got %q", string(b))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o640 {
		t.Fatalf("expected mode 640 kept, got %o", got)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "a.txt")

	if err := NewStore().Save(path, domain.Lines{"x\n"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "a.txt" {
		t.Fatalf("expected only a.txt, got %v", entries)
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := NewStore().Load(filepath.Join(t.TempDir(), "missing.tsx"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLock_IsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	s := NewStore()

	unlock, err := s.Lock(path)
	if err != nil {
		t.Fatalf("Lock error: %v", err)
	}

	if _, err := s.Lock(path); !errors.Is(err, domain.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := unlock(); err != nil {
		t.Fatalf("unlock error: %v", err)
	}

	unlock2, err := s.Lock(path)
	if err != nil {
		t.Fatalf("expected lock after release, got %v", err)
	}
	_ = unlock2()
}

func TestLock_TakesOverLockOfDeadProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	lockPath := path + lockSuffix
	if err := os.WriteFile(lockPath, []byte("2147483646\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	unlock, err := NewStore().Lock(path)
	if err != nil {
		t.Fatalf("expected stale lock to be taken over, got %v", err)
	}

	b, err := os.ReadFile(lockPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := strings.TrimSpace(string(b)); got != strconv.Itoa(os.Getpid()) {
		t.Fatalf("expected own pid in lock, got %q", got)
	}
	if err := unlock(); err != nil {
		t.Fatalf("unlock error: %v", err)
	}
}

func TestLock_KeepsLockOfLiveOrUnknownOwner(t *testing.T) {
	for name, content := range map[string]string{
		"live":    strconv.Itoa(os.Getpid()) + "\n",
		"garbage": "not a pid\n",
		"empty":   "",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "a.txt")
			if err := os.WriteFile(path+lockSuffix, []byte(content), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := NewStore().Lock(path); !errors.Is(err, domain.ErrLocked) {
				t.Fatalf("expected ErrLocked, got %v", err)
			}
		})
	}
}
