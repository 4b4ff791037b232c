package linefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

const lockSuffix = ".bracefix.lock"

// Store reads whole files into memory and writes them back atomically.
type Store struct {
	lockSuffix string
}

func NewStore() *Store {
	return &Store{lockSuffix: lockSuffix}
}

var _ ports.LineStore = (*Store)(nil)

func (s *Store) Load(path string) (domain.Lines, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{
			Op:   "linefile.load",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}
	return domain.SplitLines(b), nil
}

// Save replaces path with lines, keeping the file mode of the existing file.
func (s *Store) Save(path string, lines domain.Lines) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.OpError{
			Op:   "linefile.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(lines.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "linefile.write",
			Kind: domain.KindExecution,
			Path: tmpName,
			Err:  err,
		}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "linefile.write",
			Kind: domain.KindExecution,
			Path: tmpName,
			Err:  err,
		}
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "linefile.chmod",
			Kind: domain.KindExecution,
			Path: tmpName,
			Err:  err,
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{
			Op:   "linefile.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// Lock creates <path>.bracefix.lock exclusively and records the pid in it. A
// second Lock on the same path fails with domain.ErrLocked until the first is
// released. A lock left behind by a process that no longer runs is taken over.
func (s *Store) Lock(path string) (func() error, error) {
	lockPath := path + s.lockSuffix

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, os.ErrExist) && staleLock(lockPath) {
		if rerr := os.Remove(lockPath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			return nil, &domain.OpError{Op: "linefile.lock", Kind: domain.KindExecution, Path: lockPath, Err: rerr}
		}
		f, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	}
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, &domain.OpError{
				Op:   "linefile.lock",
				Kind: domain.KindConflict,
				Path: lockPath,
				Err:  domain.ErrLocked,
			}
		}
		return nil, &domain.OpError{
			Op:   "linefile.lock",
			Kind: domain.KindExecution,
			Path: lockPath,
			Err:  err,
		}
	}
	_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(lockPath)
		return nil, &domain.OpError{Op: "linefile.lock", Kind: domain.KindExecution, Path: lockPath, Err: werr}
	}

	return func() error {
		if err := os.Remove(lockPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}, nil
}

// staleLock reports whether the lock file names a pid that is no longer
// running. Unreadable or foreign content counts as held.
func staleLock(lockPath string) bool {
	b, err := os.ReadFile(lockPath)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || pid <= 0 {
		return false
	}
	return !processAlive(pid)
}

func processAlive(pid int) bool {
	p, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = p.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	return !errors.Is(err, os.ErrProcessDone) && !errors.Is(err, syscall.ESRCH)
}
