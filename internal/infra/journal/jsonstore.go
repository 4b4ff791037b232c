package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/bracefix/internal/domain"
	"github.com/aalvaropc/bracefix/internal/ports"
)

const (
	defaultDir = ".bracefix/journal"
	indexFile  = "index.jsonl"
)

// JSONStore keeps one JSON file per applied patch plus a JSONL index.
type JSONStore struct {
	dir   string
	now   func() time.Time
	newID func() string
}

type Option func(*JSONStore)

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, cfg domain.JournalConfig, opts ...Option) *JSONStore {
	dir := cfg.Dir
	if strings.TrimSpace(dir) == "" {
		dir = defaultDir
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}

	s := &JSONStore{
		dir:   dir,
		now:   time.Now,
		newID: func() string { return uuid.NewString()[:8] },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.Journal = (*JSONStore)(nil)

type entryDTO struct {
	ID         string    `json:"id"`
	Op         string    `json:"op"`
	Path       string    `json:"path"`
	Line       int       `json:"line"`
	Text       string    `json:"text,omitempty"`
	AppliedAt  time.Time `json:"applied_at"`
	BeforeHash string    `json:"before_hash"`
	AfterHash  string    `json:"after_hash"`
	RevertOf   string    `json:"revert_of,omitempty"`
	Backup     []byte    `json:"backup,omitempty"`
}

func toDTO(e domain.JournalEntry) entryDTO {
	return entryDTO{
		ID:         e.ID,
		Op:         string(e.Op),
		Path:       e.Path,
		Line:       e.Line,
		Text:       e.Text,
		AppliedAt:  e.AppliedAt,
		BeforeHash: e.BeforeHash,
		AfterHash:  e.AfterHash,
		RevertOf:   e.RevertOf,
		Backup:     e.Backup,
	}
}

func (d entryDTO) toDomain() domain.JournalEntry {
	return domain.JournalEntry{
		ID:         d.ID,
		Op:         domain.PatchOp(d.Op),
		Path:       d.Path,
		Line:       d.Line,
		Text:       d.Text,
		AppliedAt:  d.AppliedAt,
		BeforeHash: d.BeforeHash,
		AfterHash:  d.AfterHash,
		RevertOf:   d.RevertOf,
		Backup:     d.Backup,
	}
}

func (s *JSONStore) Record(entry domain.JournalEntry) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "journal.mkdir",
			Kind: domain.KindExecution,
			Path: s.dir,
			Err:  err,
		}
	}

	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = s.now()
	}
	entry.AppliedAt = entry.AppliedAt.UTC()
	entry.ID = fmt.Sprintf("%s_%s_%s", entry.AppliedAt.Format("20060102T150405Z"), entry.Op, s.newID())

	path := filepath.Join(s.dir, entry.ID+".json")
	b, err := json.MarshalIndent(toDTO(entry), "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "journal.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "journal.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "journal.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if err := s.appendIndex(entry); err != nil {
		return entry.ID, &domain.OpError{
			Op:   "journal.index",
			Kind: domain.KindExecution,
			Path: filepath.Join(s.dir, indexFile),
			Err:  err,
		}
	}
	return entry.ID, nil
}

func (s *JSONStore) appendIndex(entry domain.JournalEntry) error {
	summary := toDTO(entry)
	summary.Backup = nil

	line, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

func (s *JSONStore) Get(id string) (domain.JournalEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return domain.JournalEntry{}, &domain.OpError{
			Op:   "journal.get",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("invalid journal id %q", id),
		}
	}

	path := filepath.Join(s.dir, id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return domain.JournalEntry{}, &domain.OpError{
			Op:   "journal.get",
			Kind: kind,
			Path: path,
			Err:  err,
		}
	}

	var d entryDTO
	if err := json.Unmarshal(b, &d); err != nil {
		return domain.JournalEntry{}, &domain.OpError{
			Op:   "journal.get",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return d.toDomain(), nil
}

// List returns index summaries oldest first. Backups are not loaded.
func (s *JSONStore) List() ([]domain.JournalEntry, error) {
	path := filepath.Join(s.dir, indexFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.JournalEntry{}, nil
		}
		return nil, &domain.OpError{
			Op:   "journal.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	out := []domain.JournalEntry{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var d entryDTO
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			return nil, &domain.OpError{
				Op:   "journal.list",
				Kind: domain.KindExecution,
				Path: path,
				Err:  err,
			}
		}
		out = append(out, d.toDomain())
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "journal.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return out, nil
}

func (s *JSONStore) Latest(path string) (domain.JournalEntry, error) {
	entries, err := s.List()
	if err != nil {
		return domain.JournalEntry{}, err
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if path == "" || entries[i].Path == path {
			return s.Get(entries[i].ID)
		}
	}
	return domain.JournalEntry{}, &domain.OpError{
		Op:   "journal.latest",
		Kind: domain.KindNotFound,
		Path: path,
		Err:  domain.ErrNotFound,
	}
}
