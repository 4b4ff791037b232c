package domain

import (
	"errors"
	"strings"
	"time"
)

type PatchOp string

const (
	OpInsert  PatchOp = "insert"
	OpRemove  PatchOp = "remove"
	OpRestore PatchOp = "restore"
)

// InsertSpec places Text before the line Offset lines below the first line in
// Search that contains Anchor, provided that line contains Guard.
type InsertSpec struct {
	Anchor string
	Search Range
	Offset int
	Text   string
	Guard  string

	// Windows printed before and after the splice.
	Before Range
	After  Range
}

func (s InsertSpec) Validate() error {
	if s.Anchor == "" {
		return &OpError{Op: "insert.validate", Kind: KindInvalidConfig, Err: errors.New("anchor is empty")}
	}
	if s.Text == "" {
		return &OpError{Op: "insert.validate", Kind: KindInvalidConfig, Err: errors.New("text is empty")}
	}
	if body := strings.TrimSuffix(strings.TrimSuffix(s.Text, "\n"), "\r"); strings.ContainsAny(body, "\r\n") {
		return &OpError{Op: "insert.validate", Kind: KindInvalidConfig, Err: errors.New("text must be a single line")}
	}
	if err := s.Search.Validate(); err != nil {
		return &OpError{Op: "insert.validate", Kind: KindInvalidConfig, Err: err}
	}
	return nil
}

// InsertWindows returns the Before and After windows printed around a splice
// searched for in search.
func InsertWindows(search Range) (before, after Range) {
	from := max(1, search.From-5)
	return Range{From: from, To: search.To + 5}, Range{From: from, To: search.To + 10}
}

// RemoveContext is the window printed around a removed line.
func RemoveContext(line int) Range {
	return Range{From: max(1, line-5), To: line + 5}
}

// RemoveSpec drops the 1-based Line. When Expect is set the trimmed line must
// equal it.
type RemoveSpec struct {
	Line   int
	Expect string

	Context Range
}

func (s RemoveSpec) Validate() error {
	if s.Line < 1 {
		return &OpError{Op: "remove.validate", Kind: KindInvalidConfig, Line: s.Line, Err: errors.New("line must be >= 1")}
	}
	return nil
}

// PatchResult describes one applied (or previewed) splice.
type PatchResult struct {
	Op      PatchOp
	Path    string
	Line    int
	Text    string
	Before  []NumberedLine
	After   []NumberedLine
	Changed bool
	DryRun  bool

	JournalID string
}

// ApplyInsert finds the insertion point for spec and returns the new lines
// and the 0-based index of the inserted line.
func ApplyInsert(lines Lines, spec InsertSpec) (Lines, int, error) {
	if err := spec.Validate(); err != nil {
		return nil, 0, err
	}

	start, end := spec.Search.clip(len(lines))
	for i := start; i < end; i++ {
		if !strings.Contains(lines[i], spec.Anchor) {
			continue
		}
		at := i + spec.Offset
		if at < 0 || at >= len(lines) {
			continue
		}
		if !strings.Contains(lines[at], spec.Guard) {
			continue
		}

		out, err := lines.Insert(at, spec.Text)
		if err != nil {
			return nil, 0, &OpError{Op: "insert", Kind: KindOutOfRange, Line: at + 1, Err: err}
		}
		return out, at, nil
	}

	return nil, 0, &OpError{Op: "insert", Kind: KindNoMatch, Err: ErrNoMatch}
}

// ApplyRemove drops spec.Line and returns the new lines and the removed line.
func ApplyRemove(lines Lines, spec RemoveSpec) (Lines, string, error) {
	if err := spec.Validate(); err != nil {
		return nil, "", err
	}

	out, removed, err := lines.Remove(spec.Line - 1)
	if err != nil {
		return nil, "", &OpError{Op: "remove", Kind: KindOutOfRange, Line: spec.Line, Err: err}
	}

	if spec.Expect != "" && strings.TrimSpace(removed) != strings.TrimSpace(spec.Expect) {
		return nil, "", &OpError{Op: "remove", Kind: KindConflict, Line: spec.Line, Err: ErrConflict}
	}
	return out, removed, nil
}

// JournalEntry records an applied patch with enough data to revert it.
type JournalEntry struct {
	ID        string
	Op        PatchOp
	Path      string
	Line      int
	Text      string
	AppliedAt time.Time

	BeforeHash string
	AfterHash  string
	Backup     []byte

	// RevertOf is set on restore entries.
	RevertOf string
}
