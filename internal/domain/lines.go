package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Lines is a file held in memory as an ordered list of lines.
// Every element keeps its own terminator ("\n", "\r\n", or none for an
// unterminated last line), so Bytes(SplitLines(b)) == b.
type Lines []string

// NumberedLine is a line paired with its 1-based number, terminator stripped.
type NumberedLine struct {
	Number int
	Text   string
}

// Range is a 1-based, inclusive span of line numbers.
type Range struct {
	From int
	To   int
}

func (r Range) Validate() error {
	if r.From < 1 {
		return fmt.Errorf("range start must be >= 1, got %d", r.From)
	}
	if r.To < r.From {
		return fmt.Errorf("range end %d is before start %d", r.To, r.From)
	}
	return nil
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.From, r.To)
}

// clip converts r to 0-based half-open bounds limited to n lines.
func (r Range) clip(n int) (start, end int) {
	start = r.From - 1
	end = r.To
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

func SplitLines(b []byte) Lines {
	if len(b) == 0 {
		return Lines{}
	}
	s := string(b)
	out := make(Lines, 0, strings.Count(s, "\n")+1)
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			out = append(out, s)
			break
		}
		out = append(out, s[:i+1])
		s = s[i+1:]
	}
	return out
}

func (l Lines) Bytes() []byte {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s)
	}
	return []byte(b.String())
}

func (l Lines) Len() int { return len(l) }

// LineEnding reports the terminator used by the first terminated line,
// "\n" when the file has none.
func (l Lines) LineEnding() string {
	for _, s := range l {
		if strings.HasSuffix(s, "\r\n") {
			return "\r\n"
		}
		if strings.HasSuffix(s, "\n") {
			return "\n"
		}
	}
	return "\n"
}

// Text returns the 0-based line i without its terminator.
func (l Lines) Text(i int) string {
	return strings.TrimRight(l[i], "\r\n")
}

// Insert returns a copy with s placed before the 0-based index i.
// A missing terminator on s is filled in from LineEnding.
func (l Lines) Insert(i int, s string) (Lines, error) {
	if i < 0 || i > len(l) {
		return nil, ErrOutOfRange
	}
	if !strings.HasSuffix(s, "\n") {
		s += l.LineEnding()
	}

	out := make(Lines, 0, len(l)+1)
	out = append(out, l[:i]...)
	if i == len(l) && i > 0 && !strings.HasSuffix(l[i-1], "\n") {
		out[i-1] += l.LineEnding()
	}
	out = append(out, s)
	out = append(out, l[i:]...)
	return out, nil
}

// Remove returns a copy without the 0-based line i, plus the removed line.
func (l Lines) Remove(i int) (Lines, string, error) {
	if i < 0 || i >= len(l) {
		return nil, "", ErrOutOfRange
	}
	out := make(Lines, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, l[i], nil
}

// Window returns the lines of r that exist in the file.
func (l Lines) Window(r Range) []NumberedLine {
	start, end := r.clip(len(l))
	out := make([]NumberedLine, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, NumberedLine{Number: i + 1, Text: l.Text(i)})
	}
	return out
}

// Fingerprint identifies the exact bytes of l.
func (l Lines) Fingerprint() string {
	return Fingerprint(l.Bytes())
}

func Fingerprint(b []byte) string {
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
