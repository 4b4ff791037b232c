package domain

import "strings"

// CountBraces returns the number of '{' minus the number of '}' in line.
// It is a plain character count: strings, comments and other bracket kinds
// are not special.
func CountBraces(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

type TraceStep struct {
	Line  int
	Depth int
	Text  string
}

// BraceReport is the result of a running brace count over a line range.
type BraceReport struct {
	Path  string
	Range Range
	Steps []TraceStep

	Final        int
	Negative     bool
	NegativeLine int
}

// Balanced reports whether the scan ended at depth zero without going negative.
func (r BraceReport) Balanced() bool {
	return !r.Negative && r.Final == 0
}

// TraceBraces keeps a running depth over the lines of r that exist in the
// file and stops at the first line where the depth drops below zero.
func TraceBraces(lines Lines, r Range) BraceReport {
	start, end := r.clip(len(lines))

	rep := BraceReport{
		Range: r,
		Steps: make([]TraceStep, 0, end-start),
	}

	depth := 0
	for i := start; i < end; i++ {
		text := strings.TrimSpace(lines[i])
		depth += CountBraces(lines[i])
		rep.Steps = append(rep.Steps, TraceStep{Line: i + 1, Depth: depth, Text: text})

		if depth < 0 {
			rep.Negative = true
			rep.NegativeLine = i + 1
			break
		}
	}

	rep.Final = depth
	return rep
}
