package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/bracefix/internal/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

func checkFormat(format string) error {
	switch format {
	case "pretty", "", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

type stepJSON struct {
	Line  int    `json:"line"`
	Depth int    `json:"depth"`
	Text  string `json:"text"`
}

type reportJSON struct {
	Path         string     `json:"path"`
	From         int        `json:"from"`
	To           int        `json:"to"`
	Final        int        `json:"final"`
	Negative     bool       `json:"negative"`
	NegativeLine int        `json:"negative_line,omitempty"`
	Steps        []stepJSON `json:"steps"`
}

func toReportJSON(rep domain.BraceReport) reportJSON {
	out := reportJSON{
		Path:         rep.Path,
		From:         rep.Range.From,
		To:           rep.Range.To,
		Final:        rep.Final,
		Negative:     rep.Negative,
		NegativeLine: rep.NegativeLine,
		Steps:        make([]stepJSON, 0, len(rep.Steps)),
	}
	for _, st := range rep.Steps {
		out.Steps = append(out.Steps, stepJSON{Line: st.Line, Depth: st.Depth, Text: st.Text})
	}
	return out
}

func printReports(w io.Writer, reps []domain.BraceReport, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		payload := make([]reportJSON, 0, len(reps))
		for _, r := range reps {
			payload = append(payload, toReportJSON(r))
		}
		return encodeJSON(w, payload)
	}

	for i, r := range reps {
		if len(reps) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, headingStyle.Render("== "+r.Path))
		}
		printPrettyReport(w, r)
	}
	return nil
}

func printPrettyReport(w io.Writer, rep domain.BraceReport) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("=== Brace counting from line %d ===", rep.Range.From)))
	for _, st := range rep.Steps {
		fmt.Fprintf(w, "Line %d: %d braces - %s\n", st.Line, st.Depth, st.Text)
	}
	if rep.Negative {
		fmt.Fprintln(w, errorStyle.Render("ERROR: Negative brace count!"))
	}
	fmt.Fprintf(w, "Final brace count at line %d: %d\n", rep.Range.To, rep.Final)
}

type patchJSON struct {
	Op        string     `json:"op"`
	Path      string     `json:"path"`
	Line      int        `json:"line,omitempty"`
	Text      string     `json:"text,omitempty"`
	Changed   bool       `json:"changed"`
	DryRun    bool       `json:"dry_run"`
	JournalID string     `json:"journal_id,omitempty"`
	Before    []stepLine `json:"before"`
	After     []stepLine `json:"after"`
}

type stepLine struct {
	Line int    `json:"line"`
	Text string `json:"text"`
}

func toStepLines(in []domain.NumberedLine) []stepLine {
	out := make([]stepLine, 0, len(in))
	for _, l := range in {
		out = append(out, stepLine{Line: l.Number, Text: l.Text})
	}
	return out
}

func printPatch(w io.Writer, res domain.PatchResult, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == "json" {
		return encodeJSON(w, patchJSON{
			Op:        string(res.Op),
			Path:      res.Path,
			Line:      res.Line,
			Text:      res.Text,
			Changed:   res.Changed,
			DryRun:    res.DryRun,
			JournalID: res.JournalID,
			Before:    toStepLines(res.Before),
			After:     toStepLines(res.After),
		})
	}

	fmt.Fprintln(w, headingStyle.Render("=== Current structure ==="))
	printWindow(w, res.Before)
	if !res.Changed {
		return nil
	}

	title := "=== Fixed structure ==="
	if res.DryRun {
		title = "=== Planned structure (dry run) ==="
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render(title))
	printWindow(w, res.After)
	fmt.Fprintln(w)

	past, base := "Inserted", "insert"
	if res.Op == domain.OpRemove {
		past, base = "Removed", "remove"
	}
	msg := fmt.Sprintf("%s line %d: %q", past, res.Line, res.Text)
	if res.DryRun {
		msg = fmt.Sprintf("Would %s line %d: %q", base, res.Line, res.Text)
	}
	fmt.Fprintln(w, okStyle.Render(msg))
	if res.JournalID != "" {
		fmt.Fprintln(w, faintStyle.Render("journal: "+res.JournalID))
	}
	return nil
}

func printWindow(w io.Writer, lines []domain.NumberedLine) {
	for _, l := range lines {
		fmt.Fprintf(w, "%d: %s\n", l.Number, l.Text)
	}
}

func printHistory(w io.Writer, entries []domain.JournalEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no patches recorded)")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-7s %s:%d", e.ID, e.Op, e.Path, e.Line)
		if e.RevertOf != "" {
			line += "  (reverts " + e.RevertOf + ")"
		}
		fmt.Fprintln(w, line)
		fmt.Fprintln(w, faintStyle.Render("    "+e.AppliedAt.Local().Format(time.RFC3339)+"  "+fmt.Sprintf("%q", e.Text)))
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
