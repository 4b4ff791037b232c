package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/bracefix/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	var b strings.Builder
	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func (m model) summary(rep domain.BraceReport) string {
	switch {
	case rep.Negative:
		return m.theme.Negative.Render(fmt.Sprintf("Negative brace count at line %d", rep.NegativeLine))
	case rep.Final == 0:
		return m.theme.Balanced.Render(fmt.Sprintf("Balanced at line %d", rep.Range.To))
	default:
		return m.theme.Open.Render(fmt.Sprintf("Final brace count at line %d: %d", rep.Range.To, rep.Final))
	}
}
