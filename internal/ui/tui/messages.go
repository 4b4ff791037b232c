package tui

import "github.com/aalvaropc/bracefix/internal/domain"

type reportLoadedMsg struct {
	report domain.BraceReport
	err    error
}
