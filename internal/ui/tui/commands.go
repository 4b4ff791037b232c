package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const checkTimeout = 10 * time.Second

func loadReportCmd(d Deps) tea.Cmd {
	return func() tea.Msg {
		if d.Check == nil {
			return reportLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		rep, err := d.Check(ctx)
		return reportLoadedMsg{report: rep, err: err}
	}
}
