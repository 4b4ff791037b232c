package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/bracefix/internal/domain"
)

type screen int

const (
	screenLoading screen = iota
	screenTrace
	screenError
)

const maxTextWidth = 96

type stepItem struct {
	step     domain.TraceStep
	negative bool
}

func (s stepItem) Title() string {
	mark := ""
	if s.negative {
		mark = "  ✗ negative"
	}
	return fmt.Sprintf("%5d  depth %d%s", s.step.Line, s.step.Depth, mark)
}
func (s stepItem) Description() string { return clampString(s.step.Text, maxTextWidth) }
func (s stepItem) FilterValue() string { return s.step.Text }

type model struct {
	theme Theme
	deps  Deps

	scr    screen
	steps  list.Model
	report domain.BraceReport
	status string
	err    error
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Brace trace"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return model{
		theme: DefaultTheme(),
		deps:  deps,
		scr:   screenLoading,
		steps: l,
	}
}

func (m model) Init() tea.Cmd { return loadReportCmd(m.deps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.steps.SetSize(msg.Width-6, msg.Height-10)
		return m, nil

	case reportLoadedMsg:
		if msg.err != nil {
			m.scr = screenError
			m.status = userMessage(msg.err)
			m.err = msg.err
			if m.deps.Logger != nil {
				m.deps.Logger.Warn("tui.check.failed", "path", m.deps.Path, "err", msg.err)
			}
			return m, nil
		}
		m.scr = screenTrace
		m.report = msg.report
		m.status = ""
		m.err = nil
		return m, m.steps.SetItems(toItems(msg.report))

	case tea.KeyMsg:
		if m.steps.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.status = "Reloading…"
			return m, loadReportCmd(m.deps)
		case "n":
			if m.report.Negative {
				m.steps.Select(len(m.report.Steps) - 1)
			}
			return m, nil
		}
	}

	if m.scr == screenTrace {
		var cmd tea.Cmd
		m.steps, cmd = m.steps.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("bracefix") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("%s  lines %s", m.deps.Path, m.deps.Range)) + "\n"

	switch m.scr {
	case screenLoading:
		return wrap.Render(header + "\nScanning…")

	case screenError:
		body := m.theme.Negative.Render(m.status)
		if detail := m.debugDetail(); detail != "" {
			body += "\n" + m.theme.Help.Render(detail)
		}
		card := m.theme.Card.Render(body + "\n\n" + m.theme.Help.Render("r retry • q quit"))
		return wrap.Render(header + "\n" + card)

	case screenTrace:
		help := m.theme.Help.Render("↑/↓ move • / filter • n jump to negative • r reload • q quit")
		footer := m.summary(m.report)
		if m.status != "" {
			footer += "  " + m.theme.Help.Render(m.status)
		}
		return wrap.Render(header + "\n" + m.theme.Card.Render(m.steps.View()) + "\n" + footer + "\n" + help)

	default:
		return wrap.Render(header + "\nunknown state")
	}
}

func toItems(rep domain.BraceReport) []list.Item {
	items := make([]list.Item, 0, len(rep.Steps))
	for i, st := range rep.Steps {
		items = append(items, stepItem{
			step:     st,
			negative: rep.Negative && i == len(rep.Steps)-1,
		})
	}
	return items
}
