package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// targetListModel is the bubbletea model for picking one package out of
// the candidates an ambiguous substring matched.
type targetListModel struct {
	Candidates []string
	Cursor     int
	Selected   string
	Height     int
	Offset     int
}

// newTargetListModel creates a candidate list model.
func newTargetListModel(candidates []string) targetListModel {
	return targetListModel{
		Candidates: candidates,
		Height:     15,
	}
}

func (m targetListModel) Init() tea.Cmd {
	return nil
}

func (m targetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Candidates)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.Candidates[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m targetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Target Package"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Candidates) {
		end = len(m.Candidates)
	}

	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := cursor + m.Candidates[i]
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Candidates))))

	return b.String()
}

// pickTarget runs the interactive candidate picker and returns the chosen
// package ID. Quitting without a selection is an error so the run fails
// the same way a non-interactive ambiguous target does.
func pickTarget(ctx context.Context, candidates []string) (string, error) {
	prog := tea.NewProgram(newTargetListModel(candidates), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("target picker: %w", err)
	}

	m, ok := final.(targetListModel)
	if !ok || m.Selected == "" {
		return "", fmt.Errorf("no target selected")
	}
	return m.Selected, nil
}
