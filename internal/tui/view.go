package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dreamlog/internal/cli"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateForm:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirm("Delete this dream?")
	case StateConfirmClear:
		content = m.viewConfirm("Delete every recorded dream? This cannot be undone.")
	default:
		content = m.viewList()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("Dream journal"),
		countStyle.Render(cli.CountLabel(m.vm.Count())),
	)
}

func (m Model) viewList() string {
	var search string
	if m.searching {
		search = searchStyle.Render(m.search.View())
	} else if q := m.vm.Query(); q != "" {
		search = searchStyle.Render("/ " + q + "  (esc to clear)")
	}

	if search == "" {
		return docStyle.Render(m.entryList.View())
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, search, m.entryList.View()))
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	if m.warning == "" {
		return docStyle.Render(m.form.View())
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		warningStyle.Render(m.warning),
		m.form.View(),
	))
}

func (m Model) viewConfirm(prompt string) string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
