package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dreamlog/internal/logger"
	"github.com/julianstephens/dreamlog/internal/session"
	"github.com/julianstephens/dreamlog/internal/tui/components/entrylist"
)

const headerHeight = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.entryList.SetSize(msg.Width-h, msg.Height-v-headerHeight)
		return m, nil

	case navigateMsg:
		cmd = m.navigate(msg)
		return m, tea.Batch(cmd, m.nav.Flush())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateForm:
		cmd = m.updateForm(msg)
	case StateConfirmDelete, StateConfirmClear:
		cmd = m.updateConfirm(msg)
	default:
		cmd = m.updateList(msg)
	}

	return m, tea.Batch(cmd, m.nav.Flush())
}

func (m *Model) navigate(msg navigateMsg) tea.Cmd {
	var cmds []tea.Cmd
	for _, to := range msg.to {
		switch to {
		case screenForm:
			m.session = session.New(m.repo, m.nav)
			cmds = append(cmds, m.openForm())
		case screenEdit:
			m.session = session.NewEdit(m.ctx, m.repo, m.nav)
			cmds = append(cmds, m.openForm())
		default:
			m.closeForm()
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) updateList(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case entrylist.AddEntryMsg:
		m.nav.GoToForm()
		return nil

	case entrylist.EditEntryMsg:
		m.vm.InitiateEdit(m.ctx, msg.Entry)
		return nil

	case entrylist.DeleteEntryMsg:
		m.toDelete = msg.Entry
		m.state = StateConfirmDelete
		return nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return nil
		case key.Matches(msg, m.keys.Search):
			m.searching = true
			return m.search.Focus()
		case key.Matches(msg, m.keys.Back):
			if m.vm.Query() != "" {
				m.search.SetValue("")
				m.applyQuery()
			}
			return nil
		case key.Matches(msg, m.keys.Clear):
			if m.vm.Count() > 0 {
				m.state = StateConfirmClear
			}
			return nil
		}
	}

	m.entryList, cmd = m.entryList.Update(msg)
	return cmd
}

// updateSearch feeds keystrokes to the search box. The list is filtered
// on every keystroke; esc clears the query and enter keeps it.
func (m *Model) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.search.SetValue("")
		m.applyQuery()
		m.searching = false
		m.search.Blur()
		return nil
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyQuery()
	return cmd
}

func (m *Model) applyQuery() {
	m.vm.SetQuery(m.search.Value())
	m.entryList.SetEntries(m.vm.Entries())
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	// waiting for the navigation request to land
	if m.form == nil || m.session.State() == session.Submitted {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		m.abortForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		applyForm(m.session, m.formModel)
		if _, err := m.session.Submit(m.ctx); err != nil {
			return m.rejectForm(err)
		}
		return nil

	case huh.StateAborted:
		m.abortForm()
		return nil
	}

	return cmd
}

// rejectForm keeps the form open with the entered values and a warning
func (m *Model) rejectForm(err error) tea.Cmd {
	switch {
	case errors.Is(err, session.ErrEmptyDreamText):
		m.warning = "⚠ Please describe your dream before saving."
	default:
		m.warning = fmt.Sprintf("⚠ Could not save: %v", err)
	}

	_, editing := m.session.EditingID()
	m.form = newEntryForm(m.formModel, editing)
	return m.form.Init()
}

func (m *Model) abortForm() {
	if _, editing := m.session.EditingID(); editing {
		m.repo.ClearPending(m.ctx)
	}
	logger.Debug("Form abandoned", "session", m.session.ID())
	m.form = nil
	m.nav.GoBack()
}

func (m *Model) updateConfirm(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if m.state == StateConfirmDelete {
			m.vm.DeleteEntry(m.ctx, m.toDelete.ID)
		} else {
			m.vm.ClearAll(m.ctx)
		}
		m.entryList.SetEntries(m.vm.Entries())
		m.state = StateList
	case key.Matches(keyMsg, m.keys.Cancel):
		m.state = StateList
	}
	return nil
}
