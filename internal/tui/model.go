package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dreamlog/internal/dreamlist"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/repository"
	"github.com/julianstephens/dreamlog/internal/session"
	"github.com/julianstephens/dreamlog/internal/tui/components/entrylist"
)

type SessionState int

const (
	StateList SessionState = iota
	StateForm
	StateConfirmDelete
	StateConfirmClear
)

type Model struct {
	ctx       context.Context
	repo      *repository.Repository
	nav       *Navigator
	vm        *dreamlist.ViewModel
	state     SessionState
	keys      KeyMap
	help      help.Model
	entryList entrylist.Model
	search    textinput.Model
	searching bool
	session   *session.Session
	form      *huh.Form
	formModel *FormModel
	warning   string
	toDelete  models.Entry
	quitting  bool
	width     int
	height    int
}

func NewModel(ctx context.Context, repo *repository.Repository) Model {
	nav := &Navigator{}
	vm := dreamlist.New(repo, nav)
	vm.Refresh(ctx)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "text, type or tag"

	return Model{
		ctx:       ctx,
		repo:      repo,
		nav:       nav,
		vm:        vm,
		state:     StateList,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		entryList: entrylist.New(vm.Entries(), 0, 0),
		search:    search,
	}
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateForm:
		return []key.Binding{m.keys.Back}
	case StateConfirmDelete, StateConfirmClear:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	if m.searching {
		return []key.Binding{m.keys.Back}
	}
	return []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Search, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state != StateList || m.searching {
		return [][]key.Binding{m.ShortHelp()}
	}
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refreshList reloads the collection and redraws the visible entries
func (m *Model) refreshList() {
	m.vm.Refresh(m.ctx)
	m.entryList.SetEntries(m.vm.Entries())
}

func (m *Model) openForm() tea.Cmd {
	_, editing := m.session.EditingID()
	m.formModel = newFormModel(m.session.Draft())
	m.form = newEntryForm(m.formModel, editing)
	m.warning = ""
	m.state = StateForm
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.session = nil
	m.form = nil
	m.formModel = nil
	m.warning = ""
	m.state = StateList
	m.refreshList()
}
