package entrylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dreamlog/internal/models"
)

type AddEntryMsg struct{}

type EditEntryMsg struct {
	Entry models.Entry
}

type DeleteEntryMsg struct {
	Entry models.Entry
}

type Item struct {
	Entry models.Entry
}

func (i Item) Title() string {
	text := strings.Join(strings.Fields(i.Entry.DreamText), " ")
	if r := []rune(text); len(r) > 50 {
		text = string(r[:47]) + "..."
	}
	return text
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %s | tone %d | sleep %d",
		i.Entry.SelectedDate, i.Entry.DreamType.Label(), i.Entry.Tone, i.Entry.SleepQuality)
	if n := len(i.Entry.Hashtags); n > 0 {
		labels := make([]string, n)
		for j, h := range i.Entry.Hashtags {
			labels[j] = "#" + h.Label
		}
		desc += " | " + strings.Join(labels, " ")
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.DreamText }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New builds the list. Entries are shown in the order given; searching is
// done by the caller, so the list's own filter is disabled.
func New(entries []models.Entry, width, height int) Model {
	l := list.New(toItems(entries), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(entries []models.Entry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	return items
}

func (m *Model) SetEntries(entries []models.Entry) {
	m.list.SetItems(toItems(entries))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Selected returns the highlighted entry
func (m Model) Selected() (models.Entry, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Entry, true
	}
	return models.Entry{}, false
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditEntryMsg{Entry: e} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{Entry: e} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No dreams here.\n  Press 'a' to record one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
