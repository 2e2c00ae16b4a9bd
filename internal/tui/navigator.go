package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dreamlog/internal/navigation"
)

type screen int

const (
	screenForm screen = iota
	screenEdit
	screenBack
	screenList
)

// navigateMsg carries the navigation requests queued during one update
type navigateMsg struct {
	to []screen
}

// Navigator queues navigation requests made by the session and list view
// model while a message is being handled. The queue is turned into
// messages once Update returns, so screen changes never re-enter Update.
type Navigator struct {
	queue []screen
}

var _ navigation.Navigator = (*Navigator)(nil)

func (n *Navigator) GoToForm()        { n.queue = append(n.queue, screenForm) }
func (n *Navigator) GoToEdit()        { n.queue = append(n.queue, screenEdit) }
func (n *Navigator) GoBack()          { n.queue = append(n.queue, screenBack) }
func (n *Navigator) ReplaceWithList() { n.queue = append(n.queue, screenList) }

// Flush drains the queue into a command delivering the requests in order
func (n *Navigator) Flush() tea.Cmd {
	if len(n.queue) == 0 {
		return nil
	}

	msg := navigateMsg{to: n.queue}
	n.queue = nil
	return func() tea.Msg { return msg }
}
