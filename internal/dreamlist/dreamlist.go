// Package dreamlist is the view-model behind the entry list: it holds the
// loaded collection, derives the filtered view and forwards delete and
// edit actions to the repository.
package dreamlist

import (
	"context"
	"strings"

	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/navigation"
)

// Repository is the subset of the entry repository the list needs
type Repository interface {
	LoadAll(ctx context.Context) []models.Entry
	Delete(ctx context.Context, id int64) []models.Entry
	ClearAll(ctx context.Context)
	Stage(ctx context.Context, e models.Entry)
}

type ViewModel struct {
	repo  Repository
	nav   navigation.Navigator
	all   []models.Entry
	query string
	view  []models.Entry
}

func New(repo Repository, nav navigation.Navigator) *ViewModel {
	if nav == nil {
		nav = navigation.Noop{}
	}
	return &ViewModel{
		repo: repo,
		nav:  nav,
		all:  []models.Entry{},
		view: []models.Entry{},
	}
}

// Refresh reloads the collection. Call it whenever the list becomes visible.
func (vm *ViewModel) Refresh(ctx context.Context) {
	vm.adopt(vm.repo.LoadAll(ctx))
}

// Entries returns the collection newest first, filtered by the current query.
// The result is a copy; changing it does not affect the view-model.
func (vm *ViewModel) Entries() []models.Entry {
	return cloneEntries(vm.view)
}

// Count is the number of loaded entries, ignoring the query
func (vm *ViewModel) Count() int {
	return len(vm.all)
}

func (vm *ViewModel) Query() string {
	return vm.query
}

func (vm *ViewModel) SetQuery(q string) {
	vm.query = q
	vm.recompute()
}

// Search filters the loaded collection, in loaded order
func (vm *ViewModel) Search(q string) []models.Entry {
	return cloneEntries(Filter(vm.all, q))
}

// DeleteEntry removes the entry and adopts the resulting collection
func (vm *ViewModel) DeleteEntry(ctx context.Context, id int64) {
	vm.adopt(vm.repo.Delete(ctx, id))
}

// InitiateEdit stages a copy of e and asks for the edit form
func (vm *ViewModel) InitiateEdit(ctx context.Context, e models.Entry) {
	vm.repo.Stage(ctx, e.Clone())
	vm.nav.GoToEdit()
}

// ClearAll deletes every entry
func (vm *ViewModel) ClearAll(ctx context.Context) {
	vm.repo.ClearAll(ctx)
	vm.adopt([]models.Entry{})
}

func (vm *ViewModel) adopt(entries []models.Entry) {
	if entries == nil {
		entries = []models.Entry{}
	}
	vm.all = entries
	vm.recompute()
}

func (vm *ViewModel) recompute() {
	reversed := make([]models.Entry, len(vm.all))
	for i, e := range vm.all {
		reversed[len(vm.all)-1-i] = e
	}
	vm.view = Filter(reversed, vm.query)
}

// Filter keeps entries whose dream text, dream type or any tag contains q,
// ignoring case. A blank query keeps every entry. The result never shares
// its backing array with entries.
func Filter(entries []models.Entry, q string) []models.Entry {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		out := make([]models.Entry, len(entries))
		copy(out, entries)
		return out
	}

	out := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

func cloneEntries(entries []models.Entry) []models.Entry {
	out := make([]models.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

func matches(e models.Entry, needle string) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}

	if contains(e.DreamText) || contains(string(e.DreamType)) {
		return true
	}
	for _, h := range e.Hashtags {
		if contains(h.Label) {
			return true
		}
	}
	for _, list := range [][]models.NamedTag{e.Characters, e.Locations, e.Emotions} {
		for _, t := range list {
			if contains(t.Name) {
				return true
			}
		}
	}
	return false
}
