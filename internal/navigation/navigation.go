// Package navigation describes the screen transitions the core may request.
package navigation

// Navigator receives fire-and-forget screen transition requests
type Navigator interface {
	// GoToForm opens an empty form for a new entry
	GoToForm()
	// GoToEdit opens the form on the staged entry
	GoToEdit()
	// GoBack returns to the previous screen
	GoBack()
	// ReplaceWithList discards the form and shows the list
	ReplaceWithList()
}

// Noop ignores every transition. Used by the CLI, which has no screens.
type Noop struct{}

func (Noop) GoToForm()        {}
func (Noop) GoToEdit()        {}
func (Noop) GoBack()          {}
func (Noop) ReplaceWithList() {}

// Recorder remembers the transitions it was asked to make, in order
type Recorder struct {
	Calls []string
}

func (r *Recorder) GoToForm()        { r.Calls = append(r.Calls, "GoToForm") }
func (r *Recorder) GoToEdit()        { r.Calls = append(r.Calls, "GoToEdit") }
func (r *Recorder) GoBack()          { r.Calls = append(r.Calls, "GoBack") }
func (r *Recorder) ReplaceWithList() { r.Calls = append(r.Calls, "ReplaceWithList") }

// Last returns the most recent transition, or "" if none
func (r *Recorder) Last() string {
	if len(r.Calls) == 0 {
		return ""
	}
	return r.Calls[len(r.Calls)-1]
}
