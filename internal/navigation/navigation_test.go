package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	var nav Navigator = &Recorder{}
	rec := nav.(*Recorder)

	assert.Equal(t, "", rec.Last())

	nav.GoToForm()
	nav.GoBack()
	nav.GoToEdit()
	nav.ReplaceWithList()

	assert.Equal(t, []string{"GoToForm", "GoBack", "GoToEdit", "ReplaceWithList"}, rec.Calls)
	assert.Equal(t, "ReplaceWithList", rec.Last())
}

func TestNoopSatisfiesNavigator(t *testing.T) {
	var nav Navigator = Noop{}
	assert.NotPanics(t, func() {
		nav.GoToForm()
		nav.GoToEdit()
		nav.GoBack()
		nav.ReplaceWithList()
	})
}
