package entries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/dreamlist"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/navigation"
	"github.com/julianstephens/dreamlog/internal/session"
)

// ErrNotStaged is returned when the entry could not be placed in the
// staging slot, so no edit session could be opened on it
var ErrNotStaged = errors.New("entry could not be staged for editing")

type EditCmd struct {
	ID    string  `arg:"" help:"ID of the dream to edit."`
	Text  *string `help:"Replace the dream text."`
	Type  *string `short:"t" help:"New dream type (rêve|lucide|cauchemar)."`
	Tone  *int    `help:"New tone (0-10)."`
	Sleep *int    `help:"New sleep quality (0-10)."`
	Date  *string `short:"d" help:"New date (YYYY-MM-DD)."`

	AddCharacter    []string `help:"Add a character (repeatable)."`
	RemoveCharacter []string `help:"Remove a character by name (repeatable)."`
	AddLocation     []string `help:"Add a location (repeatable)."`
	RemoveLocation  []string `help:"Remove a location by name (repeatable)."`
	AddEmotion      []string `help:"Add an emotion (repeatable)."`
	RemoveEmotion   []string `help:"Remove an emotion by name (repeatable)."`
	AddHashtag      []string `help:"Add a hashtag (repeatable)."`
	RemoveHashtag   []string `help:"Remove a hashtag by label (repeatable)."`
}

func (c *EditCmd) Validate() error {
	if c.Type != nil {
		if _, ok := constants.ParseDreamType(*c.Type); !ok {
			return fmt.Errorf("unknown dream type %q (expected rêve, lucide or cauchemar)", *c.Type)
		}
	}
	if c.Date != nil {
		if _, err := time.Parse(constants.DateFormat, *c.Date); err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", *c.Date)
		}
	}
	return nil
}

// Run goes through the same path as the TUI: stage the entry, open an
// edit session on it, apply the changes and submit.
func (c *EditCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseID(c.ID)
	if err != nil {
		return err
	}
	e, err := ctx.FindEntry(id)
	if err != nil {
		return err
	}

	vm := dreamlist.New(ctx.Repo, navigation.Noop{})
	vm.InitiateEdit(ctx.Ctx(), e)

	s := session.NewEdit(ctx.Ctx(), ctx.Repo, navigation.Noop{})
	if got, ok := s.EditingID(); !ok || got != id {
		ctx.Repo.ClearPending(ctx.Ctx())
		return fmt.Errorf("dream %d not updated (session %s): %w", id, s.ID(), ErrNotStaged)
	}
	c.apply(s)

	if _, err := s.Submit(ctx.Ctx()); err != nil {
		ctx.Repo.ClearPending(ctx.Ctx())
		return fmt.Errorf("dream %d not updated (session %s): %w", id, s.ID(), err)
	}

	ctx.Printf("Updated dream (ID: %d)\n", id)
	return nil
}

func (c *EditCmd) apply(s *session.Session) {
	d := s.Draft()
	if c.Text != nil {
		d.DreamText = *c.Text
	}
	if c.Type != nil {
		d.DreamType, _ = constants.ParseDreamType(*c.Type)
	}
	if c.Tone != nil {
		d.Tone = *c.Tone
	}
	if c.Sleep != nil {
		d.SleepQuality = *c.Sleep
	}
	if c.Date != nil {
		d.SelectedDate = *c.Date
	}

	for _, name := range c.RemoveCharacter {
		removeByName(d.Characters, name, s.RemoveCharacter)
	}
	for _, name := range c.RemoveLocation {
		removeByName(d.Locations, name, s.RemoveLocation)
	}
	for _, name := range c.RemoveEmotion {
		removeByName(d.Emotions, name, s.RemoveEmotion)
	}
	for _, label := range c.RemoveHashtag {
		label = strings.TrimPrefix(strings.TrimSpace(label), "#")
		for _, t := range d.Hashtags {
			if strings.EqualFold(t.Label, label) {
				s.RemoveHashtag(t.ID)
				break
			}
		}
	}

	addTags(s, c.AddCharacter, c.AddLocation, c.AddEmotion, c.AddHashtag)
}

func removeByName(tags []models.NamedTag, name string, remove func(int64) bool) {
	name = strings.TrimSpace(name)
	for _, t := range tags {
		if strings.EqualFold(t.Name, name) {
			remove(t.ID)
			return
		}
	}
}
