package entries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/navigation"
	"github.com/julianstephens/dreamlog/internal/session"
)

type AddCmd struct {
	Text      string   `arg:"" help:"What you dreamt."`
	Type      string   `short:"t" help:"Dream type (rêve|lucide|cauchemar)." default:"rêve"`
	Tone      int      `help:"Tone of the dream (0-10)." default:"5"`
	Sleep     int      `help:"Sleep quality (0-10)." default:"5"`
	Date      string   `short:"d" help:"Date of the dream (YYYY-MM-DD). Defaults to today."`
	Character []string `short:"c" help:"Character who appeared (repeatable)."`
	Location  []string `short:"l" help:"Place the dream happened (repeatable)."`
	Emotion   []string `short:"e" help:"Emotion felt (repeatable)."`
	Hashtag   []string `short:"H" help:"Free-form tag (repeatable)."`
}

func (c *AddCmd) Validate() error {
	if _, ok := constants.ParseDreamType(c.Type); !ok {
		return fmt.Errorf("unknown dream type %q (expected rêve, lucide or cauchemar)", c.Type)
	}
	if c.Date != "" {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", c.Date)
		}
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	s := session.New(ctx.Repo, navigation.Noop{})

	d := s.Draft()
	d.DreamText = c.Text
	d.DreamType, _ = constants.ParseDreamType(c.Type)
	d.Tone = c.Tone
	d.SleepQuality = c.Sleep
	if c.Date != "" {
		d.SelectedDate = c.Date
	}
	addTags(s, c.Character, c.Location, c.Emotion, c.Hashtag)

	e, err := s.Submit(ctx.Ctx())
	if err != nil {
		if errors.Is(err, session.ErrEmptyDreamText) {
			return fmt.Errorf("nothing to record: %w", err)
		}
		return fmt.Errorf("dream not recorded (session %s): %w", s.ID(), err)
	}

	ctx.Printf("Recorded dream (ID: %d)\n", e.ID)
	return nil
}

func addTags(s *session.Session, characters, locations, emotions, hashtags []string) {
	for _, v := range characters {
		s.AddCharacter(v)
	}
	for _, v := range locations {
		s.AddLocation(v)
	}
	for _, v := range emotions {
		s.AddEmotion(v)
	}
	for _, v := range hashtags {
		s.AddHashtag(strings.TrimPrefix(strings.TrimSpace(v), "#"))
	}
}
