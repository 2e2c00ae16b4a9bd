package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dreamlog/internal/cli"
	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/session"
)

// FormModel holds the widget values. Tag lists are edited as comma
// separated text and synced into the session on submit.
type FormModel struct {
	DreamText    string
	DreamType    constants.DreamType
	Tone         int
	SleepQuality int
	SelectedDate string
	Characters   string
	Locations    string
	Emotions     string
	Hashtags     string
}

func newFormModel(d *session.Draft) *FormModel {
	return &FormModel{
		DreamText:    d.DreamText,
		DreamType:    d.DreamType,
		Tone:         d.Tone,
		SleepQuality: d.SleepQuality,
		SelectedDate: d.SelectedDate,
		Characters:   cli.JoinNames(d.Characters),
		Locations:    cli.JoinNames(d.Locations),
		Emotions:     cli.JoinNames(d.Emotions),
		Hashtags:     joinLabels(d.Hashtags),
	}
}

func ratingOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, constants.MaxRating-constants.MinRating+1)
	for v := constants.MinRating; v <= constants.MaxRating; v++ {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d", v), v))
	}
	return opts
}

func dreamTypeOptions() []huh.Option[constants.DreamType] {
	opts := make([]huh.Option[constants.DreamType], len(constants.DreamTypes))
	for i, t := range constants.DreamTypes {
		opts[i] = huh.NewOption(t.Label(), t)
	}
	return opts
}

func validateDate(s string) error {
	if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func newEntryForm(fm *FormModel, editing bool) *huh.Form {
	title := "New dream"
	if editing {
		title = "Edit dream"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description("What did you dream about?").
				Value(&fm.DreamText),
			huh.NewSelect[constants.DreamType]().
				Title("Type").
				Options(dreamTypeOptions()...).
				Value(&fm.DreamType),
			huh.NewInput().
				Title("Date").
				Value(&fm.SelectedDate).
				Validate(validateDate),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Tone").
				Description("0 is distressing, 10 is joyful").
				Options(ratingOptions()...).
				Value(&fm.Tone),
			huh.NewSelect[int]().
				Title("Sleep quality").
				Options(ratingOptions()...).
				Value(&fm.SleepQuality),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Characters").
				Placeholder("comma separated").
				Value(&fm.Characters),
			huh.NewInput().
				Title("Locations").
				Placeholder("comma separated").
				Value(&fm.Locations),
			huh.NewInput().
				Title("Emotions").
				Placeholder("comma separated").
				Value(&fm.Emotions),
			huh.NewInput().
				Title("Hashtags").
				Placeholder("comma separated").
				Value(&fm.Hashtags),
		),
	)
}

// applyForm copies the widget values into the session draft. Tags that
// are still listed keep their ids.
func applyForm(s *session.Session, fm *FormModel) {
	d := s.Draft()
	d.DreamText = fm.DreamText
	d.DreamType = fm.DreamType
	d.Tone = fm.Tone
	d.SleepQuality = fm.SleepQuality
	d.SelectedDate = strings.TrimSpace(fm.SelectedDate)

	syncNamed(d.Characters, fm.Characters, s.AddCharacter, s.RemoveCharacter)
	syncNamed(d.Locations, fm.Locations, s.AddLocation, s.RemoveLocation)
	syncNamed(d.Emotions, fm.Emotions, s.AddEmotion, s.RemoveEmotion)

	wanted := splitTags(fm.Hashtags)
	for _, h := range append([]models.Hashtag(nil), d.Hashtags...) {
		if !wanted[strings.ToLower(h.Label)] {
			s.RemoveHashtag(h.ID)
		}
		delete(wanted, strings.ToLower(h.Label))
	}
	for _, label := range cli.SplitList(fm.Hashtags) {
		label = strings.TrimPrefix(label, "#")
		if wanted[strings.ToLower(label)] {
			s.AddHashtag(label)
			delete(wanted, strings.ToLower(label))
		}
	}
}

func joinLabels(tags []models.Hashtag) string {
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = t.Label
	}
	return strings.Join(labels, ", ")
}

func syncNamed(
	current []models.NamedTag,
	text string,
	add func(string) (models.NamedTag, bool),
	remove func(int64) bool,
) {
	wanted := splitTags(text)
	for _, t := range append([]models.NamedTag(nil), current...) {
		if !wanted[strings.ToLower(t.Name)] {
			remove(t.ID)
		}
		delete(wanted, strings.ToLower(t.Name))
	}
	for _, name := range cli.SplitList(text) {
		if wanted[strings.ToLower(name)] {
			add(name)
			delete(wanted, strings.ToLower(name))
		}
	}
}

// splitTags returns the lowercased set of names in a comma separated list
func splitTags(text string) map[string]bool {
	set := make(map[string]bool)
	for _, name := range cli.SplitList(text) {
		set[strings.ToLower(strings.TrimPrefix(name, "#"))] = true
	}
	return set
}
