package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dreamlog/internal/constants"
)

var (
	ErrEmptyDreamText   = errors.New("dream text cannot be empty")
	ErrUnknownDreamType = errors.New("unknown dream type")
	ErrRatingOutOfRange = errors.New("rating out of range")
	ErrInvalidDate      = errors.New("invalid selected date")
	ErrDuplicateTagID   = errors.New("duplicate tag id")
)

// NamedTag is a character, location or emotion attached to an entry
type NamedTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Hashtag is a free-form label attached to an entry
type Hashtag struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

// Entry is one recorded dream.
//
// ID is the sole identity key for update and delete. Tag ids are only
// unique within their own list.
type Entry struct {
	ID           int64               `json:"id"`
	DreamText    string              `json:"dreamText"`
	DreamType    constants.DreamType `json:"dreamType"`
	Tone         int                 `json:"tone"`
	SleepQuality int                 `json:"sleepQuality"`
	Characters   []NamedTag          `json:"characters"`
	Locations    []NamedTag          `json:"locations"`
	Emotions     []NamedTag          `json:"emotions"`
	Hashtags     []Hashtag           `json:"hashtags"`
	SelectedDate string              `json:"selectedDate"` // YYYY-MM-DD
	TodayDate    string              `json:"todayDate"`    // RFC3339 submission time
}

// Validate checks the invariants every persisted entry must hold
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.DreamText) == "" {
		return ErrEmptyDreamText
	}

	if !e.DreamType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDreamType, e.DreamType)
	}

	if e.Tone < constants.MinRating || e.Tone > constants.MaxRating {
		return fmt.Errorf("%w: tone %d (expected %d-%d)", ErrRatingOutOfRange, e.Tone, constants.MinRating, constants.MaxRating)
	}
	if e.SleepQuality < constants.MinRating || e.SleepQuality > constants.MaxRating {
		return fmt.Errorf("%w: sleep quality %d (expected %d-%d)", ErrRatingOutOfRange, e.SleepQuality, constants.MinRating, constants.MaxRating)
	}

	if _, err := time.Parse(constants.DateFormat, e.SelectedDate); err != nil {
		return fmt.Errorf("%w (expected YYYY-MM-DD): %q", ErrInvalidDate, e.SelectedDate)
	}

	for name, ids := range map[string][]int64{
		"characters": namedTagIDs(e.Characters),
		"locations":  namedTagIDs(e.Locations),
		"emotions":   namedTagIDs(e.Emotions),
		"hashtags":   hashtagIDs(e.Hashtags),
	} {
		seen := make(map[int64]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				return fmt.Errorf("%w %d in %s", ErrDuplicateTagID, id, name)
			}
			seen[id] = true
		}
	}

	return nil
}

// Normalize replaces nil tag lists with empty ones so that an entry
// compares equal to its decoded form
func (e *Entry) Normalize() {
	if e.Characters == nil {
		e.Characters = []NamedTag{}
	}
	if e.Locations == nil {
		e.Locations = []NamedTag{}
	}
	if e.Emotions == nil {
		e.Emotions = []NamedTag{}
	}
	if e.Hashtags == nil {
		e.Hashtags = []Hashtag{}
	}
}

// Clone returns a deep copy of the entry
func (e Entry) Clone() Entry {
	c := e
	c.Characters = append([]NamedTag{}, e.Characters...)
	c.Locations = append([]NamedTag{}, e.Locations...)
	c.Emotions = append([]NamedTag{}, e.Emotions...)
	c.Hashtags = append([]Hashtag{}, e.Hashtags...)
	return c
}

func namedTagIDs(tags []NamedTag) []int64 {
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}

func hashtagIDs(tags []Hashtag) []int64 {
	ids := make([]int64, len(tags))
	for i, t := range tags {
		ids[i] = t.ID
	}
	return ids
}
