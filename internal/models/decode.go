package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/julianstephens/dreamlog/internal/constants"
)

// UnmarshalJSON decodes an entry written by any earlier revision of the app.
// Missing ratings and dream type take their defaults, missing tag lists
// become empty, and tag lists stored as plain strings are converted to
// tag records.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           int64               `json:"id"`
		DreamText    string              `json:"dreamText"`
		DreamType    constants.DreamType `json:"dreamType"`
		Tone         json.RawMessage     `json:"tone"`
		SleepQuality json.RawMessage     `json:"sleepQuality"`
		Characters   json.RawMessage     `json:"characters"`
		Locations    json.RawMessage     `json:"locations"`
		Emotions     json.RawMessage     `json:"emotions"`
		Hashtags     json.RawMessage     `json:"hashtags"`
		SelectedDate string              `json:"selectedDate"`
		TodayDate    string              `json:"todayDate"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tone, err := decodeRating(raw.Tone, constants.DefaultTone)
	if err != nil {
		return fmt.Errorf("tone: %w", err)
	}
	sleep, err := decodeRating(raw.SleepQuality, constants.DefaultSleepQuality)
	if err != nil {
		return fmt.Errorf("sleepQuality: %w", err)
	}

	newNamed := func(id int64, s string) NamedTag { return NamedTag{ID: id, Name: s} }
	characters, err := decodeTags(raw.Characters, newNamed, func(t NamedTag) int64 { return t.ID })
	if err != nil {
		return fmt.Errorf("characters: %w", err)
	}
	locations, err := decodeTags(raw.Locations, newNamed, func(t NamedTag) int64 { return t.ID })
	if err != nil {
		return fmt.Errorf("locations: %w", err)
	}
	emotions, err := decodeTags(raw.Emotions, newNamed, func(t NamedTag) int64 { return t.ID })
	if err != nil {
		return fmt.Errorf("emotions: %w", err)
	}
	hashtags, err := decodeTags(raw.Hashtags,
		func(id int64, s string) Hashtag { return Hashtag{ID: id, Label: s} },
		func(t Hashtag) int64 { return t.ID })
	if err != nil {
		return fmt.Errorf("hashtags: %w", err)
	}

	dreamType := raw.DreamType
	if dreamType == "" {
		dreamType = constants.DefaultDreamType
	}

	*e = Entry{
		ID:           raw.ID,
		DreamText:    raw.DreamText,
		DreamType:    dreamType,
		Tone:         tone,
		SleepQuality: sleep,
		Characters:   characters,
		Locations:    locations,
		Emotions:     emotions,
		Hashtags:     hashtags,
		SelectedDate: raw.SelectedDate,
		TodayDate:    raw.TodayDate,
	}
	return nil
}

func isBlank(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeRating accepts a number, a numeric string, or an empty string
// (some revisions reset sliders to "" after submitting). Fractions round
// to the nearest whole rating and values outside the scale are clamped.
func decodeRating(raw json.RawMessage, def int) (int, error) {
	if isBlank(raw) {
		return def, nil
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return clampRating(n), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("expected number, got %s", string(raw))
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, fmt.Errorf("expected number, got %q", s)
	}
	return clampRating(v), nil
}

func clampRating(v float64) int {
	v = math.Round(v)
	if v < constants.MinRating {
		return constants.MinRating
	}
	if v > constants.MaxRating {
		return constants.MaxRating
	}
	return int(v)
}

// decodeTags reads a tag list whose elements are either tag objects or
// bare strings. Blank strings are dropped; strings get ids after the
// largest object id so they never collide.
func decodeTags[T any](raw json.RawMessage, fromString func(int64, string) T, idOf func(T) int64) ([]T, error) {
	if isBlank(raw) {
		return []T{}, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}

	type slot struct {
		tag    T
		legacy string
		isText bool
	}
	slots := make([]slot, 0, len(elems))
	var maxID int64
	for _, el := range elems {
		trimmed := bytes.TrimSpace(el)
		if isBlank(trimmed) {
			continue
		}
		if trimmed[0] == '"' {
			var s string
			if err := json.Unmarshal(trimmed, &s); err != nil {
				return nil, err
			}
			if s = strings.TrimSpace(s); s != "" {
				slots = append(slots, slot{legacy: s, isText: true})
			}
			continue
		}
		var t T
		if err := json.Unmarshal(trimmed, &t); err != nil {
			return nil, err
		}
		if id := idOf(t); id > maxID {
			maxID = id
		}
		slots = append(slots, slot{tag: t})
	}

	tags := make([]T, 0, len(slots))
	for _, s := range slots {
		if s.isText {
			maxID++
			tags = append(tags, fromString(maxID, s.legacy))
			continue
		}
		tags = append(tags, s.tag)
	}
	return tags, nil
}
