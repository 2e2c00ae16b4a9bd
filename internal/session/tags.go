package session

import (
	"strings"

	"github.com/julianstephens/dreamlog/internal/models"
)

// nextTagID derives an id from the clock, bumped past the largest id
// already in the list
func (s *Session) nextTagID(existing []int64) int64 {
	id := s.now().UnixMilli()
	for _, e := range existing {
		if e >= id {
			id = e + 1
		}
	}
	return id
}

func (s *Session) addNamed(list *[]models.NamedTag, text string) (models.NamedTag, bool) {
	name := strings.TrimSpace(text)
	if name == "" {
		return models.NamedTag{}, false
	}

	ids := make([]int64, len(*list))
	for i, t := range *list {
		ids[i] = t.ID
	}
	tag := models.NamedTag{ID: s.nextTagID(ids), Name: name}
	*list = append(*list, tag)
	return tag, true
}

func removeNamed(list *[]models.NamedTag, id int64) bool {
	for i, t := range *list {
		if t.ID == id {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// AddCharacter appends a trimmed character name. Blank input is ignored.
func (s *Session) AddCharacter(text string) (models.NamedTag, bool) {
	return s.addNamed(&s.draft.Characters, text)
}

func (s *Session) RemoveCharacter(id int64) bool {
	return removeNamed(&s.draft.Characters, id)
}

// AddLocation appends a trimmed location name. Blank input is ignored.
func (s *Session) AddLocation(text string) (models.NamedTag, bool) {
	return s.addNamed(&s.draft.Locations, text)
}

func (s *Session) RemoveLocation(id int64) bool {
	return removeNamed(&s.draft.Locations, id)
}

// AddEmotion appends a trimmed emotion. Blank input is ignored.
func (s *Session) AddEmotion(text string) (models.NamedTag, bool) {
	return s.addNamed(&s.draft.Emotions, text)
}

func (s *Session) RemoveEmotion(id int64) bool {
	return removeNamed(&s.draft.Emotions, id)
}

// AddHashtag appends a trimmed hashtag label. Blank input is ignored.
func (s *Session) AddHashtag(text string) (models.Hashtag, bool) {
	label := strings.TrimSpace(text)
	if label == "" {
		return models.Hashtag{}, false
	}

	ids := make([]int64, len(s.draft.Hashtags))
	for i, t := range s.draft.Hashtags {
		ids[i] = t.ID
	}
	tag := models.Hashtag{ID: s.nextTagID(ids), Label: label}
	s.draft.Hashtags = append(s.draft.Hashtags, tag)
	return tag, true
}

func (s *Session) RemoveHashtag(id int64) bool {
	for i, t := range s.draft.Hashtags {
		if t.ID == id {
			s.draft.Hashtags = append(s.draft.Hashtags[:i:i], s.draft.Hashtags[i+1:]...)
			return true
		}
	}
	return false
}
