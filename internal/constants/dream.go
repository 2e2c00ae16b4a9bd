package constants

import "strings"

// DreamType classifies an entry
type DreamType string

const (
	DreamTypeDream     DreamType = "rêve"
	DreamTypeLucid     DreamType = "lucide"
	DreamTypeNightmare DreamType = "cauchemar"

	// Draft defaults
	DefaultDreamType    = DreamTypeDream
	DefaultTone         = 5
	DefaultSleepQuality = 5

	// Slider bounds shared by tone and sleep quality
	MinRating = 0
	MaxRating = 10
)

// DreamTypes lists the accepted dream types in display order
var DreamTypes = []DreamType{DreamTypeDream, DreamTypeLucid, DreamTypeNightmare}

// Label returns the human readable name of a dream type
func (t DreamType) Label() string {
	switch t {
	case DreamTypeDream:
		return "Dream"
	case DreamTypeLucid:
		return "Lucid dream"
	case DreamTypeNightmare:
		return "Nightmare"
	default:
		return string(t)
	}
}

// Valid reports whether t is one of the accepted dream types
func (t DreamType) Valid() bool {
	for _, known := range DreamTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseDreamType accepts a stored value ("lucide"), its label ("Lucid
// dream") or a short English alias ("lucid"), ignoring case
func ParseDreamType(s string) (DreamType, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, t := range DreamTypes {
		if key == string(t) || key == strings.ToLower(t.Label()) {
			return t, true
		}
	}
	switch key {
	case "dream", "reve":
		return DreamTypeDream, true
	case "lucid":
		return DreamTypeLucid, true
	}
	return "", false
}
