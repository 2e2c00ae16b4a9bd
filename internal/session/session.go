// Package session holds the draft of one entry being written or edited
// and turns it into a persisted entry on submit.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/dreamlog/internal/constants"
	"github.com/julianstephens/dreamlog/internal/logger"
	"github.com/julianstephens/dreamlog/internal/models"
	"github.com/julianstephens/dreamlog/internal/navigation"
)

var (
	// ErrEmptyDreamText is returned when the dream text is blank after trimming
	ErrEmptyDreamText = models.ErrEmptyDreamText
	// ErrInvalidDraft wraps any other validation failure
	ErrInvalidDraft = errors.New("invalid draft")
	// ErrSessionClosed is returned when submitting an already submitted session
	ErrSessionClosed = errors.New("session already submitted")
)

// Repository is the subset of the entry repository a session needs
type Repository interface {
	Upsert(ctx context.Context, e models.Entry) []models.Entry
	Pending(ctx context.Context) (models.Entry, bool)
	ClearPending(ctx context.Context)
	NextID() int64
}

type State int

const (
	Drafting State = iota
	Submitted
)

func (s State) String() string {
	switch s {
	case Drafting:
		return "drafting"
	case Submitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Draft is the editable state of the form. Fields are exported so form
// widgets can bind to them directly.
type Draft struct {
	DreamText    string
	DreamType    constants.DreamType
	Tone         int
	SleepQuality int
	Characters   []models.NamedTag
	Locations    []models.NamedTag
	Emotions     []models.NamedTag
	Hashtags     []models.Hashtag
	SelectedDate string
}

type Session struct {
	id   string
	repo Repository
	nav  navigation.Navigator
	now  func() time.Time

	draft     Draft
	state     State
	editingID int64
	editing   bool
}

type Option func(*Session)

// WithClock sets the time source used for default dates, tag ids and
// submission timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New starts a session for a new entry with default field values
func New(repo Repository, nav navigation.Navigator, opts ...Option) *Session {
	if nav == nil {
		nav = navigation.Noop{}
	}
	s := &Session{
		id:   uuid.NewString(),
		repo: repo,
		nav:  nav,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.draft = s.defaultDraft()

	logger.Debug("Session started", "session", s.id, "mode", "new")
	return s
}

// NewEdit starts a session from the entry in the staging slot. With an
// empty slot it behaves exactly like New.
func NewEdit(ctx context.Context, repo Repository, nav navigation.Navigator, opts ...Option) *Session {
	s := New(repo, nav, opts...)

	staged, ok := repo.Pending(ctx)
	if !ok {
		return s
	}

	staged = staged.Clone()
	s.draft = Draft{
		DreamText:    staged.DreamText,
		DreamType:    staged.DreamType,
		Tone:         staged.Tone,
		SleepQuality: staged.SleepQuality,
		Characters:   staged.Characters,
		Locations:    staged.Locations,
		Emotions:     staged.Emotions,
		Hashtags:     staged.Hashtags,
		SelectedDate: staged.SelectedDate,
	}
	s.editingID = staged.ID
	s.editing = true

	logger.Debug("Session started", "session", s.id, "mode", "edit", "id", staged.ID)
	return s
}

func (s *Session) defaultDraft() Draft {
	return Draft{
		DreamType:    constants.DefaultDreamType,
		Tone:         constants.DefaultTone,
		SleepQuality: constants.DefaultSleepQuality,
		Characters:   []models.NamedTag{},
		Locations:    []models.NamedTag{},
		Emotions:     []models.NamedTag{},
		Hashtags:     []models.Hashtag{},
		SelectedDate: s.now().Format(constants.DateFormat),
	}
}

// ID is the correlation id used in log lines for this session
func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	return s.state
}

// EditingID returns the id of the entry being edited, if any
func (s *Session) EditingID() (int64, bool) {
	return s.editingID, s.editing
}

// Draft returns the live draft for binding
func (s *Session) Draft() *Draft {
	return &s.draft
}

func (s *Session) entry() models.Entry {
	return models.Entry{
		ID:           s.editingID,
		DreamText:    s.draft.DreamText,
		DreamType:    s.draft.DreamType,
		Tone:         s.draft.Tone,
		SleepQuality: s.draft.SleepQuality,
		Characters:   s.draft.Characters,
		Locations:    s.draft.Locations,
		Emotions:     s.draft.Emotions,
		Hashtags:     s.draft.Hashtags,
		SelectedDate: s.draft.SelectedDate,
	}.Clone()
}

// Submit validates the draft and persists it. On a validation failure
// nothing changes: the draft, the staging slot and the collection are
// left as they were.
func (s *Session) Submit(ctx context.Context) (models.Entry, error) {
	if s.state == Submitted {
		return models.Entry{}, ErrSessionClosed
	}

	e := s.entry()
	if err := e.Validate(); err != nil {
		if errors.Is(err, models.ErrEmptyDreamText) {
			logger.Warn("Submit rejected: dream text is empty", "session", s.id)
			return models.Entry{}, ErrEmptyDreamText
		}
		logger.Warn("Submit rejected", "session", s.id, "error", err)
		return models.Entry{}, fmt.Errorf("%w: %w", ErrInvalidDraft, err)
	}

	if !s.editing {
		e.ID = s.repo.NextID()
	}
	e.TodayDate = s.now().Format(time.RFC3339Nano)

	s.repo.Upsert(ctx, e)
	s.repo.ClearPending(ctx)

	s.draft = s.defaultDraft()
	s.state = Submitted
	logger.Debug("Session submitted", "session", s.id, "id", e.ID, "edit", s.editing)

	if s.editing {
		s.nav.ReplaceWithList()
	} else {
		s.nav.GoBack()
	}

	return e, nil
}
