package domain

import (
	"context"
	"fmt"
)

// UnknownAge is stored when a speaker is created without an age.
const UnknownAge = -1

// Speaker is a person who gives talks. Talks reference the speaker through Talk.SpeakerID.
// swagger:model Speaker
type Speaker struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Age       int    `json:"age"`
}

// NewSpeaker returns a new Speaker. ID is set by the repository on create.
func NewSpeaker(firstName, lastName string, age int) *Speaker {
	return &Speaker{
		FirstName: firstName,
		LastName:  lastName,
		Age:       age,
	}
}

// SameAs reports whether both speakers refer to the same stored row.
func (s *Speaker) SameAs(other *Speaker) bool {
	return s != nil && other != nil && s.ID != 0 && s.ID == other.ID
}

func (s *Speaker) String() string {
	return fmt.Sprintf("Speaker %d: %s %s", s.ID, s.FirstName, s.LastName)
}

// SpeakerSummary is the narrow projection returned by first-name lookups.
// swagger:model SpeakerSummary
type SpeakerSummary struct {
	ID       int64  `json:"id"`
	LastName string `json:"last_name"`
}

// SpeakerSortFields lists the columns speakers may be ordered by.
var SpeakerSortFields = []string{"id", "first_name", "last_name", "age"}

// SpeakerRepository defines storage for speakers.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	// Update overwrites every scalar column. Returns ErrNotFound if the row does not exist.
	Update(ctx context.Context, speaker *Speaker) error
	// Save inserts when speaker.ID is zero, otherwise updates.
	Save(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id int64) (*Speaker, error)
	List(ctx context.Context, sort Sort) ([]*Speaker, error)
	// ListPage returns one page of speakers and the total number of speakers.
	ListPage(ctx context.Context, page PageRequest) ([]*Speaker, int, error)
	ListByFirstName(ctx context.Context, firstName string) ([]*SpeakerSummary, error)
	// LowestIDExcept returns the speaker with the smallest id other than id, or ErrNotFound.
	LowestIDExcept(ctx context.Context, id int64) (*Speaker, error)
	// Delete removes the speaker. A missing id is not an error.
	Delete(ctx context.Context, id int64) error
	// DeleteAll removes every speaker and returns the number of rows removed.
	DeleteAll(ctx context.Context) (int64, error)
}

// SpeakerService exposes speaker operations to the delivery layer.
type SpeakerService interface {
	Create(ctx context.Context, speaker *Speaker) error
	Get(ctx context.Context, id int64) (*Speaker, error)
	Update(ctx context.Context, id int64, update SpeakerUpdate) (*Speaker, error)
	// Delete reassigns the speaker's talks to a fallback speaker and removes the speaker.
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, sort Sort) ([]*Speaker, error)
	ListPage(ctx context.Context, page PageRequest) (*Page[*Speaker], error)
	ListByFirstName(ctx context.Context, firstName string) ([]*SpeakerSummary, error)
	ListTalks(ctx context.Context, id int64) ([]*Talk, error)
	SpeakerTalks(ctx context.Context, id int64, source ProjectionSource) ([]*SpeakerTalk, error)
	AllSpeakerTalks(ctx context.Context) ([]*SpeakerTalk, error)
	TalkCounts(ctx context.Context, titlePrefix string) ([]*SpeakerTalk, error)
}

// SpeakerUpdate carries the scalar fields written by a speaker update.
type SpeakerUpdate struct {
	FirstName string
	LastName  string
	Age       int
}
