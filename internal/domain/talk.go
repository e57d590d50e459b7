package domain

import (
	"context"
	"fmt"
)

// Talk is a presentation given by one speaker. A talk without a room is a tutorial.
// swagger:model Talk
type Talk struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Published   bool   `json:"published"`
	SpeakerID   int64  `json:"speaker_id"`
	RoomID      *int64 `json:"room_id,omitempty"`
}

// NewTalk returns a Talk scheduled in roomID.
func NewTalk(title, description string, published bool, speakerID, roomID int64) *Talk {
	return &Talk{
		Title:       title,
		Description: description,
		Published:   published,
		SpeakerID:   speakerID,
		RoomID:      &roomID,
	}
}

// NewTutorial returns a Talk that has no room.
func NewTutorial(title, description string, published bool, speakerID int64) *Talk {
	return &Talk{
		Title:       title,
		Description: description,
		Published:   published,
		SpeakerID:   speakerID,
	}
}

// IsTutorial reports whether the talk has no room.
func (t *Talk) IsTutorial() bool {
	return t.RoomID == nil
}

// InRoom reports whether the talk is assigned to roomID.
func (t *Talk) InRoom(roomID int64) bool {
	return t.RoomID != nil && *t.RoomID == roomID
}

// SameAs reports whether both talks refer to the same stored row.
func (t *Talk) SameAs(other *Talk) bool {
	return t != nil && other != nil && t.ID != 0 && t.ID == other.ID
}

func (t *Talk) String() string {
	if t.RoomID == nil {
		return fmt.Sprintf("Tutorial %d: %s (speaker %d)", t.ID, t.Title, t.SpeakerID)
	}
	return fmt.Sprintf("Talk %d: %s (speaker %d, room %d)", t.ID, t.Title, t.SpeakerID, *t.RoomID)
}

// TalkRepository defines storage for talks. Room membership is written only through
// RoomAssignmentRepository once a talk exists.
type TalkRepository interface {
	// Create inserts the talk including its room.
	Create(ctx context.Context, talk *Talk) error
	// Update overwrites title, description, published and speaker_id. room_id is left untouched.
	Update(ctx context.Context, talk *Talk) error
	Save(ctx context.Context, talk *Talk) error
	GetByID(ctx context.Context, id int64) (*Talk, error)
	List(ctx context.Context) ([]*Talk, error)
	ListByTitleContaining(ctx context.Context, substring string) ([]*Talk, error)
	ListByPublished(ctx context.Context, published bool) ([]*Talk, error)
	// ListWithFunction reads talks through the get_talks_with_function stored function.
	ListWithFunction(ctx context.Context) ([]*Talk, error)
	ListBySpeakerID(ctx context.Context, speakerID int64) ([]*Talk, error)
	ListByRoomID(ctx context.Context, roomID int64) ([]*Talk, error)
	// SpeakerIDOf returns the speaker id stored for the talk.
	SpeakerIDOf(ctx context.Context, talkID int64) (int64, error)
	// ReassignSpeaker points every talk in talkIDs at speakerID and returns the rows changed.
	ReassignSpeaker(ctx context.Context, talkIDs []int64, speakerID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}

// RoomAssignmentRepository owns the talk to room relation stored in talks.room_id.
type RoomAssignmentRepository interface {
	// Reassign moves the talk to roomID, or detaches it when roomID is nil.
	// It returns the room the talk was in before.
	Reassign(ctx context.Context, talkID int64, roomID *int64) (*int64, error)
	CountTalks(ctx context.Context, roomID int64) (int, error)
	DeleteTalks(ctx context.Context, roomID int64) (int64, error)
	// CountAssigned returns the number of talks that are in any room.
	CountAssigned(ctx context.Context) (int, error)
	DeleteAssigned(ctx context.Context) (int64, error)
}

// TalkUpdate is the payload of a talk update. Nil SpeakerID or Room leaves the relation as is.
type TalkUpdate struct {
	Title       string
	Description string
	Published   bool
	SpeakerID   *int64
	Room        *RoomChange
}

// RoomChange selects the new room of a talk. A nil RoomID detaches the talk.
type RoomChange struct {
	RoomID *int64
}

// TalkService exposes talk operations to the delivery layer.
type TalkService interface {
	// CreateTalk requires a speaker and a room.
	CreateTalk(ctx context.Context, talk *Talk) error
	// CreateTutorial requires a speaker and stores no room.
	CreateTutorial(ctx context.Context, talk *Talk) error
	Get(ctx context.Context, id int64) (*Talk, error)
	List(ctx context.Context, titleContains string) ([]*Talk, error)
	ListPublished(ctx context.Context, published bool) ([]*Talk, error)
	ListWithFunction(ctx context.Context) ([]*Talk, error)
	Update(ctx context.Context, id int64, update TalkUpdate) (*Talk, error)
	// AssignRoom moves the talk to roomID, or detaches it when roomID is nil.
	AssignRoom(ctx context.Context, talkID int64, roomID *int64) (*Talk, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
}
