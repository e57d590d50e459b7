package domain

import "context"

// SpeakerTalk is a flat row built from a speaker/talk join or a per-speaker aggregate.
// Fields that the producing query does not fill stay zero and are omitted from JSON.
// swagger:model SpeakerTalk
type SpeakerTalk struct {
	SpeakerID       int64  `json:"speaker_id,omitempty"`
	SpeakerLastName string `json:"speaker_last_name,omitempty"`
	TalkID          int64  `json:"talk_id,omitempty"`
	TalkTitle       string `json:"talk_title,omitempty"`
	TalkDescription string `json:"talk_description,omitempty"`
	NumTalks        int64  `json:"num_talks,omitempty"`
	PublishedTalks  int64  `json:"published_talks,omitempty"`
}

// NewSpeakerTalk builds the join variant: one row per talk of a speaker.
func NewSpeakerTalk(lastName, title, description string, speakerID, talkID int64) *SpeakerTalk {
	return &SpeakerTalk{
		SpeakerID:       speakerID,
		SpeakerLastName: lastName,
		TalkID:          talkID,
		TalkTitle:       title,
		TalkDescription: description,
	}
}

// NewSpeakerTalkCount builds the aggregate variant: one row per speaker.
func NewSpeakerTalkCount(lastName string, speakerID, numTalks, publishedTalks int64) *SpeakerTalk {
	return &SpeakerTalk{
		SpeakerID:       speakerID,
		SpeakerLastName: lastName,
		NumTalks:        numTalks,
		PublishedTalks:  publishedTalks,
	}
}

// ProjectionSource selects how a speaker/talk join is computed.
type ProjectionSource string

const (
	// ProjectionNative runs hand-written SQL and maps columns positionally.
	ProjectionNative ProjectionSource = "native"
	// ProjectionORM builds the join with the ORM query builder.
	ProjectionORM ProjectionSource = "orm"
)

// SpeakerTalkFinder computes speaker/talk join rows.
type SpeakerTalkFinder interface {
	SpeakerTalks(ctx context.Context, speakerID int64) ([]*SpeakerTalk, error)
	AllSpeakerTalks(ctx context.Context) ([]*SpeakerTalk, error)
}

// ProjectionRepository is the SQL projection path, including aggregates.
type ProjectionRepository interface {
	SpeakerTalkFinder
	// TalkCounts returns, per speaker with at least one talk whose title starts with
	// titlePrefix, the number of such talks and how many of them are published.
	TalkCounts(ctx context.Context, titlePrefix string) ([]*SpeakerTalk, error)
}
