package postgres

import (
	"context"

	"talkcatalog/internal/domain"

	"gorm.io/gorm"
)

// SpeakerModel maps the speakers table for the ORM path.
type SpeakerModel struct {
	ID        int64 `gorm:"primaryKey"`
	FirstName string
	LastName  string
	Age       int
	Talks     []TalkModel `gorm:"foreignKey:SpeakerID"`
}

func (SpeakerModel) TableName() string { return "speakers" }

// TalkModel maps the talks table for the ORM path.
type TalkModel struct {
	ID          int64 `gorm:"primaryKey"`
	Title       string
	Description string
	Published   bool
	SpeakerID   int64
	RoomID      *int64
}

func (TalkModel) TableName() string { return "talks" }

type speakerTalkRow struct {
	LastName    string
	Title       string
	Description string
	SpeakerID   int64
	TalkID      int64
}

type gormProjectionRepository struct {
	db *gorm.DB
}

// NewGormProjectionRepository returns a domain.SpeakerTalkFinder that builds the speaker/talk
// join with GORM.
func NewGormProjectionRepository(db *gorm.DB) domain.SpeakerTalkFinder {
	return &gormProjectionRepository{db: db}
}

func (r *gormProjectionRepository) SpeakerTalks(ctx context.Context, speakerID int64) ([]*domain.SpeakerTalk, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("talks.speaker_id = ?", speakerID)
	})
}

func (r *gormProjectionRepository) AllSpeakerTalks(ctx context.Context) ([]*domain.SpeakerTalk, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q })
}

func (r *gormProjectionRepository) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.SpeakerTalk, error) {
	var rows []speakerTalkRow
	err := r.db.WithContext(ctx).
		Model(&SpeakerModel{}).
		Select("speakers.last_name AS last_name, talks.title AS title, talks.description AS description, speakers.id AS speaker_id, talks.id AS talk_id").
		Joins("JOIN talks ON talks.speaker_id = speakers.id").
		Scopes(scope).
		Order("talks.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.SpeakerTalk, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.NewSpeakerTalk(row.LastName, row.Title, row.Description, row.SpeakerID, row.TalkID))
	}
	return out, nil
}
