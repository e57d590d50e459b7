package postgres

import (
	"context"
	"database/sql"

	"talkcatalog/internal/domain"
)

const speakerTalkJoin = `SELECT s.last_name, t.title, t.description, s.id, t.id
	FROM speakers s
	JOIN talks t ON s.id = t.speaker_id`

type projectionRepository struct {
	DB DBTX
}

// NewProjectionRepository returns a domain.ProjectionRepository that runs hand-written SQL
// and maps result columns positionally.
func NewProjectionRepository(db DBTX) domain.ProjectionRepository {
	return &projectionRepository{DB: db}
}

func (r *projectionRepository) SpeakerTalks(ctx context.Context, speakerID int64) ([]*domain.SpeakerTalk, error) {
	rows, err := r.DB.QueryContext(ctx, speakerTalkJoin+` WHERE t.speaker_id = $1 ORDER BY t.id`, speakerID)
	if err != nil {
		return nil, err
	}
	return scanSpeakerTalks(rows)
}

func (r *projectionRepository) AllSpeakerTalks(ctx context.Context) ([]*domain.SpeakerTalk, error) {
	rows, err := r.DB.QueryContext(ctx, speakerTalkJoin+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	return scanSpeakerTalks(rows)
}

func (r *projectionRepository) TalkCounts(ctx context.Context, titlePrefix string) ([]*domain.SpeakerTalk, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.last_name, s.id, COUNT(t.id), COUNT(t.id) FILTER (WHERE t.published)
		 FROM speakers s
		 JOIN talks t ON s.id = t.speaker_id
		 WHERE t.title LIKE $1 || '%'
		 GROUP BY s.id, s.last_name
		 HAVING COUNT(t.id) >= 1
		 ORDER BY s.id`, titlePrefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.SpeakerTalk
	for rows.Next() {
		var (
			lastName                  string
			speakerID, num, published int64
		)
		if err := rows.Scan(&lastName, &speakerID, &num, &published); err != nil {
			return nil, err
		}
		out = append(out, domain.NewSpeakerTalkCount(lastName, speakerID, num, published))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSpeakerTalks(rows *sql.Rows) ([]*domain.SpeakerTalk, error) {
	defer rows.Close()
	var out []*domain.SpeakerTalk
	for rows.Next() {
		var (
			lastName, title, description string
			speakerID, talkID            int64
		)
		if err := rows.Scan(&lastName, &title, &description, &speakerID, &talkID); err != nil {
			return nil, err
		}
		out = append(out, domain.NewSpeakerTalk(lastName, title, description, speakerID, talkID))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
