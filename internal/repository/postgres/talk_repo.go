package postgres

import (
	"context"
	"database/sql"
	"errors"

	"talkcatalog/internal/domain"

	"github.com/lib/pq"
)

const talkColumns = `id, title, description, published, speaker_id, room_id`

type talkRepository struct {
	DB DBTX
}

// NewTalkRepository returns a domain.TalkRepository implemented with Postgres.
func NewTalkRepository(db DBTX) domain.TalkRepository {
	return &talkRepository{DB: db}
}

func (r *talkRepository) Create(ctx context.Context, t *domain.Talk) error {
	query := `INSERT INTO talks (title, description, published, speaker_id, room_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.DB.QueryRowContext(ctx, query,
		t.Title, t.Description, t.Published, t.SpeakerID, nullableID(t.RoomID),
	).Scan(&t.ID)
	if err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *talkRepository) Update(ctx context.Context, t *domain.Talk) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE talks SET title = $2, description = $3, published = $4, speaker_id = $5 WHERE id = $1`,
		t.ID, t.Title, t.Description, t.Published, t.SpeakerID)
	if err != nil {
		return translateWriteError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *talkRepository) Save(ctx context.Context, t *domain.Talk) error {
	if t.ID == 0 {
		return r.Create(ctx, t)
	}
	return r.Update(ctx, t)
}

func (r *talkRepository) GetByID(ctx context.Context, id int64) (*domain.Talk, error) {
	t, err := scanTalk(r.DB.QueryRowContext(ctx, `SELECT `+talkColumns+` FROM talks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *talkRepository) List(ctx context.Context) ([]*domain.Talk, error) {
	return r.query(ctx, `SELECT `+talkColumns+` FROM talks ORDER BY id`)
}

func (r *talkRepository) ListByTitleContaining(ctx context.Context, substring string) ([]*domain.Talk, error) {
	return r.query(ctx,
		`SELECT `+talkColumns+` FROM talks WHERE title LIKE '%' || $1 || '%' ORDER BY id`, substring)
}

func (r *talkRepository) ListByPublished(ctx context.Context, published bool) ([]*domain.Talk, error) {
	return r.query(ctx, `SELECT `+talkColumns+` FROM talks WHERE published = $1 ORDER BY id`, published)
}

func (r *talkRepository) ListWithFunction(ctx context.Context) ([]*domain.Talk, error) {
	return r.query(ctx, `SELECT `+talkColumns+` FROM get_talks_with_function()`)
}

func (r *talkRepository) ListBySpeakerID(ctx context.Context, speakerID int64) ([]*domain.Talk, error) {
	return r.query(ctx, `SELECT `+talkColumns+` FROM talks WHERE speaker_id = $1 ORDER BY id`, speakerID)
}

func (r *talkRepository) ListByRoomID(ctx context.Context, roomID int64) ([]*domain.Talk, error) {
	return r.query(ctx, `SELECT `+talkColumns+` FROM talks WHERE room_id = $1 ORDER BY id`, roomID)
}

func (r *talkRepository) SpeakerIDOf(ctx context.Context, talkID int64) (int64, error) {
	var speakerID int64
	err := r.DB.QueryRowContext(ctx, `SELECT speaker_id FROM talks WHERE id = $1`, talkID).Scan(&speakerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return speakerID, nil
}

func (r *talkRepository) ReassignSpeaker(ctx context.Context, talkIDs []int64, speakerID int64) (int64, error) {
	if len(talkIDs) == 0 {
		return 0, nil
	}
	result, err := r.DB.ExecContext(ctx,
		`UPDATE talks SET speaker_id = $1 WHERE id = ANY($2)`, speakerID, pq.Array(talkIDs))
	if err != nil {
		return 0, translateWriteError(err)
	}
	return result.RowsAffected()
}

func (r *talkRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM talks WHERE id = $1`, id)
	return err
}

func (r *talkRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM talks`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *talkRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Talk, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var talks []*domain.Talk
	for rows.Next() {
		t, err := scanTalk(rows)
		if err != nil {
			return nil, err
		}
		talks = append(talks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return talks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTalk(row rowScanner) (*domain.Talk, error) {
	var t domain.Talk
	var roomID sql.NullInt64
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Published, &t.SpeakerID, &roomID); err != nil {
		return nil, err
	}
	if roomID.Valid {
		id := roomID.Int64
		t.RoomID = &id
	}
	return &t, nil
}
