package postgres

import (
	"context"
	"database/sql"
	"errors"

	"talkcatalog/internal/domain"
)

type roomAssignmentRepository struct {
	DB DBTX
}

// NewRoomAssignmentRepository returns a domain.RoomAssignmentRepository backed by talks.room_id.
func NewRoomAssignmentRepository(db DBTX) domain.RoomAssignmentRepository {
	return &roomAssignmentRepository{DB: db}
}

// Reassign locks the talk row, stores the new room and returns the previous one in one statement.
func (r *roomAssignmentRepository) Reassign(ctx context.Context, talkID int64, roomID *int64) (*int64, error) {
	query := `UPDATE talks t SET room_id = $2
		FROM (SELECT id, room_id FROM talks WHERE id = $1 FOR UPDATE) prev
		WHERE t.id = prev.id
		RETURNING prev.room_id`
	var previous sql.NullInt64
	if err := r.DB.QueryRowContext(ctx, query, talkID, nullableID(roomID)).Scan(&previous); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, translateWriteError(err)
	}
	if !previous.Valid {
		return nil, nil
	}
	id := previous.Int64
	return &id, nil
}

func (r *roomAssignmentRepository) CountTalks(ctx context.Context, roomID int64) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM talks WHERE room_id = $1`, roomID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *roomAssignmentRepository) DeleteTalks(ctx context.Context, roomID int64) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM talks WHERE room_id = $1`, roomID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *roomAssignmentRepository) CountAssigned(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM talks WHERE room_id IS NOT NULL`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *roomAssignmentRepository) DeleteAssigned(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM talks WHERE room_id IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
