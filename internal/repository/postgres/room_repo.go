package postgres

import (
	"context"
	"database/sql"
	"errors"

	"talkcatalog/internal/domain"
)

type roomRepository struct {
	DB DBTX
}

// NewRoomRepository returns a domain.RoomRepository implemented with Postgres.
func NewRoomRepository(db DBTX) domain.RoomRepository {
	return &roomRepository{DB: db}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `INSERT INTO rooms (room_name, room_capacity, room_floor) VALUES ($1, $2, $3) RETURNING id`
	if err := r.DB.QueryRowContext(ctx, query, room.Name, room.Capacity, room.Floor).Scan(&room.ID); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE rooms SET room_name = $2, room_capacity = $3, room_floor = $4 WHERE id = $1`,
		room.ID, room.Name, room.Capacity, room.Floor)
	if err != nil {
		return translateWriteError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *roomRepository) Save(ctx context.Context, room *domain.Room) error {
	if room.ID == 0 {
		return r.Create(ctx, room)
	}
	return r.Update(ctx, room)
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, room_name, room_capacity, room_floor FROM rooms WHERE id = $1`, id).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.Floor)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, room_name, room_capacity, room_floor FROM rooms ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Floor); err != nil {
			return nil, err
		}
		rooms = append(rooms, &room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id); err != nil {
		return translateDeleteError(err)
	}
	return nil
}

func (r *roomRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM rooms`)
	if err != nil {
		return 0, translateDeleteError(err)
	}
	return result.RowsAffected()
}
