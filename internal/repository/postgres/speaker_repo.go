package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"talkcatalog/internal/domain"
)

const speakerColumns = `id, first_name, last_name, age`

// speakerSortColumns maps sortable field names to columns.
var speakerSortColumns = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
	"age":        "age",
}

type speakerRepository struct {
	DB DBTX
}

// NewSpeakerRepository returns a domain.SpeakerRepository implemented with Postgres.
func NewSpeakerRepository(db DBTX) domain.SpeakerRepository {
	return &speakerRepository{DB: db}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	query := `INSERT INTO speakers (first_name, last_name, age) VALUES ($1, $2, $3) RETURNING id`
	if err := r.DB.QueryRowContext(ctx, query, s.FirstName, s.LastName, s.Age).Scan(&s.ID); err != nil {
		return translateWriteError(err)
	}
	return nil
}

func (r *speakerRepository) Update(ctx context.Context, s *domain.Speaker) error {
	result, err := r.DB.ExecContext(ctx,
		`UPDATE speakers SET first_name = $2, last_name = $3, age = $4 WHERE id = $1`,
		s.ID, s.FirstName, s.LastName, s.Age)
	if err != nil {
		return translateWriteError(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *speakerRepository) Save(ctx context.Context, s *domain.Speaker) error {
	if s.ID == 0 {
		return r.Create(ctx, s)
	}
	return r.Update(ctx, s)
}

func (r *speakerRepository) GetByID(ctx context.Context, id int64) (*domain.Speaker, error) {
	var s domain.Speaker
	err := r.DB.QueryRowContext(ctx, `SELECT `+speakerColumns+` FROM speakers WHERE id = $1`, id).
		Scan(&s.ID, &s.FirstName, &s.LastName, &s.Age)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *speakerRepository) List(ctx context.Context, sort domain.Sort) ([]*domain.Speaker, error) {
	orderBy, err := speakerOrderBy(sort)
	if err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx, `SELECT `+speakerColumns+` FROM speakers `+orderBy)
	if err != nil {
		return nil, err
	}
	return scanSpeakers(rows)
}

func (r *speakerRepository) ListPage(ctx context.Context, page domain.PageRequest) ([]*domain.Speaker, int, error) {
	orderBy, err := speakerOrderBy(page.Sort)
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM speakers`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+speakerColumns+` FROM speakers `+orderBy+` LIMIT $1 OFFSET $2`,
		page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	speakers, err := scanSpeakers(rows)
	if err != nil {
		return nil, 0, err
	}
	return speakers, total, nil
}

func (r *speakerRepository) ListByFirstName(ctx context.Context, firstName string) ([]*domain.SpeakerSummary, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, last_name FROM speakers WHERE first_name = $1 ORDER BY id`, firstName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.SpeakerSummary
	for rows.Next() {
		var s domain.SpeakerSummary
		if err := rows.Scan(&s.ID, &s.LastName); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *speakerRepository) LowestIDExcept(ctx context.Context, id int64) (*domain.Speaker, error) {
	var s domain.Speaker
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+speakerColumns+` FROM speakers WHERE id <> $1 ORDER BY id LIMIT 1`, id).
		Scan(&s.ID, &s.FirstName, &s.LastName, &s.Age)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *speakerRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM speakers WHERE id = $1`, id); err != nil {
		return translateDeleteError(err)
	}
	return nil
}

func (r *speakerRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM speakers`)
	if err != nil {
		return 0, translateDeleteError(err)
	}
	return result.RowsAffected()
}

func scanSpeakers(rows *sql.Rows) ([]*domain.Speaker, error) {
	defer rows.Close()
	var out []*domain.Speaker
	for rows.Next() {
		var s domain.Speaker
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Age); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// speakerOrderBy renders sort as an ORDER BY clause. id is appended as a tiebreaker so
// pages stay stable.
func speakerOrderBy(sort domain.Sort) (string, error) {
	parts := make([]string, 0, len(sort)+1)
	hasID := false
	for _, f := range sort {
		col, ok := speakerSortColumns[f.Field]
		if !ok {
			return "", fmt.Errorf("%w: unknown sort field %q", domain.ErrInvalidInput, f.Field)
		}
		if col == "id" {
			hasID = true
		}
		dir := "ASC"
		if f.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}
