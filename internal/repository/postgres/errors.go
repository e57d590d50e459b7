package postgres

import (
	"errors"
	"fmt"

	"talkcatalog/internal/domain"

	"github.com/lib/pq"
)

// SQLSTATE codes returned by Postgres.
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// translateWriteError maps constraint violations raised by INSERT and UPDATE.
// A foreign key violation there means the referenced speaker or room does not exist.
func translateWriteError(err error) error {
	var perr *pq.Error
	if !errors.As(err, &perr) {
		return err
	}
	switch perr.Code {
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, perr.Detail)
	case codeNotNullViolation, codeCheckViolation, codeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, perr.Message)
	}
	return err
}

// translateDeleteError maps constraint violations raised by DELETE.
// A foreign key violation there means talks still reference the row.
func translateDeleteError(err error) error {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == codeForeignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrHasDependents, perr.Detail)
	}
	return err
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
