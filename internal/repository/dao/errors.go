package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameExists      = errors.New("a user with that username already exists")
	ErrUserEmailExists     = errors.New("user already exists")
	ErrPreferencesNotFound = errors.New("preferences not found")

	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryNameExists = errors.New("category with this name already exists")

	ErrEventNotFound   = errors.New("event not found")
	ErrEventSlugExists = errors.New("event with this slug already exists")

	ErrRegistrationNotFound  = errors.New("registration not found")
	ErrRegistrationDuplicate = errors.New("registration already exists")
	ErrRegistrationStale     = errors.New("registration was modified by another request")

	ErrCommentNotFound = errors.New("comment not found")
)

// uniqueViolation reports whether err is a unique constraint failure and returns
// a description that contains the constraint or column name.
func uniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName + " " + pgErr.Message, true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return err.Error(), true
	}

	return "", false
}
