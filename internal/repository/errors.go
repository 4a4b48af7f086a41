package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "blogapp/internal/errors"
)

// translate converts gorm errors into the application taxonomy.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.NewValidationError("", "username or email already registered")
	default:
		return err
	}
}

const newestFirst = "created_at DESC, id DESC"
