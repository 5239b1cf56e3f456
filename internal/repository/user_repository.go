package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutoring-api/internal/models"
)

// UserRepository provides read access to the accounts mirrored from the
// login provider.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a user by identifier. sql.ErrNoRows is returned untouched.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, first_name, last_name, role FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}
