package storage

import (
	"context"
	"fmt"

	"github.com/meltforce/trainlog/internal/models"
)

// CreateUser inserts a new account and returns its ID. The username must be
// unique; a conflict surfaces as the driver's constraint error.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, is_admin)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		username, passwordHash, isAdmin).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating user: %w", err)
	}
	return id, nil
}

// GetUserByUsername looks up an account by its unique username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, username, password_hash, is_admin, created_at
		 FROM users
		 WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, scanErr(err, "querying user")
	}
	return &u, nil
}
