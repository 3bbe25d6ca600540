// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Inkpress
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkpress/internal/auth"
	"inkpress/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, email, password_hash, avatar, posts, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }, u *models.User) error {
	return row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Avatar,
		&u.Posts, &u.CreatedAt, &u.UpdatedAt,
	)
}

// FindByEmail retrieves a user by their normalized email address.
// Returns nil if not found.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	u := &models.User{}
	err := scanUser(s.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users WHERE email = $1
	`, strings.ToLower(email)), u)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(id uuid.UUID) (*models.User, error) {
	u := &models.User{}
	err := scanUser(s.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users WHERE id = $1
	`, id), u)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// List returns all users ordered by creation date.
func (s *UserStore) List() ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT ` + userColumns + `
		FROM users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a new user with a bcrypt-hashed password. The email is
// normalized to lowercase before the write.
func (s *UserStore) Create(name, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &models.User{}
	err = scanUser(s.db.QueryRow(`
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns+`
	`, name, strings.ToLower(email), hash), u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateProfile rehashes the new password and persists name, email, and
// hash. Returns nil if no user matched the id.
func (s *UserStore) UpdateProfile(id uuid.UUID, name, email, newPassword string) (*models.User, error) {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	u := &models.User{}
	err = scanUser(s.db.QueryRow(`
		UPDATE users SET name = $1, email = $2, password_hash = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+userColumns+`
	`, name, strings.ToLower(email), hash, id), u)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

// UpdateAvatar replaces the user's avatar filename and returns the
// updated user. Returns nil if no user matched the id.
func (s *UserStore) UpdateAvatar(id uuid.UUID, avatar string) (*models.User, error) {
	u := &models.User{}
	err := scanUser(s.db.QueryRow(`
		UPDATE users SET avatar = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, avatar, id), u)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	return u, nil
}

// AdjustPostCount atomically shifts the user's post counter by delta,
// never dropping below zero. A single UPDATE avoids the read-modify-write
// race between concurrent post creations and deletions.
func (s *UserStore) AdjustPostCount(id uuid.UUID, delta int) error {
	_, err := s.db.Exec(`
		UPDATE users SET posts = GREATEST(posts + $1, 0), updated_at = NOW()
		WHERE id = $2
	`, delta, id)
	if err != nil {
		return fmt.Errorf("adjust post count: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return auth.CheckPassword(user.PasswordHash, password)
}
