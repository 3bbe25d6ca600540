// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a demo author with one post if no users exist yet.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, posts)
		VALUES ($1, $2, $3, 1)
		RETURNING id
	`, "Demo Author", "demo@inkpress.local", string(hash)).Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO posts (title, category, description, thumbnail, creator)
		VALUES ($1, $2, $3, $4, $5)
	`, "Welcome to Inkpress", "Uncategorized",
		"This demo post was created by the development seed. Log in as the demo author to edit or delete it.",
		"seed-welcome.png", authorID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	slog.Info("database seeded with demo author",
		"email", "demo@inkpress.local",
		"password", "password",
	)

	return nil
}
