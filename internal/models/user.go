// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered author. The password hash never leaves
// the server; Avatar holds the generated filename of the current avatar
// image, nil when none has been uploaded.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"` // stored lowercase
	PasswordHash string    `json:"-"`
	Avatar       *string   `json:"avatar"`
	Posts        int       `json:"posts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Author is the subset of user fields attached to posts on read.
type Author struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Posts  int       `json:"posts"`
	Avatar *string   `json:"avatar"`
}

// Summary returns the author view of a user.
func (u *User) Summary() Author {
	return Author{ID: u.ID, Name: u.Name, Posts: u.Posts, Avatar: u.Avatar}
}
