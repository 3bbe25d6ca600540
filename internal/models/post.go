// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a published article. CreatorID is immutable after creation;
// only the creator may edit or delete the post. Thumbnail is the
// generated filename of the post's image in the uploads directory.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	CreatorID   uuid.UUID `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Author is populated on reads that join the creator. Omitted from
	// JSON when the query did not attach it.
	Author *Author `json:"author,omitempty"`
}
