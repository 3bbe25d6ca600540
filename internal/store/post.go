// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// PostStore handles all post-related database operations. Read queries
// join the creator so responses can carry the author summary without a
// second round trip.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postJoinQuery = `
	SELECT p.id, p.title, p.category, p.description, p.thumbnail, p.creator,
	       p.created_at, p.updated_at,
	       u.id, u.name, u.posts, u.avatar
	FROM posts p
	JOIN users u ON u.id = p.creator
`

func scanPostWithAuthor(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{Author: &models.Author{}}
	err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Description, &p.Thumbnail, &p.CreatorID,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Author.ID, &p.Author.Name, &p.Author.Posts, &p.Author.Avatar,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostStore) listWhere(where string, args ...any) ([]models.Post, error) {
	rows, err := s.db.Query(postJoinQuery+where+` ORDER BY p.updated_at DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPostWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// List returns all posts, most recently updated first, with the author
// summary attached.
func (s *PostStore) List() ([]models.Post, error) {
	return s.listWhere("")
}

// ListByCategory returns posts whose category matches, ignoring case,
// in the same order as List.
func (s *PostStore) ListByCategory(category string) ([]models.Post, error) {
	return s.listWhere(`WHERE LOWER(p.category) = LOWER($1)`, category)
}

// ListByAuthor returns all posts created by the given user, in the same
// order as List.
func (s *PostStore) ListByAuthor(creator uuid.UUID) ([]models.Post, error) {
	return s.listWhere(`WHERE p.creator = $1`, creator)
}

// FindByID retrieves a post with its author summary. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	p, err := scanPostWithAuthor(s.db.QueryRow(postJoinQuery+`WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it with the generated ID and
// timestamps. The creator reference is fixed at insert and never updated.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	result := &models.Post{}
	err := s.db.QueryRow(`
		INSERT INTO posts (title, category, description, thumbnail, creator)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, category, description, thumbnail, creator, created_at, updated_at
	`, p.Title, p.Category, p.Description, p.Thumbnail, p.CreatorID).Scan(
		&result.ID, &result.Title, &result.Category, &result.Description,
		&result.Thumbnail, &result.CreatorID, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return result, nil
}

// Update modifies title, category, description, and thumbnail of a post
// owned by creator. The creator condition backs up the handler-level
// ownership check. Returns nil if no matching row was updated.
func (s *PostStore) Update(id, creator uuid.UUID, title string, category models.Category, description, thumbnail string) (*models.Post, error) {
	result := &models.Post{}
	err := s.db.QueryRow(`
		UPDATE posts SET title = $1, category = $2, description = $3, thumbnail = $4, updated_at = NOW()
		WHERE id = $5 AND creator = $6
		RETURNING id, title, category, description, thumbnail, creator, created_at, updated_at
	`, title, category, description, thumbnail, id, creator).Scan(
		&result.ID, &result.Title, &result.Category, &result.Description,
		&result.Thumbnail, &result.CreatorID, &result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return result, nil
}

// Delete removes a post owned by creator and returns the deleted row so
// the caller can clean up the thumbnail file. Returns nil if no row matched.
func (s *PostStore) Delete(id, creator uuid.UUID) (*models.Post, error) {
	result := &models.Post{}
	err := s.db.QueryRow(`
		DELETE FROM posts
		WHERE id = $1 AND creator = $2
		RETURNING id, title, category, description, thumbnail, creator, created_at, updated_at
	`, id, creator).Scan(
		&result.ID, &result.Title, &result.Category, &result.Description,
		&result.Thumbnail, &result.CreatorID, &result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete post: %w", err)
	}
	return result, nil
}
