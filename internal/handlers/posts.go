// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/media"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
	"inkpress/internal/store"
)

// Posts groups the post CRUD HTTP handlers.
type Posts struct {
	posts *store.PostStore
	users *store.UserStore
	media *media.Manager
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *store.PostStore, users *store.UserStore, media *media.Manager) *Posts {
	return &Posts{posts: posts, users: users, media: media}
}

// Create stores a new post with the caller as creator. The thumbnail is
// required; on a failed insert the just-written file is removed again.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxThumbnailBytes+16384)
	if err := r.ParseMultipartForm(media.MaxThumbnailBytes); err != nil {
		validationError(w, "Thumbnail must not exceed 2 MB.")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if msg := validatePostFields(title, r.FormValue("category"), description); msg != "" {
		validationError(w, msg)
		return
	}
	category, ok := models.ParseCategory(r.FormValue("category"))
	if !ok {
		validationError(w, "Category is not one of the allowed values.")
		return
	}

	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		validationError(w, "A thumbnail image file is required.")
		return
	}
	defer file.Close()

	name, err := h.media.Save(file, header.Filename, media.MaxThumbnailBytes)
	if err != nil {
		writeMediaError(w, err)
		return
	}

	created, err := h.posts.Create(&models.Post{
		Title:       title,
		Category:    category,
		Description: description,
		Thumbnail:   name,
		CreatorID:   ident.ID,
	})
	if err != nil {
		// Compensate for the already-written file.
		if rmErr := h.media.Remove(name); rmErr != nil {
			slog.Warn("orphan thumbnail cleanup failed", "error", rmErr, "file", name)
		}
		slog.Error("post create failed", "error", err)
		validationError(w, "Couldn't create the post.")
		return
	}

	if err := h.users.AdjustPostCount(ident.ID, 1); err != nil {
		slog.Error("post counter increment failed", "error", err, "user", ident.ID)
	}

	writeJSON(w, http.StatusCreated, created)
}

// List returns all posts, most recently updated first.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List()
	if err != nil {
		slog.Error("post list failed", "error", err)
		internalError(w)
		return
	}
	if len(posts) == 0 {
		notFound(w, "No posts found.")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get returns a single post with its author summary.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "Post not found.")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("post lookup failed", "error", err)
		internalError(w)
		return
	}
	if post == nil {
		notFound(w, "Post not found.")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListByCategory returns posts matching the category, ignoring case.
func (h *Posts) ListByCategory(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListByCategory(chi.URLParam(r, "category"))
	if err != nil {
		slog.Error("post category list failed", "error", err)
		internalError(w)
		return
	}
	if len(posts) == 0 {
		notFound(w, "No posts found in this category.")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// ListByAuthor returns all posts created by the given user.
func (h *Posts) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "No posts found for this author.")
		return
	}

	posts, err := h.posts.ListByAuthor(id)
	if err != nil {
		slog.Error("post author list failed", "error", err)
		internalError(w)
		return
	}
	if len(posts) == 0 {
		notFound(w, "No posts found for this author.")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Edit updates a post's fields and optionally replaces its thumbnail.
// Only the creator may edit; the ownership check rejects outright rather
// than silently skipping the update.
func (h *Posts) Edit(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "Post not found.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxThumbnailBytes+16384)
	if err := r.ParseMultipartForm(media.MaxThumbnailBytes); err != nil {
		validationError(w, "Thumbnail must not exceed 2 MB.")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	if msg := validatePostFields(title, r.FormValue("category"), description); msg != "" {
		validationError(w, msg)
		return
	}
	category, ok := models.ParseCategory(r.FormValue("category"))
	if !ok {
		validationError(w, "Category is not one of the allowed values.")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("post edit lookup failed", "error", err)
		internalError(w)
		return
	}
	if post == nil {
		notFound(w, "Post not found.")
		return
	}
	if post.CreatorID != ident.ID {
		unauthorized(w, "Only the creator may edit this post.")
		return
	}

	// Optional replacement thumbnail.
	thumbnail := post.Thumbnail
	var oldThumbnail string
	if file, header, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()

		name, err := h.media.Save(file, header.Filename, media.MaxThumbnailBytes)
		if err != nil {
			writeMediaError(w, err)
			return
		}
		oldThumbnail = post.Thumbnail
		thumbnail = name
	}

	updated, err := h.posts.Update(id, ident.ID, title, category, description, thumbnail)
	if err != nil {
		slog.Error("post update failed", "error", err)
		internalError(w)
		return
	}
	if updated == nil {
		// The new file has no referencing document; remove it again.
		if thumbnail != post.Thumbnail {
			if rmErr := h.media.Remove(thumbnail); rmErr != nil {
				slog.Warn("orphan thumbnail cleanup failed", "error", rmErr, "file", thumbnail)
			}
		}
		badRequest(w, "Couldn't update the post.")
		return
	}

	// Best-effort removal of the replaced file.
	if oldThumbnail != "" {
		if err := h.media.Remove(oldThumbnail); err != nil {
			slog.Warn("old thumbnail delete failed", "error", err, "file", oldThumbnail)
		}
	}

	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a post, its thumbnail file, and one from the creator's
// counter. Only the creator may delete.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "Post not found.")
		return
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		slog.Error("post delete lookup failed", "error", err)
		internalError(w)
		return
	}
	if post == nil {
		notFound(w, "Post not found.")
		return
	}
	if post.CreatorID != ident.ID {
		unauthorized(w, "Only the creator may delete this post.")
		return
	}

	deleted, err := h.posts.Delete(id, ident.ID)
	if err != nil {
		slog.Error("post delete failed", "error", err)
		internalError(w)
		return
	}
	if deleted == nil {
		notFound(w, "Post not found.")
		return
	}

	// Best-effort thumbnail cleanup after the row is gone.
	if err := h.media.Remove(deleted.Thumbnail); err != nil {
		slog.Warn("thumbnail delete failed", "error", err, "file", deleted.Thumbnail)
	}

	if err := h.users.AdjustPostCount(ident.ID, -1); err != nil {
		slog.Error("post counter decrement failed", "error", err, "user", ident.ID)
	}

	writeMessage(w, http.StatusOK, "Post "+deleted.ID.String()+" deleted.")
}
