// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/auth"
	"inkpress/internal/media"
	"inkpress/internal/middleware"
	"inkpress/internal/store"
)

// Users groups the account and profile HTTP handlers.
type Users struct {
	users  *store.UserStore
	media  *media.Manager
	tokens *auth.Service
}

// NewUsers creates a new Users handler group.
func NewUsers(users *store.UserStore, media *media.Manager, tokens *auth.Service) *Users {
	return &Users{users: users, media: media, tokens: tokens}
}

// Register creates a new account. The email is normalized to lowercase
// and must not belong to an existing user.
func (h *Users) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationError(w, "Request body must be valid JSON.")
		return
	}

	if msg := validateRegistration(req.Name, req.Email, req.Password); msg != "" {
		validationError(w, msg)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := h.users.FindByEmail(email)
	if err != nil {
		slog.Error("register lookup failed", "error", err)
		internalError(w)
		return
	}
	if existing != nil {
		validationError(w, "Email is already registered.")
		return
	}

	user, err := h.users.Create(strings.TrimSpace(req.Name), email, req.Password)
	if err != nil {
		// The unique index backstops the pre-check under concurrency.
		slog.Error("register create failed", "error", err)
		validationError(w, "Email is already registered.")
		return
	}

	writeMessage(w, http.StatusCreated, "New user "+user.Email+" registered.")
}

// Login verifies credentials and issues a 7-day session token.
func (h *Users) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationError(w, "Request body must be valid JSON.")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		validationError(w, "Email and password are required.")
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		internalError(w)
		return
	}
	if user == nil {
		notFound(w, "No user found for this email.")
		return
	}

	if !h.users.CheckPassword(user, req.Password) {
		unauthorized(w, "Invalid email or password.")
		return
	}

	token, err := h.tokens.IssueToken(user.ID, user.Name)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		internalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// Profile returns a single user without the password hash.
func (h *Users) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "User not found.")
		return
	}

	user, err := h.users.FindByID(id)
	if err != nil {
		slog.Error("profile lookup failed", "error", err)
		internalError(w)
		return
	}
	if user == nil {
		notFound(w, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Authors lists all users without password hashes.
func (h *Users) Authors(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		slog.Error("authors list failed", "error", err)
		internalError(w)
		return
	}
	if len(users) == 0 {
		notFound(w, "No authors found.")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// ChangeAvatar replaces the caller's avatar image. The previous file is
// removed best-effort after the new one is stored and referenced.
func (h *Users) ChangeAvatar(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxAvatarBytes+4096)
	if err := r.ParseMultipartForm(media.MaxAvatarBytes); err != nil {
		validationError(w, "Avatar must not exceed 500 KB.")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		validationError(w, "An avatar image file is required.")
		return
	}
	defer file.Close()

	current, err := h.users.FindByID(ident.ID)
	if err != nil {
		slog.Error("avatar lookup failed", "error", err)
		internalError(w)
		return
	}
	if current == nil {
		notFound(w, "User not found.")
		return
	}

	name, err := h.media.Save(file, header.Filename, media.MaxAvatarBytes)
	if err != nil {
		writeMediaError(w, err)
		return
	}

	updated, err := h.users.UpdateAvatar(ident.ID, name)
	if err != nil || updated == nil {
		// The file is orphaned if the update failed; remove it.
		if rmErr := h.media.Remove(name); rmErr != nil {
			slog.Warn("orphan avatar cleanup failed", "error", rmErr, "file", name)
		}
		if err != nil {
			slog.Error("avatar update failed", "error", err)
			internalError(w)
			return
		}
		validationError(w, "Couldn't update the avatar.")
		return
	}

	// Best-effort removal of the superseded file.
	if current.Avatar != nil {
		if err := h.media.Remove(*current.Avatar); err != nil {
			slog.Warn("old avatar delete failed", "error", err, "file", *current.Avatar)
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"avatar": updated.Avatar})
}

// EditProfile updates name, email, and password for the caller. The
// current password must verify, and the new password must be confirmed
// and differ from the current one.
func (h *Users) EditProfile(w http.ResponseWriter, r *http.Request) {
	ident := middleware.IdentityFromCtx(r.Context())

	var req struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		CurrentPassword    string `json:"currentPassword"`
		NewPassword        string `json:"newPassword"`
		ConfirmNewPassword string `json:"confirmNewPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationError(w, "Request body must be valid JSON.")
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" ||
		req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmNewPassword == "" {
		validationError(w, "All fields are required.")
		return
	}

	user, err := h.users.FindByID(ident.ID)
	if err != nil {
		slog.Error("edit profile lookup failed", "error", err)
		internalError(w)
		return
	}
	if user == nil {
		notFound(w, "User not found.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// The target email may only belong to the caller.
	if byEmail, err := h.users.FindByEmail(email); err != nil {
		slog.Error("edit profile email check failed", "error", err)
		internalError(w)
		return
	} else if byEmail != nil && byEmail.ID != user.ID {
		validationError(w, "Email is already registered.")
		return
	}

	if !h.users.CheckPassword(user, req.CurrentPassword) {
		unauthorized(w, "Current password is incorrect.")
		return
	}
	if req.NewPassword != req.ConfirmNewPassword {
		validationError(w, "New passwords do not match.")
		return
	}
	if req.NewPassword == req.CurrentPassword {
		validationError(w, "New password must differ from the current one.")
		return
	}
	if utf8.RuneCountInString(req.NewPassword) < minPasswordLen {
		validationError(w, "Password must be at least 6 characters.")
		return
	}

	updated, err := h.users.UpdateProfile(ident.ID, strings.TrimSpace(req.Name), email, req.NewPassword)
	if err != nil {
		slog.Error("edit profile update failed", "error", err)
		internalError(w)
		return
	}
	if updated == nil {
		notFound(w, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
