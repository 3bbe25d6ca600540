// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API for users and posts.
// Every failure resolves to a structured error body {"message", "status"}:
// 422 for malformed input and duplicate emails, 401 for bad credentials
// and ownership violations, 404 for missing resources and empty result
// sets, 400 for updates that applied to no document.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkpress/internal/media"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes the uniform JSON error object.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"message": msg,
		"status":  status,
	})
}

// writeMessage writes a confirmation body with just a message.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"message": msg})
}

func validationError(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnprocessableEntity, msg)
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnauthorized, msg)
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, msg)
}

func internalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
}

// writeMediaError maps media.Manager failures onto the error taxonomy:
// rejected input is the client's fault (422), anything else is ours (500).
func writeMediaError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrTooLarge):
		validationError(w, "File exceeds the size limit.")
	case errors.Is(err, media.ErrNotImage):
		validationError(w, "File must be a JPEG, PNG, GIF, or WebP image.")
	default:
		slog.Error("media save failed", "error", err)
		internalError(w)
	}
}
