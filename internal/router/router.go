// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Inkpress API. It organizes routes into public and bearer-protected
// groups with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkpress/internal/auth"
	"inkpress/internal/handlers"
	"inkpress/internal/media"
	"inkpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *auth.Service, users *handlers.Users, posts *handlers.Posts, uploads *media.Manager) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", users.Register)
		r.Post("/login", users.Login)
		r.Get("/authors", users.Authors)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Get("/{id}", users.Profile)
			r.Post("/change-avatar", users.ChangeAvatar)
			r.Patch("/edit-user", users.EditProfile)
		})
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Get("/categories/{category}", posts.ListByCategory)
		r.Get("/users/{id}", posts.ListByAuthor)
		r.Get("/{id}", posts.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Post("/create-post", posts.Create)
			r.Patch("/{id}", posts.Edit)
			r.Delete("/{id}", posts.Delete)
		})
	})

	// Uploaded media is served statically by filename, without access
	// control on reads.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir())))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
