// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkpress/internal/auth"
	"inkpress/internal/database"
	"inkpress/internal/media"
	"inkpress/internal/middleware"
	"inkpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	db     *sql.DB
	users  *store.UserStore
	posts  *store.PostStore
	media  *media.Manager
	tokens *auth.Service
	router chi.Router
}

// newTestEnv builds the full handler stack against the test database,
// with media storage in a per-test temp directory. The route tree
// mirrors internal/router.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	uploads, err := media.New(t.TempDir())
	if err != nil {
		t.Fatalf("media.New: %v", err)
	}

	userStore := store.NewUserStore(db)
	postStore := store.NewPostStore(db)
	tokens := auth.New("handler-test-secret")

	userHandlers := NewUsers(userStore, uploads, tokens)
	postHandlers := NewPosts(postStore, userStore, uploads)

	r := chi.NewRouter()
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", userHandlers.Register)
		r.Post("/login", userHandlers.Login)
		r.Get("/authors", userHandlers.Authors)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Get("/{id}", userHandlers.Profile)
			r.Post("/change-avatar", userHandlers.ChangeAvatar)
			r.Patch("/edit-user", userHandlers.EditProfile)
		})
	})
	r.Route("/api/posts", func(r chi.Router) {
		r.Get("/", postHandlers.List)
		r.Get("/categories/{category}", postHandlers.ListByCategory)
		r.Get("/users/{id}", postHandlers.ListByAuthor)
		r.Get("/{id}", postHandlers.Get)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Post("/create-post", postHandlers.Create)
			r.Patch("/{id}", postHandlers.Edit)
			r.Delete("/{id}", postHandlers.Delete)
		})
	})

	return &testEnv{
		db:     db,
		users:  userStore,
		posts:  postStore,
		media:  uploads,
		tokens: tokens,
		router: r,
	}
}

// cleanUser removes a test user and their posts. Call in t.Cleanup().
func (env *testEnv) cleanUser(t *testing.T, email string) {
	t.Helper()
	env.db.Exec("DELETE FROM posts WHERE creator IN (SELECT id FROM users WHERE email = $1)", email)
	env.db.Exec("DELETE FROM users WHERE email = $1", email)
}

// doJSON performs a JSON request against the test router.
func (env *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// doMultipart performs a multipart form request with optional file upload.
func (env *testEnv) doMultipart(t *testing.T, method, path, token string, fields map[string]string, fileField, fileName string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if fileField != "" {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(fileData)
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

// registerAndLogin creates an account through the API and returns the
// session token and user id.
func (env *testEnv) registerAndLogin(t *testing.T, name, email, password string) (string, uuid.UUID) {
	t.Helper()
	t.Cleanup(func() { env.cleanUser(t, email) })

	rr := env.doJSON(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rr.Code, rr.Body.String())
	}

	rr = env.doJSON(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": email, "password": password,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login: status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Token string    `json:"token"`
		ID    uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Token, resp.ID
}

// testPNG encodes a small solid PNG for upload tests.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

// decodeBody unmarshals a JSON response body into dst.
func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
}
