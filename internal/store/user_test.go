// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-create@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create("Test User", email, "testpass123")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if user.Email != email {
		t.Errorf("email: got %q, want %q", user.Email, email)
	}
	if user.Posts != 0 {
		t.Errorf("posts counter: got %d, want 0", user.Posts)
	}
	if user.Avatar != nil {
		t.Errorf("avatar: got %v, want nil", *user.Avatar)
	}
	if user.PasswordHash == "" {
		t.Error("expected non-empty password hash")
	}
	if user.PasswordHash == "testpass123" {
		t.Error("password hash must not be plaintext")
	}
}

func TestUserStoreEmailNormalized(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-mixedcase@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create("Mixed Case", "Test-MixedCase@Store-Test.LOCAL", "pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Email != email {
		t.Errorf("email not lowercased: got %q", user.Email)
	}

	// Lookups with any casing find the same user.
	found, err := s.FindByEmail("TEST-MIXEDCASE@store-test.local")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Error("expected case-insensitive email lookup to find the user")
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-dupe@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	if _, err := s.Create("First", email, "pass"); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Case-varied duplicate hits the unique index on LOWER(email).
	if _, err := s.Create("Second", "Test-Dupe@Store-Test.local", "pass"); err == nil {
		t.Error("expected error for duplicate email, got nil")
	}
}

func TestUserStoreFindByID(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	// Not found.
	user, err := s.FindByID(uuid.New())
	if err != nil {
		t.Fatalf("FindByID (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for random UUID")
	}

	created := createTestUser(t, db, "test-findbyid@store-test.local")
	user, err = s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Email != created.Email {
		t.Errorf("email: got %q, want %q", user.Email, created.Email)
	}
}

func TestUserStoreUpdateProfile(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	created := createTestUser(t, db, "test-editprofile@store-test.local")
	newEmail := "test-editprofile-new@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, newEmail) })

	updated, err := s.UpdateProfile(created.ID, "New Name", "Test-EditProfile-NEW@Store-Test.local", "newpass456")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated == nil {
		t.Fatal("expected updated user, got nil")
	}
	if updated.Name != "New Name" {
		t.Errorf("name: got %q", updated.Name)
	}
	if updated.Email != newEmail {
		t.Errorf("email: got %q, want %q", updated.Email, newEmail)
	}
	if !s.CheckPassword(updated, "newpass456") {
		t.Error("expected new password to verify after update")
	}
	if s.CheckPassword(updated, "testpass123") {
		t.Error("expected old password to stop verifying")
	}

	// Missing user yields nil, not an error.
	ghost, err := s.UpdateProfile(uuid.New(), "Ghost", "ghost@store-test.local", "pass")
	if err != nil {
		t.Fatalf("UpdateProfile (missing): %v", err)
	}
	if ghost != nil {
		t.Error("expected nil for missing user")
	}
}

func TestUserStoreUpdateAvatar(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	created := createTestUser(t, db, "test-avatar@store-test.local")

	updated, err := s.UpdateAvatar(created.ID, "abc123.png")
	if err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}
	if updated == nil || updated.Avatar == nil || *updated.Avatar != "abc123.png" {
		t.Errorf("expected avatar abc123.png, got %+v", updated)
	}
}

func TestUserStoreAdjustPostCount(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	created := createTestUser(t, db, "test-counter@store-test.local")

	if err := s.AdjustPostCount(created.ID, 1); err != nil {
		t.Fatalf("AdjustPostCount(+1): %v", err)
	}
	if err := s.AdjustPostCount(created.ID, 1); err != nil {
		t.Fatalf("AdjustPostCount(+1): %v", err)
	}

	user, _ := s.FindByID(created.ID)
	if user.Posts != 2 {
		t.Errorf("posts: got %d, want 2", user.Posts)
	}

	if err := s.AdjustPostCount(created.ID, -1); err != nil {
		t.Fatalf("AdjustPostCount(-1): %v", err)
	}
	user, _ = s.FindByID(created.ID)
	if user.Posts != 1 {
		t.Errorf("posts: got %d, want 1", user.Posts)
	}

	// Counter never drops below zero.
	s.AdjustPostCount(created.ID, -5)
	user, _ = s.FindByID(created.ID)
	if user.Posts != 0 {
		t.Errorf("posts: got %d, want 0 floor", user.Posts)
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user := createTestUser(t, db, "test-checkpass@store-test.local")

	if !s.CheckPassword(user, "testpass123") {
		t.Error("expected CheckPassword to return true for correct password")
	}
	if s.CheckPassword(user, "wrong-password") {
		t.Error("expected CheckPassword to return false for wrong password")
	}
}
