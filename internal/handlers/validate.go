// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for user and post fields.
const (
	minPasswordLen    = 6
	minDescriptionLen = 12
	maxNameLen        = 100
	maxTitleLen       = 300
	maxDescriptionLen = 10_000
)

// validateRegistration checks registration inputs and returns the first
// error found, or "" when valid.
func validateRegistration(name, email, password string) string {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return "Name, email, and password are required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 100 characters)."
	}
	if !strings.Contains(email, "@") {
		return "Email address is not valid."
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 6 characters."
	}
	return ""
}

// validatePostFields checks the shared title/category/description inputs
// for post creation and editing.
func validatePostFields(title, category, description string) string {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(category) == "" {
		return "Title and category are required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(description) < minDescriptionLen {
		return "Description must be at least 12 characters."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)."
	}
	return ""
}
