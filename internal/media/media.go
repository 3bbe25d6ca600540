// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media manages uploaded avatar and thumbnail files on disk.
// Files are named by a generated uuid plus the original extension and
// served statically by filename; deletion of superseded files is
// best-effort and must never fail a request.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// MaxAvatarBytes is the upload limit for user avatars.
	MaxAvatarBytes = 500_000

	// MaxThumbnailBytes is the upload limit for post thumbnails.
	MaxThumbnailBytes = 2_000_000

	// maxImagePixels caps decoded dimensions to prevent memory bombs.
	maxImagePixels = 100_000_000
)

var (
	// ErrTooLarge indicates the upload exceeded the caller's size limit.
	ErrTooLarge = errors.New("file exceeds the size limit")

	// ErrNotImage indicates the upload is not a decodable image.
	ErrNotImage = errors.New("file is not a supported image")
)

// allowedTypes defines MIME types accepted for upload.
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Manager stores and deletes media files in a single directory.
type Manager struct {
	dir string
}

// New creates the storage directory if needed and returns a Manager.
func New(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Dir returns the storage directory, for the static file server.
func (m *Manager) Dir() string {
	return m.dir
}

// Path returns the on-disk path for a stored filename.
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name)
}

// Save validates an uploaded image and writes it to the storage
// directory under a generated unique filename, which it returns.
// The upload is rejected if it is empty, larger than maxBytes, or not
// a decodable JPEG/PNG/GIF/WebP under the pixel cap.
func (m *Manager) Save(r io.Reader, origName string, maxBytes int64) (string, error) {
	// Read one byte past the limit so oversized input is detectable
	// without buffering an unbounded body.
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNotImage
	}
	if int64(len(data)) > maxBytes {
		return "", ErrTooLarge
	}

	// Sniff the content type from the leading bytes.
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	contentType := http.DetectContentType(data[:sniffLen])
	if !allowedTypes[contentType] {
		return "", ErrNotImage
	}

	// Require a decodable image and cap the pixel count.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrNotImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return "", ErrNotImage
	}

	ext := strings.ToLower(filepath.Ext(origName))
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	name := uuid.New().String() + ext

	if err := os.WriteFile(m.Path(name), data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file by name. A missing file is not an error.
// Names containing path separators are rejected so a stored filename can
// never escape the media directory.
func (m *Manager) Remove(name string) error {
	if name == "" {
		return nil
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid media filename %q", name)
	}
	if err := os.Remove(m.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove media file: %w", err)
	}
	return nil
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
