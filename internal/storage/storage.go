// Package storage persists uploaded attachments outside the relational store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("stored object not found")

// Store is implemented by the disk and MinIO backends.
type Store interface {
	// Put writes the object and returns the path under which it can be opened later.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

var safeExt = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// ObjectName derives a collision-free object name ending in ext. Extensions
// outside [a-z0-9]{1,8} are dropped.
func ObjectName(ext string) string {
	ext = strings.ToLower(ext)
	if !safeExt.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}
