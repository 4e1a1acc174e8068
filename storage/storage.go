// Package storage keeps uploaded images and documents in an object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/google/uuid"
	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
)

// ObjectStore is the upload / get-URL / delete contract the site needs
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

var (
	keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)
	extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// ValidateKey rejects keys that could escape the store's namespace
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || strings.Contains(key, "..") || strings.Contains(key, "//") || len(key) > 512 {
		return fmt.Errorf("%w: object key %q", liberrors.ErrInvalidInput, key)
	}
	return nil
}

// NewObjectKey builds "prefix/<uuid><ext>". An ext that is not a short
// lowercase ".xyz" suffix is dropped.
func NewObjectKey(prefix, ext string) string {
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	key := uuid.New().String() + ext
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
