package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
)

// LocalStore keeps objects under a directory and serves them below publicURL
type LocalStore struct {
	dir       string
	publicURL string
}

var _ ObjectStore = (*LocalStore)(nil)

func NewLocalStore(dir, publicURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("[storage NewLocalStore] mkdir %s: %w", dir, err)
	}
	return &LocalStore{
		dir:       dir,
		publicURL: strings.TrimSuffix(publicURL, "/"),
	}, nil
}

func (s *LocalStore) Upload(_ context.Context, key, _ string, body io.Reader) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	dst := s.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("%w: mkdir: %v", liberrors.ErrStorage, err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", liberrors.ErrStorage, key, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("%w: write %s: %v", liberrors.ErrStorage, key, err)
	}
	return f.Close()
}

func (s *LocalStore) URL(_ context.Context, key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return s.publicURL + "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("object %s: %w", key, liberrors.ErrNotFound)
		}
		return fmt.Errorf("%w: delete %s: %v", liberrors.ErrStorage, key, err)
	}
	return nil
}

// Handler serves stored objects; mount it with the publicURL prefix stripped.
// Responses are never sniffed and any document is sandboxed away from the site origin.
func (s *LocalStore) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; sandbox")
		files.ServeHTTP(w, r)
	})
}

// PublicURL is the prefix objects are served under
func (s *LocalStore) PublicURL() string {
	return s.publicURL
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}
