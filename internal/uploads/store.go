// Package uploads stores recipe images on local disk and serves them under
// a stable URL namespace. Saved files get collision-resistant names, only
// image mime-types are accepted, and removal is restricted to references
// the store itself produced so external URLs can never be deleted.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotImage is returned when an uploaded part is not an image mime-type.
var ErrNotImage = errors.New("only image files are allowed")

// BasePath is the URL namespace under which stored assets are addressable.
const BasePath = "/uploads"

// Store writes uploaded images into Dir and hands out references of the
// form "/uploads/<name>". The zero value is not usable; construct with New.
type Store struct {
	// Dir is the on-disk directory backing the store.
	Dir string
}

// New creates the upload directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// Save persists an uploaded multipart file and returns its reference
// ("/uploads/<name>"). Non-image content types are rejected with
// ErrNotImage before anything touches the disk.
//
// Names are "<unix-ms>-<random><ext>" so concurrent uploads of identically
// named files never collide and the original filename never reaches the
// filesystem.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", ErrNotImage
	}

	name := fmt.Sprintf("%d-%s%s",
		time.Now().UnixMilli(),
		strings.Split(uuid.NewString(), "-")[0],
		strings.ToLower(filepath.Ext(fh.Filename)),
	)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}

	return path.Join(BasePath, name), nil
}

// Managed reports whether ref points into this store's URL namespace.
// External image URLs are never managed.
func (s *Store) Managed(ref string) bool {
	return strings.HasPrefix(ref, BasePath+"/")
}

// Remove deletes the asset behind a managed reference. Unmanaged references
// and already-missing files are ignored (removal is best-effort and
// idempotent).
func (s *Store) Remove(ref string) error {
	if !s.Managed(ref) {
		return nil
	}
	// Base-name the reference so a crafted ref cannot escape Dir.
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(ref)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
