// Package media stores uploaded product images under the media directory and
// guards the paths served back out of it.
package media

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ErrBadUpload is returned for uploads with a disallowed extension.
var ErrBadUpload = errors.New("unsupported image type")

type Store struct {
	Dir string
}

func NewStore(dir string) Store {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return Store{Dir: dir}
}

// SaveUpload writes the uploaded file under a fresh uuid name and returns
// the public URL path for the stored image.
func (s Store) SaveUpload(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", ErrBadUpload
	}
	name := uuid.NewString() + ext

	if err := os.MkdirAll(filepath.Join(s.Dir, "uploads"), 0o755); err != nil {
		return "", errors.Wrap(err, "create upload dir")
	}
	src, err := fh.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, "uploads", name))
	if err != nil {
		return "", errors.Wrap(err, "create file")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", errors.Wrap(err, "write file")
	}
	return "/media/uploads/" + name, nil
}

// Resolve maps a requested /media/* subpath to a file under Dir, rejecting
// traversal attempts (raw or encoded dots, absolute paths, null bytes).
func (s Store) Resolve(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "..") || strings.Contains(lower, "%2e") || strings.Contains(lower, "\x00") {
		return "", false
	}
	clean := filepath.Clean(raw)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
		return "", false
	}
	return filepath.Join(s.Dir, clean), true
}
