// Package attach turns image files into the opaque tokens stored on log entries.
package attach

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"daylog/pkg/todo"
)

// DefaultMaxBytes caps the size of an attached file.
const DefaultMaxBytes = 2 << 20

// ErrNotImage is returned for files whose content is not an image.
var ErrNotImage = errors.New("not an image")

// File reads an image from disk and encodes it as a data URI.
type File struct {
	Path     string
	MaxBytes int64
}

// FromFile returns an attachment for the image at path.
func FromFile(path string) File {
	return File{Path: path, MaxBytes: DefaultMaxBytes}
}

// Token implements todo.Attachment.
func (f File) Token(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return "", err
	}
	defer fh.Close()

	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(fh, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%s is larger than %d bytes", f.Path, limit)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	return Encode(data)
}

// Encode wraps raw image bytes in a base64 data URI.
func Encode(data []byte) (string, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Data wraps a ready-made token.
func Data(token string) todo.Attachment {
	return todo.AttachmentFunc(func(context.Context) (string, error) {
		return token, nil
	})
}
