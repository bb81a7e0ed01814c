package document

import (
	"context"
	"errors"
	"os"
	"strconv"

	domerrors "github.com/garyellow/syllabus-assistant-go/internal/errors"
	"github.com/garyellow/syllabus-assistant-go/internal/r2client"
)

// Source provides the raw syllabus markdown.
//
// Version is a cheap change token; Load returns the content with the
// version it was read at. Both return an error wrapping
// domerrors.ErrNotFound when the document does not exist.
type Source interface {
	Version(ctx context.Context) (string, error)
	Load(ctx context.Context) ([]byte, string, error)
	// Name labels the source in logs and metrics.
	Name() string
}

// FileSource reads the document from the local filesystem.
// The version is the file's modification time and size.
type FileSource struct {
	path string
}

// NewFileSource creates a file source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Version implements Source.
func (s *FileSource) Version(_ context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", s.wrap(err)
	}
	return strconv.FormatInt(info.ModTime().UnixNano(), 10) + "-" + strconv.FormatInt(info.Size(), 10), nil
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) ([]byte, string, error) {
	version, err := s.Version(ctx)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, "", s.wrap(err)
	}
	return data, version, nil
}

var sourceErrors = domerrors.NewWrapper("document", "read")

func (s *FileSource) wrap(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		err = domerrors.ErrNotFound
	}
	return sourceErrors.Wrapf(err, "syllabus %s unavailable", s.path)
}

// ObjectReader is the R2 surface a document source needs.
// Implemented by *r2client.Client.
type ObjectReader interface {
	HeadObject(ctx context.Context, key string) (string, error)
	Download(ctx context.Context, key string) ([]byte, string, error)
}

// R2Source reads the document from an R2 object. Keys ending in ".zst"
// are stored zstd-compressed. The version is the object's ETag.
type R2Source struct {
	client ObjectReader
	key    string
}

// NewR2Source creates an R2 source.
func NewR2Source(client ObjectReader, key string) *R2Source {
	return &R2Source{client: client, key: key}
}

// Name implements Source.
func (s *R2Source) Name() string { return "r2" }

// Version implements Source.
func (s *R2Source) Version(ctx context.Context) (string, error) {
	etag, err := s.client.HeadObject(ctx, s.key)
	if err != nil {
		return "", s.wrap(err)
	}
	return etag, nil
}

// Load implements Source.
func (s *R2Source) Load(ctx context.Context) ([]byte, string, error) {
	data, etag, err := s.client.Download(ctx, s.key)
	if err != nil {
		return nil, "", s.wrap(err)
	}
	return data, etag, nil
}

func (s *R2Source) wrap(err error) error {
	if errors.Is(err, r2client.ErrNotFound) {
		err = domerrors.ErrNotFound
	}
	return sourceErrors.Wrapf(err, "syllabus r2://%s unavailable", s.key)
}
