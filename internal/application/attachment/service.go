// Package attachment stores pinger uploads in S3 before submission. The
// returned key goes into the submit payload and onto the request record.
package attachment

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
	"github.com/frontdoor-labs/frontdoor-api/internal/pkg/id"
)

// 10 MiB per attachment.
const MaxSize = 10 << 20

type Service interface {
	Upload(ctx context.Context, filename string, size int64, r io.Reader) (*domain.Attachment, error)
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

type contentTyper func(filename string) string

type service struct {
	store       objectStore
	contentType contentTyper
}

func NewService(store objectStore, contentType contentTyper) Service {
	return &service{store: store, contentType: contentType}
}

func (s *service) Upload(ctx context.Context, filename string, size int64, r io.Reader) (*domain.Attachment, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return nil, fmt.Errorf("file name is required: %w", domain.ErrBadRequest)
	}
	if size > MaxSize {
		return nil, fmt.Errorf("attachment exceeds %d bytes: %w", int64(MaxSize), domain.ErrBadRequest)
	}
	key := id.New() + "/" + name
	if err := s.store.Upload(ctx, key, io.LimitReader(r, MaxSize), s.contentType(name)); err != nil {
		return nil, err
	}
	return &domain.Attachment{Name: name, Key: key}, nil
}

func (s *service) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("attachment key is required: %w", domain.ErrBadRequest)
	}
	return s.store.Download(ctx, key)
}

// sanitizeFilename strips path components and characters that make object
// keys awkward.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
