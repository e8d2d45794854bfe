package file

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/pkg/id"
)

type UploadInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	UploaderID  string
}

type Service interface {
	// Upload stores an image and returns the record carrying its public URL.
	Upload(ctx context.Context, input UploadInput) (*domain.Upload, error)
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type uploadStore interface {
	Put(ctx context.Context, u *domain.Upload) error
}

type service struct {
	objects objectStore
	repo    uploadStore
}

func NewService(objects objectStore, repo uploadStore) Service {
	return &service{objects: objects, repo: repo}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.Upload, error) {
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, fmt.Errorf("only image uploads are accepted: %w", domain.ErrBadRequest)
	}
	// Key on a fresh ULID so uploads never collide or overwrite each other;
	// the original extension is kept for content-type inference downstream.
	key := "uploads/" + id.New() + strings.ToLower(path.Ext(input.Filename))
	url, err := s.objects.Upload(ctx, key, input.Reader, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", domain.ErrStorage)
	}
	u := &domain.Upload{
		FileID:     id.New(),
		Object:     key,
		URL:        url,
		Size:       input.Size,
		Type:       input.ContentType,
		UploadedBy: input.UploaderID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, u); err != nil {
		// Without a record nothing references the object; remove it rather
		// than leak it into the bucket.
		if derr := s.objects.Delete(ctx, key); derr != nil {
			slog.Warn("orphaned upload cleanup failed", "key", key, "err", derr)
		}
		return nil, err
	}
	return u, nil
}
