package file

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront-api/internal/domain"
)

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockUploadStore struct{ mock.Mock }

func (m *mockUploadStore) Put(ctx context.Context, u *domain.Upload) error {
	return m.Called(ctx, u).Error(0)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	objects := new(mockObjectStore)
	repo := new(mockUploadStore)
	svc := NewService(objects, repo)

	_, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("%PDF-1.4"),
		Filename:    "invoice.pdf",
		ContentType: "application/pdf",
	})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	objects.AssertNotCalled(t, "Upload")
}

func TestUpload_StoresImageAndRecord(t *testing.T) {
	objects := new(mockObjectStore)
	var key string
	objects.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/png").
		Run(func(args mock.Arguments) { key = args.String(1) }).
		Return("https://cdn.example.com/uploads/x.png", nil)

	repo := new(mockUploadStore)
	var stored *domain.Upload
	repo.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Upload)
	}).Return(nil)

	svc := NewService(objects, repo)
	u, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("pngdata"),
		Filename:    "Photo.PNG",
		ContentType: "image/png",
		Size:        7,
		UploaderID:  "admin1",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "https://cdn.example.com/uploads/x.png", u.URL)
	assert.Equal(t, "admin1", u.UploadedBy)
	require.NotNil(t, stored)
	assert.Equal(t, key, stored.Object)
}

func TestUpload_RecordFailureDeletesObject(t *testing.T) {
	objects := new(mockObjectStore)
	var key string
	objects.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/png").
		Run(func(args mock.Arguments) { key = args.String(1) }).
		Return("https://cdn.example.com/uploads/x.png", nil)
	objects.On("Delete", mock.Anything, mock.MatchedBy(func(k string) bool { return k == key })).
		Return(nil)

	repo := new(mockUploadStore)
	repo.On("Put", mock.Anything, mock.Anything).Return(domain.ErrStorage)

	svc := NewService(objects, repo)
	_, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("pngdata"),
		Filename:    "a.png",
		ContentType: "image/png",
	})
	assert.ErrorIs(t, err, domain.ErrStorage)
	objects.AssertExpectations(t)
}

func TestUpload_StorageFailure(t *testing.T) {
	objects := new(mockObjectStore)
	objects.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
		Return("", io.ErrUnexpectedEOF)
	repo := new(mockUploadStore)

	svc := NewService(objects, repo)
	_, err := svc.Upload(context.Background(), UploadInput{
		Reader:      strings.NewReader("jpg"),
		Filename:    "a.jpg",
		ContentType: "image/jpeg",
	})
	assert.ErrorIs(t, err, domain.ErrStorage)
	repo.AssertNotCalled(t, "Put")
}
