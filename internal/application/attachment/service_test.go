package attachment

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/frontdoor-labs/frontdoor-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}
func (m *mockObjectStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if rc, _ := args.Get(0).(io.ReadCloser); rc != nil {
		return rc, args.Error(1)
	}
	return nil, args.Error(1)
}

func staticType(string) string { return "application/pdf" }

func TestUpload(t *testing.T) {
	store := &mockObjectStore{}
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, "/notes.pdf")
	}), mock.Anything, "application/pdf").Return(nil)

	att, err := NewService(store, staticType).Upload(context.Background(), "notes.pdf", 1024, strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", att.Name)
	assert.True(t, strings.HasSuffix(att.Key, "/notes.pdf"))
	store.AssertExpectations(t)
}

func TestUpload_StripsPathAndOddCharacters(t *testing.T) {
	store := &mockObjectStore{}
	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	att, err := NewService(store, staticType).Upload(context.Background(), "../../etc/pass wd?.pdf", 10, strings.NewReader("x"))

	require.NoError(t, err)
	assert.Equal(t, "pass_wd_.pdf", att.Name)
	assert.NotContains(t, att.Key, "..")
}

func TestUpload_EmptyName(t *testing.T) {
	store := &mockObjectStore{}
	_, err := NewService(store, staticType).Upload(context.Background(), "  ", 10, strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_TooLarge(t *testing.T) {
	store := &mockObjectStore{}
	_, err := NewService(store, staticType).Upload(context.Background(), "big.bin", MaxSize+1, strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDownload_EmptyKey(t *testing.T) {
	_, err := NewService(&mockObjectStore{}, staticType).Download(context.Background(), " ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestDownload_KeyNotFound(t *testing.T) {
	store := &mockObjectStore{}
	store.On("Download", mock.Anything, "abc/missing.pdf").Return(nil, domain.ErrNotFound)

	_, err := NewService(store, staticType).Download(context.Background(), "abc/missing.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
