package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront-api/internal/domain"
)

func TestEnsureAdmin_CreatesVerifiedAdmin(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, domain.ErrNotFound)
	var stored *domain.User
	us.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User)
	}).Return(nil)

	created, err := EnsureAdmin(context.Background(), us, "Admin@Example.com ", "first-password", "Admin")
	require.NoError(t, err)
	assert.True(t, created)

	require.NotNil(t, stored)
	assert.Equal(t, "admin@example.com", stored.Email)
	assert.Equal(t, domain.RoleAdmin, stored.Role)
	assert.True(t, stored.Verified)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("first-password")))
}

func TestEnsureAdmin_ExistingAccountUntouched(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@example.com").
		Return(&domain.User{UserID: "u1", Email: "admin@example.com", Role: domain.RoleAdmin}, nil)

	created, err := EnsureAdmin(context.Background(), us, "admin@example.com", "new-password", "Admin")
	require.NoError(t, err)
	assert.False(t, created)
	us.AssertNotCalled(t, "Put")
}

func TestEnsureAdmin_StorageErrorPropagates(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "admin@example.com").Return(nil, domain.ErrStorage)

	_, err := EnsureAdmin(context.Background(), us, "admin@example.com", "pw", "Admin")
	assert.ErrorIs(t, err, domain.ErrStorage)
	us.AssertNotCalled(t, "Put")
}
