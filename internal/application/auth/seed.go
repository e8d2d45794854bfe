package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/pkg/id"
)

// EnsureAdmin creates a verified admin account if none exists for email.
// Idempotent: an existing account is left untouched, whatever its role, so
// rerunning the seed never clobbers a changed password.
func EnsureAdmin(ctx context.Context, users userStore, email, password, name string) (created bool, err error) {
	email = domain.NormalizeEmail(email)

	if _, err := users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         domain.RoleAdmin,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Put(ctx, u); err != nil {
		return false, err
	}
	return true, nil
}
