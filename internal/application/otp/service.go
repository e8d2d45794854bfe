package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// Reason classifies a failed verification. Distinct from Go errors: storage
// failures propagate as errors, flow outcomes as reasons.
type Reason string

const (
	ReasonNoOtp   Reason = "no_otp"
	ReasonExpired Reason = "expired"
	ReasonInvalid Reason = "invalid"
)

// Result is the outcome of a Verify call.
type Result struct {
	OK     bool
	Reason Reason
}

type Service interface {
	// Issue generates a 6-digit code, persists its hash with an expiry, and
	// returns the plaintext for out-of-band delivery.
	Issue(ctx context.Context, email string) (string, error)
	// Verify checks a presented code against the most recent unused record
	// for the email. The error return is non-nil only on storage failure.
	Verify(ctx context.Context, email, code string) (Result, error)
}

type otpStore interface {
	Put(ctx context.Context, rec *domain.OtpRecord) error
	LatestUnused(ctx context.Context, email string) (*domain.OtpRecord, error)
	MarkUsed(ctx context.Context, email, otpID string) error
}

type service struct {
	repo otpStore
	ttl  time.Duration
	now  func() time.Time
}

type ServiceDeps struct {
	OtpRepo otpStore
	TTL     time.Duration
	Now     func() time.Time // defaults to time.Now; injectable for tests
}

func NewService(deps ServiceDeps) Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: deps.OtpRepo, ttl: deps.TTL, now: now}
}

func (s *service) Issue(ctx context.Context, email string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	rec := &domain.OtpRecord{
		Email:     domain.NormalizeEmail(email),
		OtpID:     id.New(),
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(s.ttl).Unix(),
		Used:      false,
	}
	if err := s.repo.Put(ctx, rec); err != nil {
		return "", err
	}
	return code, nil
}

func (s *service) Verify(ctx context.Context, email, code string) (Result, error) {
	rec, err := s.repo.LatestUnused(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Result{Reason: ReasonNoOtp}, nil
		}
		return Result{}, err
	}
	// An expired record stays unused; repeated attempts against it keep
	// reporting expired until a newer code out-ranks it.
	if s.now().Unix() > rec.ExpiresAt {
		return Result{Reason: ReasonExpired}, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(code)) != nil {
		return Result{Reason: ReasonInvalid}, nil
	}
	// Conditional write: of two racing verifiers that both matched, only one
	// flips used; the loser is told the code is no longer valid.
	if err := s.repo.MarkUsed(ctx, rec.Email, rec.OtpID); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return Result{Reason: ReasonInvalid}, nil
		}
		return Result{}, err
	}
	return Result{OK: true}, nil
}

// generateCode draws uniformly from [100000, 999999], so the code always has
// exactly six digits.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
