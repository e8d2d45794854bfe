package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/storefront-api/internal/application/otp"
	"github.com/storefront-api/internal/domain"
	"github.com/storefront-api/internal/infrastructure/smtp"
	"github.com/storefront-api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type ResendRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyResult carries either a minted credential or the verifier's reason.
type VerifyResult struct {
	Token  string
	User   *domain.User
	Reason otp.Reason // set when Token is empty
}

type Service interface {
	// Register upserts an unverified account and issues an OTP. Email delivery
	// is dispatched asynchronously; its failure never fails the registration.
	Register(ctx context.Context, req domain.RegisterRequest) error
	// VerifyOtp runs the verifier; on success flips the account to verified
	// and mints a session credential.
	VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*VerifyResult, error)
	// Resend issues a fresh code for a known, still-unverified account.
	Resend(ctx context.Context, req ResendRequest) error
	Login(ctx context.Context, req LoginRequest) (token string, u *domain.User, err error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type tokenSigner interface {
	Sign(userID, email, role string) (string, error)
}

type service struct {
	userRepo userStore
	otpSvc   otp.Service
	mailer   smtp.Mailer
	signer   tokenSigner
	otpTTL   time.Duration
}

type ServiceDeps struct {
	UserRepo userStore
	OtpSvc   otp.Service
	Mailer   smtp.Mailer
	Signer   tokenSigner
	OtpTTL   time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		userRepo: deps.UserRepo,
		otpSvc:   deps.OtpSvc,
		mailer:   deps.Mailer,
		signer:   deps.Signer,
		otpTTL:   deps.OtpTTL,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) error {
	email := domain.NormalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if existing != nil && existing.Verified {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleCustomer,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if existing != nil {
		// Repeated registration of an unverified identity overwrites the
		// account fields; the latest secret is the one that authenticates.
		u.UserID = existing.UserID
		u.CreatedAt = existing.CreatedAt
	}
	if err := s.userRepo.Put(ctx, u); err != nil {
		return err
	}

	code, err := s.otpSvc.Issue(ctx, email)
	if err != nil {
		return err
	}
	s.deliverCode(email, code)
	return nil
}

func (s *service) VerifyOtp(ctx context.Context, req VerifyOtpRequest) (*VerifyResult, error) {
	email := domain.NormalizeEmail(req.Email)

	res, err := s.otpSvc.Verify(ctx, email, req.Code)
	if err != nil {
		return nil, err
	}
	if !res.OK {
		return &VerifyResult{Reason: res.Reason}, nil
	}

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// A code verified but the account vanished; report it like a
			// missing code so callers cannot probe for account existence.
			return &VerifyResult{Reason: otp.ReasonNoOtp}, nil
		}
		return nil, err
	}
	if !u.Verified {
		if err := s.userRepo.Update(ctx, u.UserID, map[string]interface{}{"verified": true}); err != nil {
			return nil, err
		}
		u.Verified = true
	}

	token, err := s.signer.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{Token: token, User: u}, nil
}

func (s *service) Resend(ctx context.Context, req ResendRequest) error {
	email := domain.NormalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("account not found: %w", domain.ErrNotFound)
	}
	if u.Verified {
		return fmt.Errorf("email already verified: %w", domain.ErrConflict)
	}

	code, err := s.otpSvc.Issue(ctx, email)
	if err != nil {
		return err
	}
	s.deliverCode(email, code)
	return nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, *domain.User, error) {
	email := domain.NormalizeEmail(req.Email)

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.Verified {
		return "", nil, fmt.Errorf("email not verified: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	token, err := s.signer.Sign(u.UserID, u.Email, u.Role)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *service) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.Get(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		newEmail := domain.NormalizeEmail(*req.Email)
		if newEmail != u.Email {
			if _, err := s.userRepo.GetByEmail(ctx, newEmail); err == nil {
				return nil, fmt.Errorf("email already in use: %w", domain.ErrConflict)
			} else if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			updates["email"] = newEmail
		}
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.userRepo.Get(ctx, userID)
}

// deliverCode sends the plaintext code out-of-band. Fire-and-forget: the HTTP
// response never waits on SMTP, and failures are only logged.
func (s *service) deliverCode(email, code string) {
	subject, body := smtp.OtpEmail(code, int(s.otpTTL.Minutes()))
	go func() {
		if err := s.mailer.SendEmail(email, subject, body); err != nil {
			slog.Warn("otp email delivery failed", "email", email, "err", err)
		}
	}()
}
