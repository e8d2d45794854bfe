package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront-api/internal/application/auth"
	"github.com/storefront-api/internal/application/otp"
	"github.com/storefront-api/internal/domain"
	jwtinfra "github.com/storefront-api/internal/infrastructure/jwt"
	"github.com/storefront-api/internal/transport/http/middleware"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Register(ctx context.Context, req domain.RegisterRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) VerifyOtp(ctx context.Context, req auth.VerifyOtpRequest) (*auth.VerifyResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.VerifyResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) Resend(ctx context.Context, req auth.ResendRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthSvc) Login(ctx context.Context, req auth.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(1).(*domain.User); u != nil {
		return args.String(0), u, args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

func (m *mockAuthSvc) Me(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- helpers ---

func postJSON(t *testing.T, target string, v interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) MessageEnvelope {
	t.Helper()
	var env MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

// --- tests ---

func TestRegister_Created(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Register", mock.Anything, mock.MatchedBy(func(r domain.RegisterRequest) bool {
		return r.Email == "new@example.com"
	})).Return(nil)

	h := NewAuthHandler(svc)
	rr := httptest.NewRecorder()
	h.Register(rr, postJSON(t, "/v1/auth/register", domain.RegisterRequest{
		Email: "new@example.com", Password: "supersecret", Name: "New User",
	}))

	assert.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc)

	rr := httptest.NewRecorder()
	h.Register(rr, postJSON(t, "/v1/auth/register", domain.RegisterRequest{
		Email: "not-an-email", Password: "supersecret",
	}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, codeValidation, decodeEnvelope(t, rr).Code)
	svc.AssertNotCalled(t, "Register")
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc)

	rr := httptest.NewRecorder()
	h.Register(rr, postJSON(t, "/v1/auth/register", domain.RegisterRequest{
		Email: "new@example.com", Password: "short",
	}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Register")
}

func TestRegister_Conflict(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Register", mock.Anything, mock.Anything).
		Return(domain.ErrConflict)

	h := NewAuthHandler(svc)
	rr := httptest.NewRecorder()
	h.Register(rr, postJSON(t, "/v1/auth/register", domain.RegisterRequest{
		Email: "taken@example.com", Password: "supersecret",
	}))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, codeConflict, decodeEnvelope(t, rr).Code)
}

func TestVerifyOtp_Success(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("VerifyOtp", mock.Anything, auth.VerifyOtpRequest{Email: "u@example.com", Code: "123456"}).
		Return(&auth.VerifyResult{
			Token: "signed-token",
			User:  &domain.User{UserID: "u1", Email: "u@example.com"},
		}, nil)

	h := NewAuthHandler(svc)
	rr := httptest.NewRecorder()
	h.VerifyOtp(rr, postJSON(t, "/v1/auth/verify-otp", map[string]string{
		"email": "u@example.com", "code": "123456",
	}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, "signed-token", env.Token)
	require.NotNil(t, env.User)
	assert.Equal(t, "u1", env.User.UserID)
}

func TestVerifyOtp_ReasonCodes(t *testing.T) {
	for _, reason := range []otp.Reason{otp.ReasonNoOtp, otp.ReasonExpired, otp.ReasonInvalid} {
		t.Run(string(reason), func(t *testing.T) {
			svc := new(mockAuthSvc)
			svc.On("VerifyOtp", mock.Anything, mock.Anything).
				Return(&auth.VerifyResult{Reason: reason}, nil)

			h := NewAuthHandler(svc)
			rr := httptest.NewRecorder()
			h.VerifyOtp(rr, postJSON(t, "/v1/auth/verify-otp", map[string]string{
				"email": "u@example.com", "code": "123456",
			}))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, string(reason), decodeEnvelope(t, rr).Code)
		})
	}
}

func TestVerifyOtp_MalformedCode(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc)

	rr := httptest.NewRecorder()
	h.VerifyOtp(rr, postJSON(t, "/v1/auth/verify-otp", map[string]string{
		"email": "u@example.com", "code": "12ab56",
	}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, codeValidation, decodeEnvelope(t, rr).Code)
	svc.AssertNotCalled(t, "VerifyOtp")
}

func TestResend_NotFound(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Resend", mock.Anything, mock.Anything).Return(domain.ErrNotFound)

	h := NewAuthHandler(svc)
	rr := httptest.NewRecorder()
	h.Resend(rr, postJSON(t, "/v1/auth/resend-otp", map[string]string{"email": "ghost@example.com"}))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, codeNotFound, decodeEnvelope(t, rr).Code)
}

func TestLogin_Unauthorized(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Login", mock.Anything, mock.Anything).
		Return("", nil, domain.ErrUnauthorized)

	h := NewAuthHandler(svc)
	rr := httptest.NewRecorder()
	h.Login(rr, postJSON(t, "/v1/auth/login", map[string]string{
		"email": "u@example.com", "password": "wrong-password",
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, codeUnauthorized, decodeEnvelope(t, rr).Code)
}

func TestLogin_Success(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Login", mock.Anything, auth.LoginRequest{Email: "u@example.com", Password: "supersecret"}).
		Return("signed-token", &domain.User{UserID: "u1"}, nil)

	h := NewAuthHandler(svc)
	rr := httptest.NewRecorder()
	h.Login(rr, postJSON(t, "/v1/auth/login", map[string]string{
		"email": "u@example.com", "password": "supersecret",
	}))

	assert.Equal(t, http.StatusOK, rr.Code)
	var env AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	assert.Equal(t, "signed-token", env.Token)
}

func TestMe_UsesClaimsFromContext(t *testing.T) {
	svc := new(mockAuthSvc)
	svc.On("Me", mock.Anything, "u1").
		Return(&domain.User{UserID: "u1", Email: "u@example.com"}, nil)

	h := NewAuthHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
	ctx := context.WithValue(req.Context(), middleware.ClaimsKey, &jwtinfra.Claims{UserID: "u1", Role: domain.RoleCustomer})
	rr := httptest.NewRecorder()
	h.Me(rr, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestMe_NoClaims(t *testing.T) {
	svc := new(mockAuthSvc)
	h := NewAuthHandler(svc)

	rr := httptest.NewRecorder()
	h.Me(rr, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "Me")
}
