package otp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOtpStore is an in-memory store with the same ordering and
// compare-and-set semantics as the DynamoDB repo.
type fakeOtpStore struct {
	mu      sync.Mutex
	records []*domain.OtpRecord
	putErr  error
}

func (f *fakeOtpStore) Put(_ context.Context, rec *domain.OtpRecord) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *rec
	f.records = append(f.records, &cp)
	return nil
}

func (f *fakeOtpStore) LatestUnused(_ context.Context, email string) (*domain.OtpRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var newest *domain.OtpRecord
	for _, r := range f.records {
		if r.Email != email || r.Used {
			continue
		}
		if newest == nil || r.OtpID > newest.OtpID {
			newest = r
		}
	}
	if newest == nil {
		return nil, fmt.Errorf("no otp record: %w", domain.ErrNotFound)
	}
	cp := *newest
	return &cp, nil
}

func (f *fakeOtpStore) MarkUsed(_ context.Context, email, otpID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.Email == email && r.OtpID == otpID {
			if r.Used {
				return fmt.Errorf("otp record already used: %w", domain.ErrConflict)
			}
			r.Used = true
			return nil
		}
	}
	return fmt.Errorf("no otp record: %w", domain.ErrNotFound)
}

func newTestService(store *fakeOtpStore, now func() time.Time) Service {
	return NewService(ServiceDeps{OtpRepo: store, TTL: 5 * time.Minute, Now: now})
}

func TestIssue_ReturnsSixDigitCode(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newTestService(store, nil)

	code, err := svc.Issue(context.Background(), "A@B.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.GreaterOrEqual(t, code, "100000")
	assert.LessOrEqual(t, code, "999999")

	require.Len(t, store.records, 1)
	rec := store.records[0]
	assert.Equal(t, "a@b.com", rec.Email, "email must be normalized")
	assert.NotContains(t, rec.CodeHash, code, "plaintext must never be stored")
	assert.False(t, rec.Used)
}

func TestIssue_StorageFailurePropagates(t *testing.T) {
	store := &fakeOtpStore{putErr: fmt.Errorf("put otp record: %w", domain.ErrStorage)}
	svc := newTestService(store, nil)

	_, err := svc.Issue(context.Background(), "a@b.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrStorage))
}

func TestVerify_IssuedCodeSucceedsExactlyOnce(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newTestService(store, nil)

	code, err := svc.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	res, err := svc.Verify(context.Background(), "a@b.com", code)
	require.NoError(t, err)
	assert.True(t, res.OK)

	// Replay: the used record no longer satisfies selection and no newer
	// record exists, so the terminal reason is no_otp.
	res, err = svc.Verify(context.Background(), "a@b.com", code)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, ReasonNoOtp, res.Reason)
}

func TestVerify_NoRecord(t *testing.T) {
	svc := newTestService(&fakeOtpStore{}, nil)

	res, err := svc.Verify(context.Background(), "a@b.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, ReasonNoOtp, res.Reason)
}

func TestVerify_WrongCode(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newTestService(store, nil)

	code, err := svc.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	res, err := svc.Verify(context.Background(), "a@b.com", wrong)
	require.NoError(t, err)
	assert.Equal(t, ReasonInvalid, res.Reason)

	// The record is untouched; the right code still works.
	res, err = svc.Verify(context.Background(), "a@b.com", code)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestVerify_Expired(t *testing.T) {
	store := &fakeOtpStore{}
	current := time.Now()
	svc := newTestService(store, func() time.Time { return current })

	code, err := svc.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	current = current.Add(6 * time.Minute)

	// Expired wins over invalid, even with the correct code, and stays
	// deterministic on repeat attempts.
	for i := 0; i < 2; i++ {
		res, err := svc.Verify(context.Background(), "a@b.com", code)
		require.NoError(t, err)
		assert.Equal(t, ReasonExpired, res.Reason)
	}
}

func TestVerify_NewerCodeSupersedesOlder(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newTestService(store, nil)

	first, err := svc.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	if first != second {
		// The unexpired first code no longer verifies: selection picks the
		// newest record, against which it fails the hash compare.
		res, err := svc.Verify(context.Background(), "a@b.com", first)
		require.NoError(t, err)
		assert.Equal(t, ReasonInvalid, res.Reason)
	}

	res, err := svc.Verify(context.Background(), "a@b.com", second)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestVerify_ConcurrentCallsOnlyOneSucceeds(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newTestService(store, nil)

	code, err := svc.Issue(context.Background(), "a@b.com")
	require.NoError(t, err)

	const n = 8
	results := make([]Result, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Verify(context.Background(), "a@b.com", code)
			require.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, res := range results {
		if res.OK {
			succeeded++
		} else {
			assert.Contains(t, []Reason{ReasonInvalid, ReasonNoOtp}, res.Reason)
		}
	}
	assert.Equal(t, 1, succeeded)
}
