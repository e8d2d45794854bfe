package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront-api/internal/domain"
)

type mockSettingStore struct{ mock.Mock }

func (m *mockSettingStore) Put(ctx context.Context, s *domain.Setting) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSettingStore) Get(ctx context.Context) (*domain.Setting, error) {
	args := m.Called(ctx)
	if s, _ := args.Get(0).(*domain.Setting); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSettingStore) Update(ctx context.Context, updates map[string]interface{}) error {
	return m.Called(ctx, updates).Error(0)
}

func strPtr(s string) *string { return &s }

func TestGet_ReturnsDefaultWhenUnset(t *testing.T) {
	repo := new(mockSettingStore)
	repo.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	st, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SiteSettingID, st.SettingID)
	assert.Empty(t, st.HeaderTitle)
}

func TestUpdate_CreatesRecordOnFirstWrite(t *testing.T) {
	repo := new(mockSettingStore)
	repo.On("Get", mock.Anything).Return(nil, domain.ErrNotFound)
	var stored *domain.Setting
	repo.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.Setting)
	}).Return(nil)

	svc := NewService(repo)
	st, err := svc.Update(context.Background(), domain.UpdateSettingRequest{
		HeaderTitle: strPtr("My Store"),
		ThemeColor:  strPtr("#ff8800"),
	})
	require.NoError(t, err)

	assert.Equal(t, "My Store", st.HeaderTitle)
	assert.Equal(t, "#ff8800", st.ThemeColor)
	require.NotNil(t, stored)
	assert.Equal(t, domain.SiteSettingID, stored.SettingID)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	repo := new(mockSettingStore)
	existing := &domain.Setting{
		SettingID: domain.SiteSettingID, HeaderTitle: "Old", ThemeColor: "#000000",
	}
	repo.On("Get", mock.Anything).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u map[string]interface{}) bool {
		_, hasTheme := u["theme_color"]
		return u["header_title"] == "New" && !hasTheme && len(u) == 1
	})).Return(nil)

	svc := NewService(repo)
	_, err := svc.Update(context.Background(), domain.UpdateSettingRequest{
		HeaderTitle: strPtr("New"),
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdate_NoFieldsIsNoop(t *testing.T) {
	repo := new(mockSettingStore)
	existing := &domain.Setting{SettingID: domain.SiteSettingID, HeaderTitle: "Keep"}
	repo.On("Get", mock.Anything).Return(existing, nil)

	svc := NewService(repo)
	st, err := svc.Update(context.Background(), domain.UpdateSettingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Keep", st.HeaderTitle)
	repo.AssertNotCalled(t, "Update")
	repo.AssertNotCalled(t, "Put")
}
