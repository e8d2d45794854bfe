package settings

import (
	"context"
	"errors"
	"time"

	"github.com/storefront-api/internal/domain"
)

type Service interface {
	// Get returns the site settings, or an empty default when none are stored yet.
	Get(ctx context.Context) (*domain.Setting, error)
	Update(ctx context.Context, req domain.UpdateSettingRequest) (*domain.Setting, error)
}

type settingStore interface {
	Put(ctx context.Context, s *domain.Setting) error
	Get(ctx context.Context) (*domain.Setting, error)
	Update(ctx context.Context, updates map[string]interface{}) error
}

type service struct {
	repo settingStore
}

func NewService(repo settingStore) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context) (*domain.Setting, error) {
	st, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Setting{SettingID: domain.SiteSettingID}, nil
		}
		return nil, err
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateSettingRequest) (*domain.Setting, error) {
	existing, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		now := time.Now().UTC()
		st := &domain.Setting{SettingID: domain.SiteSettingID, CreatedAt: now, UpdatedAt: now}
		applyPatch(st, req)
		if err := s.repo.Put(ctx, st); err != nil {
			return nil, err
		}
		return st, nil
	}

	updates := map[string]interface{}{}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.HeaderTitle != nil {
		updates["header_title"] = *req.HeaderTitle
	}
	if req.HeaderSubtitle != nil {
		updates["header_subtitle"] = *req.HeaderSubtitle
	}
	if req.ThemeColor != nil {
		updates["theme_color"] = *req.ThemeColor
	}
	if req.Announcement != nil {
		updates["announcement"] = *req.Announcement
	}
	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx)
}

func applyPatch(st *domain.Setting, req domain.UpdateSettingRequest) {
	if req.LogoURL != nil {
		st.LogoURL = *req.LogoURL
	}
	if req.HeaderTitle != nil {
		st.HeaderTitle = *req.HeaderTitle
	}
	if req.HeaderSubtitle != nil {
		st.HeaderSubtitle = *req.HeaderSubtitle
	}
	if req.ThemeColor != nil {
		st.ThemeColor = *req.ThemeColor
	}
	if req.Announcement != nil {
		st.Announcement = *req.Announcement
	}
}
