package domain

import "time"

// SiteSettingID is the fixed key of the single site-wide settings record.
const SiteSettingID = "site"

type Setting struct {
	SettingID      string    `json:"-" dynamodbav:"setting_id"`
	LogoURL        string    `json:"logo_url" dynamodbav:"logo_url"`
	HeaderTitle    string    `json:"header_title" dynamodbav:"header_title"`
	HeaderSubtitle string    `json:"header_subtitle" dynamodbav:"header_subtitle"`
	ThemeColor     string    `json:"theme_color" dynamodbav:"theme_color"`
	Announcement   string    `json:"announcement" dynamodbav:"announcement"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// UpdateSettingRequest enumerates exactly which settings fields callers may
// change. Absent fields are left untouched; there is no free-form merging.
type UpdateSettingRequest struct {
	LogoURL        *string `json:"logo_url"`
	HeaderTitle    *string `json:"header_title"`
	HeaderSubtitle *string `json:"header_subtitle"`
	ThemeColor     *string `json:"theme_color" validate:"omitempty,hexcolor"`
	Announcement   *string `json:"announcement"`
}
