package domain

import "time"

const (
	CategoryActive   = "active"
	CategoryInactive = "inactive"
)

type CategorySEO struct {
	MetaTitle       string   `json:"meta_title,omitempty" dynamodbav:"meta_title"`
	MetaDescription string   `json:"meta_description,omitempty" dynamodbav:"meta_description"`
	MetaKeywords    []string `json:"meta_keywords,omitempty" dynamodbav:"meta_keywords"`
	OGImage         string   `json:"og_image,omitempty" dynamodbav:"og_image"`
}

// Category is keyed by a short slug-like id chosen at creation time (e.g. "glass").
type Category struct {
	CategoryID  string      `json:"id" dynamodbav:"category_id"`
	Title       string      `json:"title" dynamodbav:"title"`
	Description string      `json:"description" dynamodbav:"description"`
	Image       string      `json:"image" dynamodbav:"image"`
	SortOrder   int         `json:"sort_order" dynamodbav:"sort_order"`
	Status      string      `json:"status" dynamodbav:"status"`
	SEO         CategorySEO `json:"seo" dynamodbav:"seo"`
	CreatedAt   time.Time   `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time   `json:"updated" dynamodbav:"updated_at"`
}

type CreateCategoryRequest struct {
	CategoryID  string      `json:"id" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	SortOrder   int         `json:"sort_order"`
	Status      string      `json:"status" validate:"omitempty,oneof=active inactive"`
	SEO         CategorySEO `json:"seo"`
}

type UpdateCategoryRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Image       *string      `json:"image"`
	SortOrder   *int         `json:"sort_order"`
	Status      *string      `json:"status" validate:"omitempty,oneof=active inactive"`
	SEO         *CategorySEO `json:"seo"`
}
