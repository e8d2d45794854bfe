package domain

import "time"

type ProductSEO struct {
	MetaTitle       string `json:"meta_title,omitempty" dynamodbav:"meta_title"`
	MetaDescription string `json:"meta_description,omitempty" dynamodbav:"meta_description"`
}

type Product struct {
	ProductID   string     `json:"id" dynamodbav:"product_id"`
	Title       string     `json:"title" dynamodbav:"title"`
	Slug        string     `json:"slug" dynamodbav:"slug"`
	Description string     `json:"description" dynamodbav:"description"`
	Price       int64      `json:"price" dynamodbav:"price"` // minor units (e.g. cents)
	Currency    string     `json:"currency" dynamodbav:"currency"`
	Category    string     `json:"category" dynamodbav:"category"`
	Images      []string   `json:"images" dynamodbav:"images"`
	Tags        []string   `json:"tags" dynamodbav:"tags"`
	SEO         ProductSEO `json:"seo" dynamodbav:"seo"`
	CreatedBy   string     `json:"created_by" dynamodbav:"created_by"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	Title       string     `json:"title" validate:"required"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Price       int64      `json:"price" validate:"required,gt=0"`
	Currency    string     `json:"currency"`
	Category    string     `json:"category"`
	Images      []string   `json:"images"`
	Tags        []string   `json:"tags"`
	SEO         ProductSEO `json:"seo"`
}

type UpdateProductRequest struct {
	Title       *string     `json:"title"`
	Slug        *string     `json:"slug"`
	Description *string     `json:"description"`
	Price       *int64      `json:"price" validate:"omitempty,gt=0"`
	Currency    *string     `json:"currency"`
	Category    *string     `json:"category"`
	Images      *[]string   `json:"images"`
	Tags        *[]string   `json:"tags"`
	SEO         *ProductSEO `json:"seo"`
}
