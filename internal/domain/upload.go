package domain

import "time"

// Upload records one image pushed to object storage.
type Upload struct {
	FileID     string    `json:"id" dynamodbav:"file_id"`
	Object     string    `json:"object" dynamodbav:"object"` // storage key
	URL        string    `json:"url" dynamodbav:"url"`
	Size       int64     `json:"size" dynamodbav:"size"`
	Type       string    `json:"type" dynamodbav:"type"`
	UploadedBy string    `json:"uploaded_by" dynamodbav:"uploaded_by"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}
