package domain

// OtpRecord is one issued verification code.
// PK: email, SK: otp_id (ULID, sortable by creation time, so the newest record
// for an email is the last one in key order).
// The plaintext code is never stored; only its bcrypt hash.
// ExpiresAt doubles as the DynamoDB TTL attribute, so stale records are swept
// out of band without any correctness dependency on the sweep.
type OtpRecord struct {
	Email     string `json:"email" dynamodbav:"email"`
	OtpID     string `json:"id" dynamodbav:"otp_id"`
	CodeHash  string `json:"-" dynamodbav:"code_hash"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds
	Used      bool   `json:"used" dynamodbav:"used"`
}
