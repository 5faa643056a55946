package domain

// OtpChallenge stores a pending one-time code for an email address.
// PK: email — at most one outstanding challenge per email; a new request
// overwrites (and thereby invalidates) the previous one.
// CodeHash is a bcrypt hash; the plaintext code never touches storage.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type OtpChallenge struct {
	Email     string `json:"email" dynamodbav:"email"`
	CodeHash  string `json:"-" dynamodbav:"code_hash"`
	IssuedAt  int64  `json:"issued_at" dynamodbav:"issued_at"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Consumed  bool   `json:"consumed" dynamodbav:"consumed"`
}

type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Via   string `json:"via" validate:"omitempty,oneof=email sms"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}
