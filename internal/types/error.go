package types

import "fmt"

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Unauthorized builds the uniform authentication failure. The message is
// intentionally the same for missing, malformed, expired and mis-signed
// credentials.
func Unauthorized() *CustomError {
	return &CustomError{
		Code:    401,
		Message: "Invalid or expired token",
		Type:    "auth",
	}
}

// RateLimited signals a token-bucket rejection.
func RateLimited() *CustomError {
	return &CustomError{
		Code:    429,
		Message: "rate_limited",
		Type:    "rate_limit",
	}
}
