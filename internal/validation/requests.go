package validation

import "unicode/utf8"

// Credentials is the register/login payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateCredentials checks the register/login payload bounds.
func ValidateCredentials(c *Credentials) []string {
	var violations []string
	if n := utf8.RuneCountInString(c.Username); n < 3 || n > 24 {
		violations = append(violations, "username must be 3-24 characters")
	}
	if n := utf8.RuneCountInString(c.Password); n < 6 || n > 72 {
		violations = append(violations, "password must be 6-72 characters")
	}
	return violations
}

// GenerateRequest is the free-text idea submitted for draft generation.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// ValidateGenerateRequest checks the generation prompt bounds.
func ValidateGenerateRequest(r *GenerateRequest) []string {
	var violations []string
	if n := utf8.RuneCountInString(r.Prompt); n < 4 || n > 400 {
		violations = append(violations, "prompt must be 4-400 characters")
	}
	return violations
}
