package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 86400 * time.Second

// Identity is the subject recovered from a verified token.
type Identity struct {
	ID       string
	Username string
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// IssueToken produces a compact HS256-signed session token carrying the
// subject id, username, issue time and expiry.
func IssueToken(secret, subjectID, username string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}

	now := time.Now()
	claims := sessionClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyToken checks signature and expiry and recovers the subject.
// Malformed, expired and mis-signed tokens all return (nil, false); callers
// get no detail about which check failed.
func VerifyToken(secret, tokenString string) (*Identity, bool) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))

	if err != nil || !token.Valid {
		return nil, false
	}

	if claims.Subject == "" || claims.Username == "" {
		return nil, false
	}

	return &Identity{ID: claims.Subject, Username: claims.Username}, true
}
