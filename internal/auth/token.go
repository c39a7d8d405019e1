package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 600 * time.Second

// Tokens issues and validates HS256-signed session tokens. The secret and
// TTL are injected once at construction and never change afterwards, which
// makes Validate safe for unbounded parallel use.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user ID and an absolute expiry.
func (t *Tokens) Issue(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(t.ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

// Validate checks the token and returns the embedded user ID. It does not
// guarantee the user still exists; that check belongs to the Gate.
//
// Failure kinds: MissingToken for an absent/empty token, InvalidToken for a
// bad signature, malformed payload or passed expiry (deliberately the same
// message, "Token is invalid"), CorruptedToken when the payload decodes but
// carries no user ID.
func (t *Tokens) Validate(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperr.New(apperr.KindMissingToken, "Access denied")
	}
	tok, err := jwt.Parse(raw, func(tk *jwt.Token) (any, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.KindInvalidToken, "Token is invalid")
		}
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", apperr.New(apperr.KindInvalidToken, "Token is invalid")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.New(apperr.KindInvalidToken, "Token is invalid")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", apperr.New(apperr.KindCorruptedToken, "Token is corrupted")
	}
	return userID, nil
}
