package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// signToken builds arbitrary tokens for the failure cases Issue cannot
// produce (expired, missing user_id).
func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestTokens_IssueValidate(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("secret", 0) // 0 -> default TTL
	raw, err := tokens.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, err := tokens.Validate(raw)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if userID != "user-123" {
		t.Fatalf("userID = %q, want %q", userID, "user-123")
	}
}

func TestTokens_ValidateMissing(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("secret", 0)
	for _, raw := range []string{"", "   "} {
		_, err := tokens.Validate(raw)
		if !apperr.Is(err, apperr.KindMissingToken) {
			t.Fatalf("Validate(%q) kind = %s, want MissingToken", raw, apperr.KindOf(err))
		}
	}
}

func TestTokens_ValidateExpired(t *testing.T) {
	t.Parallel()

	tokens := NewTokens("secret", 0)
	raw := signToken(t, "secret", jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(-600 * time.Second).Unix(),
	})

	_, err := tokens.Validate(raw)
	if !apperr.Is(err, apperr.KindInvalidToken) {
		t.Fatalf("kind = %s, want InvalidToken", apperr.KindOf(err))
	}
	if err.Error() != "Token is invalid" {
		t.Fatalf("message = %q, want %q", err.Error(), "Token is invalid")
	}
}

func TestTokens_ValidateWrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokens("right-secret", 0)
	raw, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokens("wrong-secret", 0).Validate(raw)
	if !apperr.Is(err, apperr.KindInvalidToken) {
		t.Fatalf("kind = %s, want InvalidToken", apperr.KindOf(err))
	}
	if err.Error() != "Token is invalid" {
		t.Fatalf("message = %q, want %q", err.Error(), "Token is invalid")
	}
}

func TestTokens_ValidateMalformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokens("secret", 0).Validate("thisisatesttokennotarealtokenbutitlookslikeitright")
	if !apperr.Is(err, apperr.KindInvalidToken) {
		t.Fatalf("kind = %s, want InvalidToken", apperr.KindOf(err))
	}
}

func TestTokens_ValidateCorrupted(t *testing.T) {
	t.Parallel()

	// Signed and unexpired but carrying no user_id claim.
	raw := signToken(t, "secret", jwt.MapClaims{
		"exp": time.Now().Add(600 * time.Second).Unix(),
	})

	_, err := NewTokens("secret", 0).Validate(raw)
	if !apperr.Is(err, apperr.KindCorruptedToken) {
		t.Fatalf("kind = %s, want CorruptedToken", apperr.KindOf(err))
	}
	if err.Error() != "Token is corrupted" {
		t.Fatalf("message = %q, want %q", err.Error(), "Token is corrupted")
	}
}
