package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, fixed for the process lifetime. Changing them would
// invalidate every stored hash.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	saltBytes = 16
)

// hashPassword derives an argon2id key from the password and the hex salt.
// The salt lives in its own column, so the hash carries no encoding of it.
func hashPassword(plain, saltHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(plain), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return hex.EncodeToString(key), nil
}

// verifyPassword recomputes the hash with the stored salt and compares in
// constant time.
func verifyPassword(plain, saltHex, hashHex string) bool {
	want, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	gotHex, err := hashPassword(plain, saltHex)
	if err != nil {
		return false
	}
	got, _ := hex.DecodeString(gotHex)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
