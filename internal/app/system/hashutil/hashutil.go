// Package hashutil wraps bcrypt for password storage.
package hashutil

import "golang.org/x/crypto/bcrypt"

// cost matches the directory-wide bcrypt work factor.
const cost = 12

// Password hashes a plaintext password using bcrypt.
func Password(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored bcrypt digest.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
