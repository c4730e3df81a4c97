// Package auth implements password hashing and the session token scheme.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a storable credential from a plaintext password using
// bcrypt. The hash embeds its own salt, so equal passwords produce distinct
// credentials.
func HashPassword(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plaintext matches the stored credential.
func CheckPassword(credential, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
