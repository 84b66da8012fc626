package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword creates a salted bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	// bcrypt embeds a random salt and the cost in the hash itself
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if the provided plaintext password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, providedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword))
}
