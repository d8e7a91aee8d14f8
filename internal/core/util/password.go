package util

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt digest. Each call salts
// independently, so two hashes of the same plaintext differ.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// VerifyPassword reports whether plaintext matches the stored digest.
func VerifyPassword(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
