package crypto

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost is the bcrypt cost factor used for all stored password
// hashes. 12 keeps a single hash in the tens of milliseconds range, slow
// enough to make offline brute force expensive.
const PasswordHashCost = 12

// GenerateHash creates a bcrypt hash from a plaintext password.
func GenerateHash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(hashedBytes), err
}

// CheckPassword compares a bcrypt hashed password with its possible plaintext equivalent
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
