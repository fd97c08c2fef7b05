package password

import "golang.org/x/crypto/bcrypt"

// cost 12 keeps a single hash in the tens of milliseconds on current
// hardware, which is the intended brake on offline brute force.
const hashCost = 12

// Hash derives a salted bcrypt hash from a plaintext password.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plain matches hash. Any mismatch or malformed hash
// yields false; it never returns an error to the caller.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
