package auth

import "golang.org/x/crypto/bcrypt"

// HashKey hashes a connector API key with the configured cost. Used by
// operators to produce the AUTH_CONNECTOR_KEY_HASH value.
func HashKey(key string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareKey verifies a presented API key against its stored hash.
func CompareKey(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
