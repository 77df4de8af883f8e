package security

import "golang.org/x/crypto/bcrypt"

// BcryptHasher wraps bcrypt behind the auth service's PasswordHasher
// interface. The zero value is usable and hashes at bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.effectiveCost())
	return string(hashed), err
}

// Compare returns a non-nil error when the password does not match the
// stored hash. Callers translate that into their own credential error;
// the bcrypt detail never leaves this package boundary in responses.
func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (h BcryptHasher) effectiveCost() int {
	switch {
	case h.Cost > bcrypt.MaxCost:
		return bcrypt.MaxCost
	case h.Cost >= bcrypt.MinCost:
		return h.Cost
	default:
		return bcrypt.DefaultCost
	}
}
