package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialScheme isolates password encoding and comparison behind one
// interface so the stored representation can change without touching the
// authentication call sites.
type CredentialScheme interface {
	Encode(password string) (string, error)
	Verify(stored, supplied string) bool
}

// PlainScheme stores passwords verbatim and compares them in constant time.
// It is the default scheme; the product it replaces kept plaintext passwords.
type PlainScheme struct{}

func (PlainScheme) Encode(password string) (string, error) {
	return password, nil
}

func (PlainScheme) Verify(stored, supplied string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// BcryptScheme stores salted bcrypt hashes. Opt-in via configuration.
type BcryptScheme struct{}

func (BcryptScheme) Encode(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptScheme) Verify(stored, supplied string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
}

// SchemeByName resolves a configured scheme name.
func SchemeByName(name string) (CredentialScheme, error) {
	switch name {
	case "", "plain":
		return PlainScheme{}, nil
	case "bcrypt":
		return BcryptScheme{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", name)
	}
}
