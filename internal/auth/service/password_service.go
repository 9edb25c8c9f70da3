package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/hivelvet/internal/errors"
)

const generatedPasswordBytes = 18

type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService with the interactive Argon2id policy.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}
	return &passwordService{hasher: hasher}, nil
}

// GeneratePassword returns a URL-safe random password. A fixed "Aa1!" suffix
// keeps it within the strength rules applied to chosen passwords.
func (p *passwordService) GeneratePassword() (string, string, error) {
	randomBytes := make([]byte, generatedPasswordBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random password")
	}

	plainPassword := base64.RawURLEncoding.EncodeToString(randomBytes) + "Aa1!"

	hashedPassword, err := p.HashPassword(plainPassword)
	if err != nil {
		return "", "", err
	}
	return plainPassword, hashedPassword, nil
}

func (p *passwordService) HashPassword(plainPassword string) (string, error) {
	hashedPassword, err := p.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashedPassword, nil
}

func (p *passwordService) ComparePassword(plainPassword, hashedPassword string) bool {
	ok, err := p.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}
