package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const apiTokenPrefix = "cdc_"

// APITokenString is the secret handed to an integrator exactly once.
// The format of APITokenString is cdc_[ID].[SECRET].
type APITokenString string

// APITokenHashedString is the bcrypt hash of the SHA-256 digest of an APITokenString. The original string can not be recovered from it.
type APITokenHashedString string

// APIToken authorises an external integration to call the external API on behalf of a company.
type APIToken struct {
	ID          string               `json:"id"`
	Version     int64                `json:"version"`
	CompanyID   string               `json:"company_id"`
	Name        string               `json:"name"`
	HashString  APITokenHashedString `json:"hash_string,omitempty"`
	Permissions []Permission         `json:"permissions"`
	ExpiresAt   *int64               `json:"expires_at"` // Unix Time (in second). Nil never expires.
	IsActive    bool                 `json:"is_active"`
	LastUsedAt  *int64               `json:"last_used_at"` // Unix Time (in second) of the last authenticated request.

	CreatedAt int64  `json:"created_at"`
	CreatedBy string `json:"created_by"`
	UpdatedAt int64  `json:"updated_at"`
	UpdatedBy string `json:"updated_by"`
	Deleted   bool   `json:"deleted,omitempty"`
}

// Expired reports whether the token is past its expiry at ts.
func (t APIToken) Expired(ts int64) bool {
	return t.ExpiresAt != nil && *t.ExpiresAt <= ts
}

func (ks APITokenString) ID() (string, error) {
	s := string(ks)
	if !strings.HasPrefix(s, apiTokenPrefix) {
		return "", ErrInvalidAPITokenString
	}
	parts := strings.Split(strings.TrimPrefix(s, apiTokenPrefix), ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ErrInvalidAPITokenString
	}

	return parts[0], nil
}

// digest keeps the bcrypt input under its 72 byte limit while still covering the whole token.
func (ks APITokenString) digest() []byte {
	sum := sha256.Sum256([]byte(ks))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}

func (ks APITokenString) Hash() (APITokenHashedString, error) {
	hashed, err := bcrypt.GenerateFromPassword(ks.digest(), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return APITokenHashedString(hashed), nil
}

// NewAPITokenString generates a fresh secret for the token with the given id.
func NewAPITokenString(id string) (APITokenString, error) {
	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", err
	}

	secret := base64.RawURLEncoding.EncodeToString(secretBytes)
	return APITokenString(fmt.Sprintf("%s%s.%s", apiTokenPrefix, id, secret)), nil
}

func VerifyAPITokenString(ks APITokenString, hashedKs APITokenHashedString) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedKs), ks.digest())
	if err == nil {
		return nil
	}

	if err == bcrypt.ErrMismatchedHashAndPassword {
		return ErrMismatchAPIToken
	}

	return err
}
