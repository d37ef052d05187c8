package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	keyNamespace  = "catalog"
	visibleSecret = 8
	maxPrefixLen  = 16
)

// GenerateKey returns a fresh admin key of the form catalog-{env}-{secret}.
// The secret is 26 lowercase base32 characters (128 bits).
func GenerateKey(env string) (string, error) {
	if env == "" || strings.Contains(env, "-") {
		return "", fmt.Errorf("invalid key environment %q", env)
	}
	return keyNamespace + "-" + env + "-" + strings.ToLower(rand.Text()), nil
}

// HashKey is the form admin keys are stored and compared in.
func HashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// KeyPrefix is the part of a key safe to log or display: everything up to
// the secret plus its first eight characters.
func KeyPrefix(key string) string {
	i := strings.LastIndexByte(key, '-')
	if i < 0 {
		return key[:min(len(key), maxPrefixLen)]
	}
	return key[:min(len(key), i+1+visibleSecret)]
}

// KeyMetadata is what a KeyStore knows about one admin key.
type KeyMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the key has an expiry in the past.
func (km *KeyMetadata) Expired(now time.Time) bool {
	return !km.ExpiresAt.IsZero() && now.After(km.ExpiresAt)
}

// ParseDuration accepts day counts ("365d") besides time.ParseDuration forms.
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration")
	}
	days, ok := strings.CutSuffix(s, "d")
	if !ok {
		return time.ParseDuration(s)
	}
	n, err := strconv.Atoi(days)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid day count %q", s)
	}
	return time.Duration(n) * 24 * time.Hour, nil
}
