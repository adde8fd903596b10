// Package util provides small helpers shared across tenantpipe packages.
package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"
)

// GenerateRandomHex returns a random hex string of length n (n must be even).
func GenerateRandomHex(n int) (string, error) {
	if n <= 0 || n%2 != 0 {
		return "", fmt.Errorf("GenerateRandomHex: length %d must be positive and even", n)
	}
	buf := make([]byte, n/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("GenerateRandomHex: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// GenerateSessionID returns an opaque session token of the form
// s_<unix-millis>_<random-hex>.
func GenerateSessionID() string {
	suffix, err := GenerateRandomHex(8)
	if err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to
		// a timestamp-only token rather than erroring the turn.
		suffix = "00000000"
	}
	return fmt.Sprintf("s_%d_%s", time.Now().UnixMilli(), suffix)
}

// ParseBoolEnv reads a boolean environment variable, returning def when the
// variable is unset or unparsable.
func ParseBoolEnv(key string, def bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}
