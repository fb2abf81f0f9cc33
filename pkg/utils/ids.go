package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateUUIDv7 generates a new UUID v7
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// PaymentID builds "{prefix}_{unixMillis}_{suffix}". The suffix is the last four
// characters of source followed by eight random hex characters, so ids minted in the
// same millisecond for sources sharing a tail never collide.
func PaymentID(prefix, source string, at time.Time) string {
	return fmt.Sprintf("%s_%d_%s%s", prefix, at.UnixMilli(), LastN(source, 4), randomHex(8))
}

func randomHex(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

// LastN returns the trailing n characters of s, or s itself when shorter.
func LastN(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
