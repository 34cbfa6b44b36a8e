package utils

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
)

// GenerateResetCode generates a 6-character password reset code. Hex
// keeps it short enough to type from an email; upper-cased for
// readability, comparison is case-insensitive either way.
func GenerateResetCode() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform entropy source is gone
		log.Fatalf("Error generating reset code: %v", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
