package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashCallerKey returns a filesystem-safe identifier for a caller ID.
// Empty callers share the "anonymous" namespace.
func HashCallerKey(callerID string) string {
	callerID = strings.TrimSpace(callerID)
	if callerID == "" {
		callerID = "anonymous"
	}
	sum := sha256.Sum256([]byte(callerID))
	return hex.EncodeToString(sum[:])
}
