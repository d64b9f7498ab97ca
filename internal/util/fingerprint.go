package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fingerprint computes a stable hash for an analysis record key
func Fingerprint(address string, chainID int64, parts ...string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d", address, chainID)
	for _, p := range parts {
		fmt.Fprintf(h, "|%s", p)
	}
	return hex.EncodeToString(h.Sum(nil))
}
