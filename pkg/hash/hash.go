package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// BatchKey derives a stable cache key for a batch of identifiers. The ids are
// sorted before hashing so the key is independent of request ordering.
func BatchKey(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	return SHA256Hex(strings.Join(sorted, ","))[:32]
}
