package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ShortID derives a 16-hex-character identifier from the given fields and the
// current time. It only identifies an object; it is not a content hash and
// carries no uniqueness check against existing records.
func ShortID(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "") + time.Now().String()))
	return hex.EncodeToString(sum[:])[:16]
}

// ContentHash returns the full sha256 digest (64 hex characters) over the
// JSON serialization of v. This is the tamper-evidence anchor written to the
// ledger, so the serialization must stay stable across releases.
func ContentHash(v any) (string, error) {
	const op = "hash.ContentHash"

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
