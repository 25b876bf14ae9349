package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a namespaced cache key from arbitrary components, e.g. an
// options hash plus an artifact format. The key format is
// prefix:sha256(parts), so keys from different concerns never collide even
// inside a shared backend.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash fingerprints a serialized option set as a 64-character hex SHA-256.
// Two generation runs reuse each other's artifacts exactly when this hash
// matches.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
