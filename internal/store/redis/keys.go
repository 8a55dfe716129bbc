package redis

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// KeyPrefixClassification is the prefix for cached classification results
	KeyPrefixClassification = "gmark:classify:"
)

// ClassificationKey returns the Redis key for a URL's cached
// classification. URLs are hashed so arbitrary characters and length
// never leak into the keyspace.
func ClassificationKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return KeyPrefixClassification + hex.EncodeToString(sum[:16])
}
