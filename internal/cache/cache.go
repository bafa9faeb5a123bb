package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache defines the interface for caching API responses. The bot only
// caches immutable lookups: the section list of a fixed revision never
// changes, so a long TTL is safe.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SectionsKey generates the cache key for a revision's section list.
func SectionsKey(revid int64) string {
	return hashKey(fmt.Sprintf("sections:%d", revid))
}

func hashKey(s string) string {
	hash := sha256.Sum256([]byte(s))
	return "tha:v1:" + hex.EncodeToString(hash[:])
}
