package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Table is a CSV table as read from disk: the header row and every
// following row, blank rows included so row numbers stay stable
type Table struct {
	Header []string
	Rows   [][]string
}

// Cache holds raw tables so one run never reads the same file twice
type Cache interface {
	Get(key string) (*Table, bool)
	Set(key string, table *Table)
}

// CacheKey generates a cache key from a file identity and how it is decoded.
// Size and modification time make the key change when the file is rewritten.
func CacheKey(path string, size int64, modTime time.Time, options string) string {
	raw := fmt.Sprintf("%s|%d|%d|%s", path, size, modTime.UnixNano(), options)
	hash := sha256.Sum256([]byte(raw))
	return "sentiviz:v2:" + hex.EncodeToString(hash[:])
}
