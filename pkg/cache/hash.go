package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex-encoded SHA-256 of data. It is the content hash used
// throughout the pipeline: runners hash the raw input configuration, the
// keyer hashes visualization specs and style bundles.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced cache key of the form prefix:sha256hex. The
// prefix names the artifact class ("figure" or "document", see [Keyer]), so
// both classes can live in one backend and be expired independently. Parts
// are JSON-encoded before hashing so option structs key deterministically.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			h.Write([]byte(v))
		case []byte:
			h.Write(v)
		default:
			encoded, err := json.Marshal(v)
			if err != nil {
				h.Write([]byte(fmt.Sprintf("%v", v)))
				continue
			}
			h.Write(encoded)
		}
		h.Write([]byte{0})
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
