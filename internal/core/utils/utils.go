package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// HashJSON fingerprints a request payload by its JSON encoding. Values json
// cannot encode fall back to their Go syntax representation.
func HashJSON(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", value))
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
