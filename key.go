package magiclink

import (
	"crypto/rand"
	"encoding/base64"
)

// keySize is the length of the raw verification key in bytes. 32 bytes of
// crypto/rand output keyed into HMAC-SHA256 is the full strength the signing
// scheme supports.
const keySize = 32

// newKey generates a fresh verification key and its URL-safe encoding. A key
// is minted per issuance and never derived from or stored within the token.
func newKey() ([]byte, string, error) {
	raw := make([]byte, keySize)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", err
	}
	return raw, base64.RawURLEncoding.EncodeToString(raw), nil
}

func decodeKey(encoded string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(encoded)
}
