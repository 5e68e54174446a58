package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// sessionTokenBytes is the entropy of a session token (256 bits). The hex
// encoding yields the 64-character strings stored in the sessions table.
const sessionTokenBytes = 32

// NewSessionToken returns a fresh opaque session token. Tokens carry no
// structure: they are only meaningful as lookup keys in the session store.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
