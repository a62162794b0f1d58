// Package utils holds small helpers shared by the hosts.
package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns n random bytes hex encoded, so 2n characters long
func RandomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewClientID returns an id for a browser that did not bring its own
func NewClientID() string {
	return "anon-" + RandomHex(6)
}
