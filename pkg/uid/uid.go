// Package uid generates the public identifiers exposed for persisted records.
package uid

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Length is the number of characters in a generated uid.
const Length = 21

const alphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// New returns a URL-safe random identifier of Length characters.
func New() (string, error) {
	id, err := gonanoid.New(Length)
	if err != nil {
		return "", fmt.Errorf("generate uid: %w", err)
	}
	return id, nil
}

// Valid reports whether s has the shape of a generated uid.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(alphabet, r) {
			return false
		}
	}
	return true
}
