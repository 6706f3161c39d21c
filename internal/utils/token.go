package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/constants"
)

// GenerateToken generates an opaque bearer token as lowercase hex.
func GenerateToken() (string, error) {
	bytes := make([]byte, constants.TokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	return hex.EncodeToString(bytes), nil
}
