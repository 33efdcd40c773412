// Package record holds the small pieces shared by every registry record
// kind: protocol discriminators, the default tenant identifier, timestamp
// formatting, surrogate id and secret generation.
package record

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Protocol discriminators carried on stored records.
const (
	ProtocolOIDC = "oidc"
	ProtocolSAML = "saml"
)

// DefaultTenantID is the reserved identifier of the implicit tenant. It is
// synthesized at the API boundary and never persisted.
const DefaultTenantID = "default"

// TimestampLayout is a fixed-width UTC ISO-8601 layout. Fixed width keeps
// lexicographic order equal to chronological order, which the dashboard
// relies on when merging activity across collections.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp returns the current instant formatted with TimestampLayout.
func Timestamp() string {
	return time.Now().UTC().Format(TimestampLayout)
}

// NewID returns a fresh surrogate identifier.
func NewID() string {
	return uuid.NewString()
}

// GenerateSecret returns a URL-safe secret derived from 32 random bytes.
func GenerateSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
