package transport

import (
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/geosearch/internal/core/ports/driven"
)

// Ensure UUIDTokens implements the interface.
var _ driven.TokenSource = UUIDTokens{}

// DefaultTokenPrefix starts every callback name.
const DefaultTokenPrefix = "geosearch_cb_"

// UUIDTokens generates callback names from random UUIDs. Dashes are dropped
// so the name is a valid identifier.
type UUIDTokens struct {
	Prefix string
}

// NewToken returns a fresh callback name.
func (u UUIDTokens) NewToken() string {
	prefix := u.Prefix
	if prefix == "" {
		prefix = DefaultTokenPrefix
	}
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
