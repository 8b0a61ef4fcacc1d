// Package service implements the link tracker: token resolution, the password
// gate, view recording, statistics and the account and link management around them.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/atinyakov/go-link-tracker/internal/apperr"
	"github.com/atinyakov/go-link-tracker/internal/models"
)

// DefaultTokenLength is the number of base62 characters in a generated token.
const DefaultTokenLength = 8

// TokenResolver generates public tokens and maps them back to links.
type TokenResolver struct {
	storage     LinkStore // Storage backend for token lookups.
	tokenLength int       // The desired length of generated tokens.
}

// NewTokenResolver creates a resolver producing tokens of tokenLength characters.
func NewTokenResolver(tokenLength int, storage LinkStore) *TokenResolver {
	if tokenLength <= 0 {
		tokenLength = DefaultTokenLength
	}

	return &TokenResolver{
		storage:     storage,
		tokenLength: tokenLength,
	}
}

// hashToToken hashes seed with SHA-256, re-encodes the digest in base62 and
// truncates it to the configured length.
func (r *TokenResolver) hashToToken(seed string) string {
	hash := sha256.Sum256([]byte(seed))

	encoded := base16ToBase62(hex.EncodeToString(hash[:]))
	if len(encoded) < r.tokenLength {
		return encoded
	}

	return encoded[:r.tokenLength]
}

// base16ToBase62 converts a hexadecimal string to base62 using 0-9, a-z, A-Z.
func base16ToBase62(hexString string) string {
	var value big.Int
	if _, ok := value.SetString(hexString, 16); !ok {
		return ""
	}

	return value.Text(62)
}

// NewToken returns a fresh random token.
func (r *TokenResolver) NewToken() string {
	return r.hashToToken(uuid.NewString())
}

// Resolve maps a token to its link. The token is matched exactly and never
// interpreted. Unknown tokens yield apperr.ErrNotFound; store failures are
// returned as they are.
func (r *TokenResolver) Resolve(ctx context.Context, token string) (*models.Link, error) {
	if token == "" {
		return nil, apperr.ErrNotFound
	}

	link, err := r.storage.FindLinkByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("resolve token: %w", err)
	}

	return link, nil
}
