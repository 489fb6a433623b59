/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwkset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jwk/jwkcore/jwk"
)

// Set is a JSON Web Key Set (RFC 7517 section 5): a named collection of
// JWKs backed by a Storage implementation.
type Set struct {
	Store Storage
}

// NewMemorySet builds a Set backed by an in-memory Storage.
func NewMemorySet() Set {
	return Set{Store: NewMemoryStorage()}
}

// Add registers key under kid, overwriting any existing entry.
func (s Set) Add(ctx context.Context, kid string, key *jwk.JWK) error {
	return s.Store.KeyWrite(ctx, kid, key)
}

// Get retrieves the key registered under kid.
func (s Set) Get(ctx context.Context, kid string) (*jwk.JWK, error) {
	return s.Store.KeyRead(ctx, kid)
}

// Remove deletes the key registered under kid, reporting whether one was
// present.
func (s Set) Remove(ctx context.Context, kid string) (bool, error) {
	return s.Store.KeyDelete(ctx, kid)
}

// rawSet is the RFC 7517 section 5.1 JWK Set JSON shape: a single "keys"
// array, order not significant.
type rawSet struct {
	Keys []*jwk.JWK `json:"keys"`
}

// JSON renders the set as an RFC 7517 section 5 JWK Set. When
// includePrivate is false, every key is projected through PublicJWK first;
// keys with no public projection (oct) are silently dropped rather than
// leaking secret material, matching the "ignore the key" behavior the
// bigdata-memory-jwkset reference's own Set.JSON applies to kty values its
// marshaler can't represent.
func (s Set) JSON(ctx context.Context, includePrivate bool) (json.RawMessage, error) {
	keys, err := s.Store.KeyReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("jwkset: read all keys: %w", err)
	}

	raw := rawSet{Keys: make([]*jwk.JWK, 0, len(keys))}

	for _, key := range keys {
		if includePrivate {
			raw.Keys = append(raw.Keys, key)
			continue
		}

		public, ok := key.PublicJWK()
		if !ok {
			continue
		}

		raw.Keys = append(raw.Keys, public)
	}

	return json.Marshal(raw)
}

// ParseJWKSet parses an RFC 7517 section 5 JWK Set and returns a Set backed
// by fresh in-memory Storage, keyed by each member's "kid" (members with no
// "kid" are assigned one from their position, "0", "1", ...).
func ParseJWKSet(ctx context.Context, data []byte) (Set, error) {
	var raw rawSet

	if err := json.Unmarshal(data, &raw); err != nil {
		return Set{}, fmt.Errorf("jwkset: %w", errors.Join(jwk.ErrJSONDecode, err))
	}

	set := NewMemorySet()

	for i, key := range raw.Keys {
		kid := key.KeyID()
		if kid == "" {
			kid = fmt.Sprintf("%d", i)
		}

		if err := set.Add(ctx, kid, key); err != nil {
			return Set{}, err
		}
	}

	return set, nil
}
