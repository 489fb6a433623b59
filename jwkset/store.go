/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

// Package jwkset provides a keyed collection of JWKs (an RFC 7517 JWK Set)
// with a pluggable Storage backend, grounded on the in-memory key registry
// pattern used elsewhere in the pack for small, frequently-read key stores.
package jwkset

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-jwk/jwkcore/jwk"
)

// ErrKeyNotFound is returned by Storage.KeyRead when no key is registered
// under the requested kid.
var ErrKeyNotFound = fmt.Errorf("jwkset: key not found")

// Storage is the persistence boundary for a Set: every method takes a
// context.Context so implementations backed by a database or remote KMS can
// honor cancellation and deadlines, the same context-threading discipline
// the teacher's resolver/VDR methods apply to their own I/O.
type Storage interface {
	KeyRead(ctx context.Context, kid string) (*jwk.JWK, error)
	KeyReadAll(ctx context.Context) ([]*jwk.JWK, error)
	KeyWrite(ctx context.Context, kid string, key *jwk.JWK) error
	KeyDelete(ctx context.Context, kid string) (bool, error)
}

// memoryStorage is a Storage backed by an in-process map, guarded by a
// sync.RWMutex so concurrent readers never block each other and a writer
// always has exclusive access.
type memoryStorage struct {
	mu   sync.RWMutex
	keys map[string]*jwk.JWK
}

// NewMemoryStorage builds an empty in-memory Storage.
func NewMemoryStorage() Storage {
	return &memoryStorage{keys: make(map[string]*jwk.JWK)}
}

func (m *memoryStorage) KeyRead(_ context.Context, kid string) (*jwk.JWK, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.keys[kid]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, kid)
	}

	return key, nil
}

func (m *memoryStorage) KeyReadAll(_ context.Context) ([]*jwk.JWK, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*jwk.JWK, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, key)
	}

	return out, nil
}

func (m *memoryStorage) KeyWrite(_ context.Context, kid string, key *jwk.JWK) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys[kid] = key

	return nil
}

func (m *memoryStorage) KeyDelete(_ context.Context, kid string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.keys[kid]; !ok {
		return false, nil
	}

	delete(m.keys, kid)

	return true, nil
}
