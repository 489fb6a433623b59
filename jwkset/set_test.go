/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwkset_test

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jwk/jwkcore/jwk"
	"github.com/go-jwk/jwkcore/jwkset"
)

func TestSetAddGetRemove(t *testing.T) {
	ctx := context.Background()
	set := jwkset.NewMemorySet()

	key, err := jwk.GenerateJWK(rand.Reader, jwk.ECGenParam{Crv: jwk.P256})
	require.NoError(t, err)

	require.NoError(t, set.Add(ctx, "key-1", key))

	got, err := set.Get(ctx, "key-1")
	require.NoError(t, err)
	require.Equal(t, key, got)

	_, err = set.Get(ctx, "missing")
	require.ErrorIs(t, err, jwkset.ErrKeyNotFound)

	removed, err := set.Remove(ctx, "key-1")
	require.NoError(t, err)
	require.True(t, removed)

	removedAgain, err := set.Remove(ctx, "key-1")
	require.NoError(t, err)
	require.False(t, removedAgain)
}

func TestSetJSONDropsPrivateMaterialByDefault(t *testing.T) {
	ctx := context.Background()
	set := jwkset.NewMemorySet()

	ecKey, err := jwk.GenerateJWK(rand.Reader, jwk.ECGenParam{Crv: jwk.P256})
	require.NoError(t, err)
	require.NoError(t, set.Add(ctx, "ec-1", ecKey))

	octKey, err := jwk.GenerateJWK(rand.Reader, jwk.OctGenParam{N: 32})
	require.NoError(t, err)
	require.NoError(t, set.Add(ctx, "oct-1", octKey))

	out, err := set.JSON(ctx, false)
	require.NoError(t, err)

	var parsed struct {
		Keys []map[string]interface{} `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(out, &parsed))

	// the oct key has no public projection and must be dropped.
	require.Len(t, parsed.Keys, 1)
	require.Equal(t, "EC", parsed.Keys[0]["kty"])
	require.NotContains(t, parsed.Keys[0], "d")
}

func TestSetJSONIncludesPrivateWhenRequested(t *testing.T) {
	ctx := context.Background()
	set := jwkset.NewMemorySet()

	ecKey, err := jwk.GenerateJWK(rand.Reader, jwk.ECGenParam{Crv: jwk.P256})
	require.NoError(t, err)
	require.NoError(t, set.Add(ctx, "ec-1", ecKey))

	out, err := set.JSON(ctx, true)
	require.NoError(t, err)
	require.Contains(t, string(out), `"d":`)
}

func TestParseJWKSetAssignsPositionalKid(t *testing.T) {
	ctx := context.Background()

	const raw = `{"keys":[{"kty":"oct","k":"GawgguFyGrWKav7AX4VKUg"}]}`

	set, err := jwkset.ParseJWKSet(ctx, []byte(raw))
	require.NoError(t, err)

	got, err := set.Get(ctx, "0")
	require.NoError(t, err)
	require.Equal(t, "oct", got.Kty())
}
