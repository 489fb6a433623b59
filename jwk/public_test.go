/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jwk/jwkcore/jwk"
)

func TestPublicJWKProjectsEachKeyType(t *testing.T) {
	testCases := []struct {
		name  string
		param jwk.KeyGenParam
	}{
		{"EC", jwk.ECGenParam{Crv: jwk.P256}},
		{"RSA", jwk.RSAGenParam{SizeBits: 2048}},
		{"OKP", jwk.OKPGenParam{Crv: jwk.Ed25519}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := jwk.GenerateJWK(rand.Reader, tc.param)
			require.NoError(t, err)
			require.True(t, key.IsPrivate())

			public, ok := key.PublicJWK()
			require.True(t, ok)
			require.False(t, public.IsPrivate())
			require.Equal(t, key.Kty(), public.Kty())

			// the receiver must be untouched.
			require.True(t, key.IsPrivate())
		})
	}
}

func TestPublicJWKHasNoProjectionForOct(t *testing.T) {
	key, err := jwk.GenerateJWK(rand.Reader, jwk.OctGenParam{N: 32})
	require.NoError(t, err)

	public, ok := key.PublicJWK()
	require.False(t, ok)
	require.Same(t, key, public)
}
