/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jwk/jwkcore/jwk"
)

func TestSizedBase64Integer(t *testing.T) {
	t.Run("round trip at declared width", func(t *testing.T) {
		v, err := jwk.NewSizedBase64Integer(big.NewInt(7), 4)
		require.NoError(t, err)
		require.Len(t, v.Bytes(), 4)

		parsed, err := jwk.ParseSizedBase64Integer(v.Encode())
		require.NoError(t, err)
		require.NoError(t, parsed.CheckSize("x", 4))
		require.Equal(t, int64(7), parsed.Int().Int64())
	})

	t.Run("value too large for width is rejected", func(t *testing.T) {
		_, err := jwk.NewSizedBase64Integer(big.NewInt(1<<20), 1)
		require.Error(t, err)
	})

	t.Run("negative value is rejected", func(t *testing.T) {
		_, err := jwk.NewSizedBase64Integer(big.NewInt(-1), 4)
		require.Error(t, err)
	})

	t.Run("CheckSize reports a width mismatch", func(t *testing.T) {
		v, err := jwk.NewSizedBase64Integer(big.NewInt(7), 4)
		require.NoError(t, err)

		err = v.CheckSize("x", 32)
		require.Error(t, err)

		var sizeErr *jwk.InvalidSizeError
		require.ErrorAs(t, err, &sizeErr)
		require.ErrorIs(t, err, jwk.ErrInvalidSize)
	})
}

func TestBase64Integer(t *testing.T) {
	t.Run("round trip drops leading zero bytes", func(t *testing.T) {
		v := jwk.NewBase64Integer(big.NewInt(65537))

		parsed, err := jwk.ParseBase64Integer(v.Encode())
		require.NoError(t, err)
		require.Equal(t, int64(65537), parsed.Int().Int64())

		// "AAEAAQ" is 65537 with a leading zero byte (00 01 00 01).
		padded, err := jwk.ParseBase64Integer("AAEAAQ")
		require.NoError(t, err)
		require.Equal(t, "AQAB", padded.Encode())
	})

	t.Run("nil value encodes as zero", func(t *testing.T) {
		v := jwk.NewBase64Integer(nil)
		require.True(t, v.IsZero())
		require.Equal(t, int64(0), v.Int().Int64())
	})
}

func TestBase64Octets(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := jwk.Base64Octets{1, 2, 3, 4, 5}

		parsed, err := jwk.ParseBase64Octets(original.Encode())
		require.NoError(t, err)
		require.Equal(t, []byte(original), []byte(parsed))
	})

	t.Run("empty string decodes to nil", func(t *testing.T) {
		parsed, err := jwk.ParseBase64Octets("")
		require.NoError(t, err)
		require.Nil(t, parsed)
	})

	t.Run("tolerates trailing padding", func(t *testing.T) {
		// "AQ==" is the padded form of the single byte 0x01.
		parsed, err := jwk.ParseBase64Octets("AQ==")
		require.NoError(t, err)
		require.Equal(t, []byte{1}, []byte(parsed))
	})
}
