/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"errors"
	"fmt"
)

// Sentinel errors making up the closed taxonomy this package returns. Callers
// should match against these with errors.Is, not against formatted message text.
var (
	// ErrKeyMismatch indicates the algorithm/key-type pairing is impossible, or
	// that a private operation was requested of a public-only key.
	ErrKeyMismatch = errors.New("jwk: key mismatch")
	// ErrAlgorithmMismatch indicates the algorithm is not supported for this
	// material at all.
	ErrAlgorithmMismatch = errors.New("jwk: algorithm mismatch")
	// ErrKeySizeTooSmall indicates the key falls below the minimum strength
	// this package will operate on.
	ErrKeySizeTooSmall = errors.New("jwk: key size too small")
	// ErrOtherPrimesNotSupported indicates an RSA private key carries the
	// multi-prime "oth" array, which this package refuses to sign with.
	ErrOtherPrimesNotSupported = errors.New("jwk: multi-prime RSA keys (oth) are not supported")
	// ErrJSONDecode indicates the JSON was not parseable at all.
	ErrJSONDecode = errors.New("jwk: malformed JSON")
	// ErrJSONShape indicates well-formed JSON that does not match the shape a
	// JWK or JWK Set requires (missing kty, unknown kty, missing required
	// member, ...).
	ErrJSONShape = errors.New("jwk: unexpected JSON shape")
	// ErrCryptoBackend marks an error returned from a crypto primitive or
	// random source. The underlying error's message is kept in the returned
	// error's text, but the underlying error itself is not wrapped: errors.Is
	// and errors.As match only ErrCryptoBackend.
	ErrCryptoBackend = errors.New("jwk: crypto backend error")
)

// InvalidSizeError reports that a SizedBase64Integer did not match the byte
// width its curve requires.
type InvalidSizeError struct {
	Field    string
	Expected int
	Actual   int
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("jwk: invalid size for %q: expected %d bytes, got %d", e.Field, e.Expected, e.Actual)
}

// Is reports that InvalidSizeError participates in the ErrInvalidSize family
// so callers can use errors.Is(err, jwk.ErrInvalidSize).
func (e *InvalidSizeError) Is(target error) bool {
	return target == ErrInvalidSize //nolint:errorlint
}

// ErrInvalidSize is the family marker for InvalidSizeError; match with
// errors.Is(err, jwk.ErrInvalidSize), inspect width details via
// errors.As(err, &invalidSizeErr).
var ErrInvalidSize = errors.New("jwk: invalid size")
