/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// base64urlEncode renders b as base64url-no-pad, per RFC 7515 section 2.
func base64urlEncode(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// base64urlDecode parses s as base64url, tolerating trailing "=" padding that
// some non-conforming peers still send. RFC 7517 defines base64url the same
// way RFC 7515 section 2 does.
func base64urlDecode(s string) ([]byte, error) {
	s = strings.TrimRight(s, "=")

	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONDecode, err)
	}

	return b, nil
}

// SizedBase64Integer is a non-negative integer together with its declared
// big-endian byte width. The width is part of the value's identity: two
// SizedBase64Integers with the same numeric value but different widths
// encode to different JSON.
type SizedBase64Integer struct {
	n int
	v *big.Int
}

// NewSizedBase64Integer builds a SizedBase64Integer of exactly width bytes.
// It returns an error if v does not fit in width bytes.
func NewSizedBase64Integer(v *big.Int, width int) (SizedBase64Integer, error) {
	if v == nil {
		v = new(big.Int)
	}

	if v.Sign() < 0 {
		return SizedBase64Integer{}, fmt.Errorf("%w: negative integer", ErrJSONShape)
	}

	if len(v.Bytes()) > width {
		return SizedBase64Integer{}, &InvalidSizeError{Field: "value", Expected: width, Actual: len(v.Bytes())}
	}

	return SizedBase64Integer{n: width, v: v}, nil
}

// Width reports the declared byte width.
func (s SizedBase64Integer) Width() int { return s.n }

// Int returns the integer value.
func (s SizedBase64Integer) Int() *big.Int {
	if s.v == nil {
		return new(big.Int)
	}

	return s.v
}

// Bytes renders the value as exactly Width() big-endian bytes, left-padded
// with zero.
func (s SizedBase64Integer) Bytes() []byte {
	out := make([]byte, s.n)

	raw := s.Int().Bytes()
	copy(out[s.n-len(raw):], raw)

	return out
}

// MarshalJSON implements json.Marshaler.
func (s SizedBase64Integer) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64urlEncode(s.Bytes()))
}

// UnmarshalJSON implements json.Unmarshaler. The declared width becomes
// whatever the decoded byte slice's length is; callers that require a
// specific width must call CheckSize afterwards.
func (s *SizedBase64Integer) UnmarshalJSON(data []byte) error {
	var encoded string

	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("%w: %v", ErrJSONDecode, err)
	}

	raw, err := base64urlDecode(encoded)
	if err != nil {
		return err
	}

	s.n = len(raw)
	s.v = new(big.Int).SetBytes(raw)

	return nil
}

// CheckSize fails with InvalidSizeError if s was not decoded at exactly the
// expected width.
func (s SizedBase64Integer) CheckSize(field string, expected int) error {
	if s.n != expected {
		return &InvalidSizeError{Field: field, Expected: expected, Actual: s.n}
	}

	return nil
}

// Encode renders s as a bare base64url-no-pad string, for embedding in a
// hand-built flat JSON object rather than through encoding/json reflection.
func (s SizedBase64Integer) Encode() string {
	return base64urlEncode(s.Bytes())
}

// ParseSizedBase64Integer decodes a bare base64url-no-pad string into a
// SizedBase64Integer whose width is whatever the decoded length turned out
// to be. Use CheckSize to assert a curve-mandated width.
func ParseSizedBase64Integer(s string) (SizedBase64Integer, error) {
	raw, err := base64urlDecode(s)
	if err != nil {
		return SizedBase64Integer{}, err
	}

	return SizedBase64Integer{n: len(raw), v: new(big.Int).SetBytes(raw)}, nil
}

// Base64Integer is a non-negative integer with no declared width: it decodes
// at whatever width the input had, but always emits the minimal big-endian
// form (no leading zero byte).
type Base64Integer struct {
	v *big.Int
}

// NewBase64Integer wraps v. A nil v is treated as zero.
func NewBase64Integer(v *big.Int) Base64Integer {
	return Base64Integer{v: v}
}

// Int returns the integer value.
func (b Base64Integer) Int() *big.Int {
	if b.v == nil {
		return new(big.Int)
	}

	return b.v
}

// IsZero reports whether the integer was never set (the JSON field was
// entirely absent, as opposed to present with value zero).
func (b Base64Integer) IsZero() bool {
	return b.v == nil
}

// MarshalJSON implements json.Marshaler.
func (b Base64Integer) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64urlEncode(b.Int().Bytes()))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Base64Integer) UnmarshalJSON(data []byte) error {
	var encoded string

	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("%w: %v", ErrJSONDecode, err)
	}

	raw, err := base64urlDecode(encoded)
	if err != nil {
		return err
	}

	b.v = new(big.Int).SetBytes(raw)

	return nil
}

// Encode renders b as a bare base64url-no-pad string.
func (b Base64Integer) Encode() string {
	return base64urlEncode(b.Int().Bytes())
}

// ParseBase64Integer decodes a bare base64url-no-pad string into a
// Base64Integer.
func ParseBase64Integer(s string) (Base64Integer, error) {
	raw, err := base64urlDecode(s)
	if err != nil {
		return Base64Integer{}, err
	}

	return Base64Integer{v: new(big.Int).SetBytes(raw)}, nil
}

// Base64Octets is a raw byte sequence, base64url-no-pad encoded in JSON.
type Base64Octets []byte

// Encode renders b as a bare base64url-no-pad string.
func (b Base64Octets) Encode() string {
	return base64urlEncode(b)
}

// ParseBase64Octets decodes a bare base64url-no-pad string into Base64Octets.
func ParseBase64Octets(s string) (Base64Octets, error) {
	if s == "" {
		return nil, nil
	}

	raw, err := base64urlDecode(s)
	if err != nil {
		return nil, err
	}

	return Base64Octets(raw), nil
}

// MarshalJSON implements json.Marshaler.
func (b Base64Octets) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64urlEncode(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Base64Octets) UnmarshalJSON(data []byte) error {
	var encoded string

	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("%w: %v", ErrJSONDecode, err)
	}

	if encoded == "" {
		*b = nil
		return nil
	}

	raw, err := base64urlDecode(encoded)
	if err != nil {
		return err
	}

	*b = raw

	return nil
}
