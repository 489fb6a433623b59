/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"fmt"
	"hash"
	"sort"
	"strings"
)

// thumbprintMembers returns the RFC 7638 section 3.2 required members for
// material's key type, already paired as (name, value) so the caller need
// only sort and join them. Each kty has a fixed, spec-mandated member set;
// this is not the full set of JWK fields, only the ones RFC 7638 designates
// required for that key type.
func thumbprintMembers(material KeyMaterial) ([][2]string, error) {
	switch k := material.(type) {
	case ECKey:
		width, err := coordBytes(k.Crv)
		if err != nil {
			return nil, err
		}

		x, err := NewSizedBase64Integer(k.X, width)
		if err != nil {
			return nil, err
		}

		y, err := NewSizedBase64Integer(k.Y, width)
		if err != nil {
			return nil, err
		}

		return [][2]string{
			{"crv", string(k.Crv)},
			{"kty", "EC"},
			{"x", x.Encode()},
			{"y", y.Encode()},
		}, nil

	case RSAKey:
		return [][2]string{
			{"e", NewBase64Integer(k.E).Encode()},
			{"kty", "RSA"},
			{"n", NewBase64Integer(k.N).Encode()},
		}, nil

	case OctKey:
		return [][2]string{
			{"k", Base64Octets(k.K()).Encode()},
			{"kty", "oct"},
		}, nil

	case OKPKey:
		return [][2]string{
			{"crv", string(k.Crv)},
			{"kty", "OKP"},
			{"x", Base64Octets(k.X).Encode()},
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown KeyMaterial implementation %T", ErrJSONShape, material)
	}
}

// canonicalJSON renders members as the RFC 7638 section 3.1 canonical JSON
// object: members sorted lexicographically by name, no insignificant
// whitespace. This hand-built emitter exists because encoding/json does not
// guarantee member order or a "no spaces" minimal form, and RFC 7638's
// output must be reproducible byte-for-byte across implementations.
func canonicalJSON(members [][2]string) string {
	sorted := append([][2]string(nil), members...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i][0] < sorted[j][0] })

	var b strings.Builder

	b.WriteByte('{')

	for i, m := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteByte('"')
		b.WriteString(m[0])
		b.WriteString(`":"`)
		b.WriteString(m[1])
		b.WriteByte('"')
	}

	b.WriteByte('}')

	return b.String()
}

// Thumbprint computes the RFC 7638 JWK thumbprint of material: the
// canonical JSON of its required members, hashed with newHash (crypto/sha256.New
// for the RFC's own running example).
func Thumbprint(material KeyMaterial, newHash func() hash.Hash) ([]byte, error) {
	members, err := thumbprintMembers(material)
	if err != nil {
		return nil, err
	}

	h := newHash()
	h.Write([]byte(canonicalJSON(members)))

	return h.Sum(nil), nil
}

// ThumbprintURI renders Thumbprint as an RFC 9278 "urn:ietf:params:oauth:jwk-thumbprint"
// URI, identifying the hash algorithm by its RFC 7517/IANA "Hash Name String" value.
func ThumbprintURI(material KeyMaterial, hashName string, newHash func() hash.Hash) (string, error) {
	sum, err := Thumbprint(material, newHash)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("urn:ietf:params:oauth:jwk-thumbprint:%s:%s", hashName, base64urlEncode(sum)), nil
}
