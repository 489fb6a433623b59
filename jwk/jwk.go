/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/copier"
)

// KeyOp is an RFC 7517 section 4.3 "key_ops" value.
type KeyOp string

// Recognised key_ops values.
const (
	KeyOpSign       KeyOp = "sign"
	KeyOpVerify     KeyOp = "verify"
	KeyOpEncrypt    KeyOp = "encrypt"
	KeyOpDecrypt    KeyOp = "decrypt"
	KeyOpWrapKey    KeyOp = "wrapKey"
	KeyOpUnwrapKey  KeyOp = "unwrapKey"
	KeyOpDeriveKey  KeyOp = "deriveKey"
	KeyOpDeriveBits KeyOp = "deriveBits"
)

// Use is an RFC 7517 section 4.2 "use" value.
type Use string

// Recognised use values.
const (
	UseSig Use = "sig"
	UseEnc Use = "enc"
)

// metadata holds the RFC 7517 section 4 common parameters shared by every
// key type, kept separate from KeyMaterial so that a metadata-only change
// (setting a kid, say) never touches key bytes.
type metadata struct {
	Use     Use
	KeyOps  []KeyOp
	Alg     string
	Kid     string
	X5U     string
	X5C     []string
	X5T     string
	X5TS256 string
}

// JWK is a single JSON Web Key: RFC 7517 section 4 common parameters plus
// the key-type-specific material from RFC 7518/8037. JWK values are
// immutable: every With* method returns a new *JWK rather than mutating the
// receiver, the same pattern the teacher's DID document builders use for
// copy-on-write updates.
type JWK struct {
	material KeyMaterial
	meta     metadata
}

// NewJWK wraps material with no metadata set.
func NewJWK(material KeyMaterial) *JWK {
	return &JWK{material: material}
}

// Material returns the key-type-specific payload.
func (j *JWK) Material() KeyMaterial { return j.material }

// Kty returns the RFC 7517 section 4.1 key type.
func (j *JWK) Kty() string { return j.material.Kty() }

// IsPrivate reports whether Material carries secret key bytes.
func (j *JWK) IsPrivate() bool { return j.material.IsPrivate() }

// Use returns the RFC 7517 section 4.2 "use" value, or "" if unset.
func (j *JWK) Use() Use { return j.meta.Use }

// KeyOps returns the RFC 7517 section 4.3 "key_ops" values.
func (j *JWK) KeyOps() []KeyOp { return j.meta.KeyOps }

// Alg returns the RFC 7517 section 4.4 "alg" value, or "" if unset.
func (j *JWK) Alg() string { return j.meta.Alg }

// KeyID returns the RFC 7517 section 4.5 "kid" value, or "" if unset.
func (j *JWK) KeyID() string { return j.meta.Kid }

// cloneMeta deep-copies j's metadata, the way the metadata setters below
// build a sibling *JWK without aliasing the receiver's slices.
func (j *JWK) cloneMeta() metadata {
	var out metadata

	if err := copier.Copy(&out, &j.meta); err != nil {
		// copier.Copy only fails on mismatched, non-struct types; metadata
		// is a plain flat struct copied onto itself, so this is unreachable.
		panic(fmt.Sprintf("jwk: metadata copy: %v", err))
	}

	return out
}

// WithUse returns a copy of j with "use" set.
func (j *JWK) WithUse(use Use) *JWK {
	meta := j.cloneMeta()
	meta.Use = use

	return &JWK{material: j.material, meta: meta}
}

// WithKeyOps returns a copy of j with "key_ops" set.
func (j *JWK) WithKeyOps(ops ...KeyOp) *JWK {
	meta := j.cloneMeta()
	meta.KeyOps = append([]KeyOp(nil), ops...)

	return &JWK{material: j.material, meta: meta}
}

// WithAlg returns a copy of j with "alg" set.
func (j *JWK) WithAlg(alg string) *JWK {
	meta := j.cloneMeta()
	meta.Alg = alg

	return &JWK{material: j.material, meta: meta}
}

// WithKeyID returns a copy of j with "kid" set.
func (j *JWK) WithKeyID(kid string) *JWK {
	meta := j.cloneMeta()
	meta.Kid = kid

	return &JWK{material: j.material, meta: meta}
}

// WithX509 returns a copy of j with the RFC 7517 section 4.6-4.9 X.509
// hint fields set. This package does not validate the certificate chain;
// callers that need X.509 trust decisions must do so themselves.
func (j *JWK) WithX509(x5u string, x5c []string, x5t, x5tS256 string) *JWK {
	meta := j.cloneMeta()
	meta.X5U = x5u
	meta.X5C = append([]string(nil), x5c...)
	meta.X5T = x5t
	meta.X5TS256 = x5tS256

	return &JWK{material: j.material, meta: meta}
}

// rawJWK is the flat on-the-wire JSON object: RFC 7517 common parameters
// plus the type-specific fields from rawKeyMaterial, all as direct siblings
// because RFC 7517 section 4 requires a single flat JSON object per key.
type rawJWK struct {
	rawKeyMaterial

	Use     string   `json:"use,omitempty"`
	KeyOps  []string `json:"key_ops,omitempty"`
	Alg     string   `json:"alg,omitempty"`
	Kid     string   `json:"kid,omitempty"`
	X5U     string   `json:"x5u,omitempty"`
	X5C     []string `json:"x5c,omitempty"`
	X5T     string   `json:"x5t,omitempty"`
	X5TS256 string   `json:"x5t#S256,omitempty"`
}

// MarshalJSON implements json.Marshaler, emitting the single flat JSON
// object RFC 7517 section 4 requires.
func (j *JWK) MarshalJSON() ([]byte, error) {
	rawMaterial, err := keyMaterialToRaw(j.material)
	if err != nil {
		return nil, err
	}

	raw := rawJWK{
		rawKeyMaterial: rawMaterial,
		Use:            string(j.meta.Use),
		Alg:            j.meta.Alg,
		Kid:            j.meta.Kid,
		X5U:            j.meta.X5U,
		X5C:            j.meta.X5C,
		X5T:            j.meta.X5T,
		X5TS256:        j.meta.X5TS256,
	}

	for _, op := range j.meta.KeyOps {
		raw.KeyOps = append(raw.KeyOps, string(op))
	}

	return json.Marshal(raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JWK) UnmarshalJSON(data []byte) error {
	var raw rawJWK

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrJSONDecode, err)
	}

	material, err := rawToKeyMaterial(raw.rawKeyMaterial)
	if err != nil {
		return err
	}

	meta := metadata{
		Use:     Use(raw.Use),
		Alg:     raw.Alg,
		Kid:     raw.Kid,
		X5U:     raw.X5U,
		X5C:     raw.X5C,
		X5T:     raw.X5T,
		X5TS256: raw.X5TS256,
	}

	for _, op := range raw.KeyOps {
		meta.KeyOps = append(meta.KeyOps, KeyOp(op))
	}

	j.material = material
	j.meta = meta

	return nil
}
