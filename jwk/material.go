/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ed25519"
	"math/big"

	"github.com/trustbloc/kms-go/util/cryptoutil"
)

// KeyMaterial is the discriminated union over the four key-type payloads
// RFC 7518/8037 define: EC, RSA, oct and OKP. It is a tagged variant, not an
// open interface meant for external implementations: Kty always reports one
// of "EC", "RSA", "oct", "OKP", and a type switch over the four concrete
// types below is exhaustive.
type KeyMaterial interface {
	// Kty returns the RFC 7517 section 4.1 key type discriminator.
	Kty() string

	// IsPrivate reports whether this value carries secret material usable
	// for signing (as opposed to only verification).
	IsPrivate() bool

	// jwkKeyMaterial is unexported: only the four types in this package may
	// implement KeyMaterial.
	jwkKeyMaterial()
}

// ECKey is EC key material: an RFC 7518 section 6.2 EC JWK.
type ECKey struct {
	Crv  Crv
	X, Y *big.Int
	d    secretBuffer // present iff private
}

// Kty implements KeyMaterial.
func (ECKey) Kty() string { return "EC" }

// IsPrivate implements KeyMaterial.
func (k ECKey) IsPrivate() bool { return k.d.Present() }

func (ECKey) jwkKeyMaterial() {}

// D returns the private scalar, or nil if this is a public-only key.
func (k ECKey) D() *big.Int {
	if !k.d.Present() {
		return nil
	}

	return new(big.Int).SetBytes(k.d.Bytes())
}

// NewECPrivateKey builds private EC key material. d is accepted as a big.Int
// whose minimal encoding fits in dBytes(crv) bytes and is re-encoded at
// exactly that width on emit; x and y are not width-checked here.
func NewECPrivateKey(crv Crv, x, y, d *big.Int) (ECKey, error) {
	if _, err := coordBytes(crv); err != nil {
		return ECKey{}, err
	}

	width, err := dBytes(crv)
	if err != nil {
		return ECKey{}, err
	}

	sized, err := NewSizedBase64Integer(d, width)
	if err != nil {
		return ECKey{}, err
	}

	return ECKey{Crv: crv, X: x, Y: y, d: newSecretBuffer(sized.Bytes())}, nil
}

// NewECPublicKey builds public-only EC key material.
func NewECPublicKey(crv Crv, x, y *big.Int) (ECKey, error) {
	if _, err := coordBytes(crv); err != nil {
		return ECKey{}, err
	}

	return ECKey{Crv: crv, X: x, Y: y}, nil
}

// RSAOtherPrime is one element of RFC 7518 section 6.3.2.7's "oth" array.
// This package never emits one, and refuses to sign with a key that carries
// one (ErrOtherPrimesNotSupported).
type RSAOtherPrime struct {
	R, D, T *big.Int
}

// RSAPrivate is the private portion of an RSA key. CRT parameters
// (P, Q, Dp, Dq, Qi) are either all present or all absent; when absent,
// signing uses plain modular exponentiation with D and N alone.
type RSAPrivate struct {
	d            secretBuffer
	p, q         secretBuffer
	dp, dq, qi   secretBuffer
	hasCRT       bool
	Oth          []RSAOtherPrime
}

// D returns the private exponent.
func (p RSAPrivate) D() *big.Int { return new(big.Int).SetBytes(p.d.Bytes()) }

// HasCRT reports whether the Chinese Remainder Theorem parameters
// (p, q, dp, dq, qi) are present.
func (p RSAPrivate) HasCRT() bool { return p.hasCRT }

// P, Q, Dp, Dq, Qi return the CRT parameters. Only meaningful if HasCRT().
func (p RSAPrivate) P() *big.Int  { return new(big.Int).SetBytes(p.p.Bytes()) }
func (p RSAPrivate) Q() *big.Int  { return new(big.Int).SetBytes(p.q.Bytes()) }
func (p RSAPrivate) Dp() *big.Int { return new(big.Int).SetBytes(p.dp.Bytes()) }
func (p RSAPrivate) Dq() *big.Int { return new(big.Int).SetBytes(p.dq.Bytes()) }
func (p RSAPrivate) Qi() *big.Int { return new(big.Int).SetBytes(p.qi.Bytes()) }

// RSAKey is RSA key material: an RFC 7518 section 6.3 RSA JWK.
type RSAKey struct {
	N    *big.Int
	E    *big.Int
	priv *RSAPrivate
}

// Kty implements KeyMaterial.
func (RSAKey) Kty() string { return "RSA" }

// IsPrivate implements KeyMaterial.
func (k RSAKey) IsPrivate() bool { return k.priv != nil }

func (RSAKey) jwkKeyMaterial() {}

// Private returns the private portion, or nil if this is a public-only key.
func (k RSAKey) Private() *RSAPrivate { return k.priv }

// NewRSAPublicKey builds public-only RSA key material.
func NewRSAPublicKey(n, e *big.Int) RSAKey {
	return RSAKey{N: n, E: e}
}

// NewRSAPrivateKey builds private RSA key material. p, q, dp, dq, qi may all
// be nil together (CRT parameters absent); supplying some but not others is
// a programmer error the caller must not make (the JSON codec enforces the
// all-or-nothing invariant on parse).
func NewRSAPrivateKey(n, e, d, p, q, dp, dq, qi *big.Int, oth []RSAOtherPrime) RSAKey {
	priv := &RSAPrivate{
		d:   newSecretBuffer(d.Bytes()),
		Oth: oth,
	}

	if p != nil && q != nil && dp != nil && dq != nil && qi != nil {
		priv.hasCRT = true
		priv.p = newSecretBuffer(p.Bytes())
		priv.q = newSecretBuffer(q.Bytes())
		priv.dp = newSecretBuffer(dp.Bytes())
		priv.dq = newSecretBuffer(dq.Bytes())
		priv.qi = newSecretBuffer(qi.Bytes())
	}

	return RSAKey{N: n, E: e, priv: priv}
}

// OctKey is symmetric key material: an RFC 7518 section 6.4 oct JWK.
type OctKey struct {
	k secretBuffer
}

// Kty implements KeyMaterial.
func (OctKey) Kty() string { return "oct" }

// IsPrivate implements KeyMaterial. Oct keys are always "private": there is
// no public projection of a shared secret.
func (k OctKey) IsPrivate() bool { return true }

func (OctKey) jwkKeyMaterial() {}

// K returns the raw octet sequence.
func (k OctKey) K() []byte { return k.k.Bytes() }

// Len reports the byte length of K().
func (k OctKey) Len() int { return len(k.k.Bytes()) }

// NewOctKey builds Oct key material from raw secret bytes.
func NewOctKey(k []byte) OctKey {
	return OctKey{k: newSecretBuffer(k)}
}

// OKPKey is Octet Key Pair material: an RFC 8037 OKP JWK.
type OKPKey struct {
	Crv OKPCrv
	X   []byte
	d   secretBuffer
}

// Kty implements KeyMaterial.
func (OKPKey) Kty() string { return "OKP" }

// IsPrivate implements KeyMaterial.
func (k OKPKey) IsPrivate() bool { return k.d.Present() }

func (OKPKey) jwkKeyMaterial() {}

// D returns the private scalar/seed, or nil if this is a public-only key.
func (k OKPKey) D() []byte {
	if !k.d.Present() {
		return nil
	}

	return k.d.Bytes()
}

// NewOKPPublicKey builds public-only OKP key material.
func NewOKPPublicKey(crv OKPCrv, x []byte) OKPKey {
	return OKPKey{Crv: crv, X: x}
}

// NewOKPPrivateKey builds private OKP key material.
func NewOKPPrivateKey(crv OKPCrv, x, d []byte) OKPKey {
	return OKPKey{Crv: crv, X: x, d: newSecretBuffer(d)}
}

// checkOKPSize enforces the fixed public-key byte width X25519 and Ed25519
// keys must have; Ed448/X448 widths are not checked.
func checkOKPSize(crv OKPCrv, x []byte) error {
	if crv == X25519 && len(x) != cryptoutil.Curve25519KeySize {
		return &InvalidSizeError{Field: "OKP x (X25519)", Expected: cryptoutil.Curve25519KeySize, Actual: len(x)}
	}

	if crv == Ed25519 && len(x) != ed25519.PublicKeySize {
		return &InvalidSizeError{Field: "OKP x (Ed25519)", Expected: ed25519.PublicKeySize, Actual: len(x)}
	}

	return nil
}
