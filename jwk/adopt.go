/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"
	"math/big"
)

// FromECDSAPublicKey wraps a standard library ECDSA public key.
func FromECDSAPublicKey(pub *ecdsa.PublicKey) (*JWK, error) {
	crv, err := crvFromCurve(pub.Curve)
	if err != nil {
		return nil, err
	}

	material, err := NewECPublicKey(crv, pub.X, pub.Y)
	if err != nil {
		return nil, err
	}

	return NewJWK(material), nil
}

// FromECDSAPrivateKey wraps a standard library ECDSA private key, the
// adoption path for callers that generated or loaded a key outside this
// package (e.g. via crypto/tls or an HSM-backed crypto.Signer) and need it
// expressed as a JWK.
func FromECDSAPrivateKey(priv *ecdsa.PrivateKey) (*JWK, error) {
	crv, err := crvFromCurve(priv.Curve)
	if err != nil {
		return nil, err
	}

	material, err := NewECPrivateKey(crv, priv.X, priv.Y, priv.D)
	if err != nil {
		return nil, err
	}

	return NewJWK(material), nil
}

// FromRSAPublicKey wraps a standard library RSA public key.
func FromRSAPublicKey(pub *rsa.PublicKey) *JWK {
	return NewJWK(NewRSAPublicKey(pub.N, big.NewInt(int64(pub.E))))
}

// FromRSAPrivateKey wraps a standard library RSA private key. CRT
// parameters are (re)computed via rsa.PrivateKey.Precompute if absent, the
// same reconstruction GenerateJWK performs for freshly generated keys.
func FromRSAPrivateKey(priv *rsa.PrivateKey) (*JWK, error) {
	if len(priv.Primes) != 2 {
		return nil, ErrOtherPrimesNotSupported
	}

	priv.Precompute()

	material := NewRSAPrivateKey(
		priv.N,
		big.NewInt(int64(priv.E)),
		priv.D,
		priv.Primes[0],
		priv.Primes[1],
		priv.Precomputed.Dp,
		priv.Precomputed.Dq,
		priv.Precomputed.Qinv,
		nil,
	)

	return NewJWK(material), nil
}

// FromEd25519PublicKey wraps a standard library Ed25519 public key.
func FromEd25519PublicKey(pub ed25519.PublicKey) (*JWK, error) {
	if len(pub) != ed25519.PublicKeySize {
		return nil, &InvalidSizeError{Field: "Ed25519 public key", Expected: ed25519.PublicKeySize, Actual: len(pub)}
	}

	return NewJWK(NewOKPPublicKey(Ed25519, append([]byte(nil), pub...))), nil
}

// FromEd25519PrivateKey wraps a standard library Ed25519 private key. The
// JWK "d" is the 32-byte seed, not the 64-byte expanded private key
// crypto/ed25519 uses internally.
func FromEd25519PrivateKey(priv ed25519.PrivateKey) (*JWK, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, &InvalidSizeError{Field: "Ed25519 private key", Expected: ed25519.PrivateKeySize, Actual: len(priv)}
	}

	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected Ed25519 public key type", ErrCryptoBackend)
	}

	seed := priv.Seed()

	return NewJWK(NewOKPPrivateKey(Ed25519, []byte(pub), seed)), nil
}
