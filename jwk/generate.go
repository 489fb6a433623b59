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
	"io"
	"math/big"

	"golang.org/x/crypto/curve25519"
)

// KeyGenParam selects the key type and size GenerateJWK produces. The four
// concrete types mirror KeyMaterial's four variants one for one.
type KeyGenParam interface {
	keyGenParam()
}

// ECGenParam generates an EC key on the given curve.
type ECGenParam struct {
	Crv Crv
}

func (ECGenParam) keyGenParam() {}

// RSAGenParam generates an RSA key of SizeBits modulus size. The public
// exponent is always 65537 (F4), the value crypto/rsa.GenerateKey itself
// always uses.
type RSAGenParam struct {
	SizeBits int
}

func (RSAGenParam) keyGenParam() {}

// OctGenParam generates N random octets.
type OctGenParam struct {
	N int
}

func (OctGenParam) keyGenParam() {}

// OKPGenParam generates an OKP key pair on the given curve. Only Ed25519 and
// X25519 are implemented; Ed448 and X448 fail with ErrAlgorithmMismatch.
type OKPGenParam struct {
	Crv OKPCrv
}

func (OKPGenParam) keyGenParam() {}

// GenerateJWK generates fresh key material per param, reading randomness
// from rnd (pass crypto/rand.Reader in production; tests may substitute a
// deterministic source).
func GenerateJWK(rnd io.Reader, param KeyGenParam) (*JWK, error) {
	switch p := param.(type) {
	case ECGenParam:
		return generateEC(rnd, p.Crv)
	case RSAGenParam:
		return generateRSA(rnd, p.SizeBits)
	case OctGenParam:
		return generateOct(rnd, p.N)
	case OKPGenParam:
		return generateOKP(rnd, p.Crv)
	default:
		return nil, fmt.Errorf("%w: unknown KeyGenParam %T", ErrJSONShape, param)
	}
}

// generateEC draws a fresh ECDSA key. ecdsa.GenerateKey never actually
// returns the point at infinity for NIST curves, but the retry loop below
// matches the defensive pattern the teacher's key-generation helpers use
// around ecdsa.GenerateKey and logs the (practically unreachable) retry.
func generateEC(rnd io.Reader, crv Crv) (*JWK, error) {
	curve, err := ellipticCurve(crv)
	if err != nil {
		return nil, err
	}

	const maxAttempts = 3

	var priv *ecdsa.PrivateKey

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		priv, err = ecdsa.GenerateKey(curve, rnd)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
		}

		if priv.X.Sign() != 0 || priv.Y.Sign() != 0 {
			break
		}

		logger.Printf("generateEC: drew point at infinity on attempt %d, retrying", attempt)
	}

	if priv.X.Sign() == 0 && priv.Y.Sign() == 0 {
		return nil, fmt.Errorf("%w: point at infinity after %d attempts", ErrCryptoBackend, maxAttempts)
	}

	material, err := NewECPrivateKey(crv, priv.X, priv.Y, priv.D)
	if err != nil {
		return nil, err
	}

	return NewJWK(material), nil
}

// generateRSA draws a fresh RSA key and emits full CRT parameters.
// crypto/rsa.GenerateKey always fixes E at 65537.
func generateRSA(rnd io.Reader, sizeBits int) (*JWK, error) {
	if sizeBits < 2048 {
		return nil, &InvalidSizeError{Field: "RSA modulus bits", Expected: 2048, Actual: sizeBits}
	}

	priv, err := rsa.GenerateKey(rnd, sizeBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
	}

	priv.Precompute()

	if len(priv.Primes) != 2 {
		return nil, ErrOtherPrimesNotSupported
	}

	p, q := priv.Primes[0], priv.Primes[1]

	material := NewRSAPrivateKey(
		priv.N,
		big.NewInt(int64(priv.E)),
		priv.D,
		p, q,
		priv.Precomputed.Dp,
		priv.Precomputed.Dq,
		priv.Precomputed.Qinv,
		nil,
	)

	return NewJWK(material), nil
}

// generateOct draws n random octets.
func generateOct(rnd io.Reader, n int) (*JWK, error) {
	if n <= 0 {
		return nil, &InvalidSizeError{Field: "oct key length", Expected: 1, Actual: n}
	}

	k := make([]byte, n)

	if _, err := io.ReadFull(rnd, k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
	}

	return NewJWK(NewOctKey(k)), nil
}

// generateOKP draws a fresh OKP key pair. Ed25519 uses crypto/ed25519
// directly; X25519 derives its public point via golang.org/x/crypto/curve25519
// from a clamped random seed, grounded on the RFC 7748 clamping every X25519
// keypair must apply before deriving its public point.
func generateOKP(rnd io.Reader, crv OKPCrv) (*JWK, error) {
	switch crv {
	case Ed25519:
		pub, priv, err := ed25519.GenerateKey(rnd)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
		}

		// ed25519.PrivateKey is the 32-byte seed followed by the 32-byte
		// public key; the JWK "d" is the seed alone.
		seed := priv.Seed()

		return NewJWK(NewOKPPrivateKey(Ed25519, []byte(pub), seed)), nil

	case X25519:
		seed := make([]byte, curve25519.ScalarSize)
		if _, err := io.ReadFull(rnd, seed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
		}

		seed[0] &= 248
		seed[31] &= 127
		seed[31] |= 64

		pub, err := curve25519.X25519(seed, curve25519.Basepoint)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
		}

		return NewJWK(NewOKPPrivateKey(X25519, pub, seed)), nil

	default:
		return nil, fmt.Errorf("%w: generation not implemented for OKP curve %q", ErrAlgorithmMismatch, crv)
	}
}
