/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"math/big"

	jose "github.com/go-jose/go-jose/v3"
)

// JWSAlg identifies a JWS signing algorithm by its RFC 7518 section 3.1
// "alg" name. Reusing go-jose's typed constants keeps this package's
// algorithm identifiers interoperable with the wider JOSE ecosystem instead
// of inventing parallel string constants.
type JWSAlg = jose.SignatureAlgorithm

// Supported signing algorithms.
const (
	None  JWSAlg = "none"
	HS256 JWSAlg = jose.HS256
	HS384 JWSAlg = jose.HS384
	HS512 JWSAlg = jose.HS512
	RS256 JWSAlg = jose.RS256
	RS384 JWSAlg = jose.RS384
	RS512 JWSAlg = jose.RS512
	PS256 JWSAlg = jose.PS256
	PS384 JWSAlg = jose.PS384
	PS512 JWSAlg = jose.PS512
	ES256 JWSAlg = jose.ES256
	ES384 JWSAlg = jose.ES384
	ES512 JWSAlg = jose.ES512
	EdDSA JWSAlg = jose.EdDSA
)

// minKeyBits is the minimum RSA modulus size, in bits, this package will
// sign or verify with: n >= 2^2040, i.e. a modulus of at least 2041 bits.
// Keys below this are rejected by CheckJWK regardless of which algorithm
// they are used with.
const minKeyBits = 2041

// minOctBytes is the minimum oct key length, in bytes, this package will
// sign or verify with under CheckJWK and BestJWSAlg: a 256-bit symmetric
// floor shared across all HMAC variants.
const minOctBytes = 32

// Sign produces a raw JWS signature (not a compact-serialized JWS; callers
// building a full JWS compose header.payload and base64url-encode the
// result themselves) over msg using material under alg.
func Sign(alg JWSAlg, material KeyMaterial, msg []byte) ([]byte, error) {
	if alg != None && !material.IsPrivate() {
		return nil, fmt.Errorf("%w: cannot sign with a public-only key", ErrKeyMismatch)
	}

	switch alg {
	case None:
		return nil, nil

	case HS256, HS384, HS512:
		oct, ok := material.(OctKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an oct key, got %s", ErrKeyMismatch, alg, material.Kty())
		}

		return hmacSign(alg, oct, msg)

	case RS256, RS384, RS512, PS256, PS384, PS512:
		rsaKey, ok := material.(RSAKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an RSA key, got %s", ErrKeyMismatch, alg, material.Kty())
		}

		return rsaSign(alg, rsaKey, msg)

	case ES256, ES384, ES512:
		ecKey, ok := material.(ECKey)
		if !ok {
			return nil, fmt.Errorf("%w: %s requires an EC key, got %s", ErrKeyMismatch, alg, material.Kty())
		}

		return ecdsaSign(alg, ecKey, msg)

	case EdDSA:
		okp, ok := material.(OKPKey)
		if !ok || okp.Crv == X25519 {
			return nil, fmt.Errorf("%w: EdDSA requires an Ed25519 OKP key", ErrKeyMismatch)
		}

		if okp.Crv != Ed25519 {
			return nil, fmt.Errorf("%w: no EdDSA primitive for OKP curve %q", ErrAlgorithmMismatch, okp.Crv)
		}

		return ed25519.Sign(ed25519.NewKeyFromSeed(okp.D()), msg), nil

	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrAlgorithmMismatch, alg)
	}
}

// Verify reports whether sig is a valid signature over msg under material
// and alg. It never returns an error for a bad signature: a mismatched
// algorithm/key-type pairing and a forged signature both simply report
// false, the same boolean-return shape RFC 7515 verification has.
func Verify(alg JWSAlg, material KeyMaterial, msg, sig []byte) bool {
	switch alg {
	case None:
		return len(sig) == 0

	case HS256, HS384, HS512:
		oct, ok := material.(OctKey)
		if !ok {
			return false
		}

		expected, err := hmacSign(alg, oct, msg)
		if err != nil {
			return false
		}

		return hmac.Equal(expected, sig)

	case RS256, RS384, RS512, PS256, PS384, PS512:
		rsaKey, ok := material.(RSAKey)
		if !ok {
			return false
		}

		return rsaVerify(alg, rsaKey, msg, sig)

	case ES256, ES384, ES512:
		ecKey, ok := material.(ECKey)
		if !ok {
			return false
		}

		return ecdsaVerify(alg, ecKey, msg, sig)

	case EdDSA:
		okp, ok := material.(OKPKey)
		if !ok || okp.Crv != Ed25519 {
			return false
		}

		return ed25519.Verify(ed25519.PublicKey(okp.X), msg, sig)

	default:
		return false
	}
}

func hmacSign(alg JWSAlg, key OctKey, msg []byte) ([]byte, error) {
	newHash, err := hmacNewHash(alg)
	if err != nil {
		return nil, err
	}

	if size := newHash().Size(); key.Len() < size {
		return nil, fmt.Errorf("%w: %s needs an oct key of at least %d bytes, got %d", ErrKeySizeTooSmall, alg, size, key.Len())
	}

	mac := hmac.New(newHash, key.K())
	mac.Write(msg)

	return mac.Sum(nil), nil
}

func hmacNewHash(alg JWSAlg) (func() hash.Hash, error) {
	switch alg {
	case HS256:
		return sha256.New, nil
	case HS384:
		return sha512.New384, nil
	case HS512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q is not an HMAC algorithm", ErrAlgorithmMismatch, alg)
	}
}

func rsaHash(alg JWSAlg) (crypto.Hash, error) {
	switch alg {
	case RS256, PS256:
		return crypto.SHA256, nil
	case RS384, PS384:
		return crypto.SHA384, nil
	case RS512, PS512:
		return crypto.SHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q is not an RSA algorithm", ErrAlgorithmMismatch, alg)
	}
}

func hashMessage(h crypto.Hash, msg []byte) []byte {
	switch h {
	case crypto.SHA256:
		sum := sha256.Sum256(msg)
		return sum[:]
	case crypto.SHA384:
		sum := sha512.Sum384(msg)
		return sum[:]
	default:
		sum := sha512.Sum512(msg)
		return sum[:]
	}
}

func rsaSign(alg JWSAlg, key RSAKey, msg []byte) ([]byte, error) {
	h, err := rsaHash(alg)
	if err != nil {
		return nil, err
	}

	if key.N.BitLen() < minKeyBits {
		return nil, fmt.Errorf("%w: RSA modulus is %d bits, need at least %d", ErrKeySizeTooSmall, key.N.BitLen(), minKeyBits)
	}

	if len(key.Private().Oth) > 0 {
		return nil, ErrOtherPrimesNotSupported
	}

	priv := rsaPrivateKey(key)
	digest := hashMessage(h, msg)

	switch alg {
	case PS256, PS384, PS512:
		return rsa.SignPSS(rand.Reader, priv, h, digest, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
	default:
		return rsa.SignPKCS1v15(rand.Reader, priv, h, digest)
	}
}

func rsaVerify(alg JWSAlg, key RSAKey, msg, sig []byte) bool {
	h, err := rsaHash(alg)
	if err != nil {
		return false
	}

	if key.N.BitLen() < minKeyBits {
		return false
	}

	// oth (multi-prime) is a private-key-only concern: verification only ever
	// touches N/E, so a public key (or a private key whose oth this package
	// would refuse to sign with) still verifies correctly.
	pub := &rsa.PublicKey{N: key.N, E: int(key.E.Int64())}
	digest := hashMessage(h, msg)

	switch alg {
	case PS256, PS384, PS512:
		return rsa.VerifyPSS(pub, h, digest, sig, &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash}) == nil
	default:
		return rsa.VerifyPKCS1v15(pub, h, digest, sig) == nil
	}
}

// rsaPrivateKey reconstructs a *rsa.PrivateKey from key, calling Precompute
// so CRT-based signing is as fast as a key that natively carried p/q/dp/dq/qi.
func rsaPrivateKey(key RSAKey) *rsa.PrivateKey {
	priv := key.Private()

	out := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{N: key.N, E: int(key.E.Int64())},
		D:         priv.D(),
	}

	// Without CRT parameters, crypto/rsa falls back to plain modular
	// exponentiation using D and N alone (no Primes, no Precompute call):
	// slower, but correct, per RFC 7518 section 6.3.2's note that CRT
	// parameters are an optional performance optimization.
	if priv.HasCRT() {
		out.Primes = []*big.Int{priv.P(), priv.Q()}
		out.Precompute()
	}

	return out
}

func ecdsaCurveHash(alg JWSAlg) (Crv, crypto.Hash, error) {
	switch alg {
	case ES256:
		return P256, crypto.SHA256, nil
	case ES384:
		return P384, crypto.SHA384, nil
	case ES512:
		return P521, crypto.SHA512, nil
	default:
		return "", 0, fmt.Errorf("%w: %q is not an EC algorithm", ErrAlgorithmMismatch, alg)
	}
}

func ecdsaSign(alg JWSAlg, key ECKey, msg []byte) ([]byte, error) {
	crv, h, err := ecdsaCurveHash(alg)
	if err != nil {
		return nil, err
	}

	if key.Crv != crv {
		return nil, fmt.Errorf("%w: %s requires curve %s, key has %s", ErrAlgorithmMismatch, alg, crv, key.Crv)
	}

	curve, err := ellipticCurve(key.Crv)
	if err != nil {
		return nil, err
	}

	priv := &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{Curve: curve, X: key.X, Y: key.Y},
		D:         key.D(),
	}

	digest := hashMessage(h, msg)

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCryptoBackend, err)
	}

	width, err := coordBytes(crv)
	if err != nil {
		return nil, err
	}

	// RFC 7518 section 3.4: the signature is R || S, each fixed-width, never
	// ASN.1 DER.
	sig := make([]byte, 2*width)
	r.FillBytes(sig[:width])
	s.FillBytes(sig[width:])

	return sig, nil
}

func ecdsaVerify(alg JWSAlg, key ECKey, msg, sig []byte) bool {
	crv, h, err := ecdsaCurveHash(alg)
	if err != nil || key.Crv != crv {
		return false
	}

	curve, err := ellipticCurve(key.Crv)
	if err != nil {
		return false
	}

	width, err := coordBytes(crv)
	if err != nil || len(sig) != 2*width {
		return false
	}

	r := new(big.Int).SetBytes(sig[:width])
	s := new(big.Int).SetBytes(sig[width:])

	pub := &ecdsa.PublicKey{Curve: curve, X: key.X, Y: key.Y}
	digest := hashMessage(h, msg)

	return ecdsa.Verify(pub, digest, r, s)
}

// CheckJWK applies the minimum-strength and malformed-key hardening checks:
// RSA moduli below minKeyBits are rejected, RSA public exponents must be odd
// and not 1, EC points must lie on their declared curve, and oct keys must
// be at least minOctBytes long. Sign and Verify do not call it; they enforce
// only the RSA modulus floor and the per-algorithm HMAC key length.
func CheckJWK(material KeyMaterial) error {
	switch k := material.(type) {
	case RSAKey:
		if k.N.BitLen() < minKeyBits {
			return fmt.Errorf("%w: RSA modulus is %d bits, need at least %d", ErrKeySizeTooSmall, k.N.BitLen(), minKeyBits)
		}

		if k.E.Bit(0) == 0 || k.E.Cmp(big.NewInt(1)) == 0 {
			return fmt.Errorf("%w: RSA public exponent must be odd and greater than 1", ErrJSONShape)
		}

	case ECKey:
		curve, err := ellipticCurve(k.Crv)
		if err != nil {
			return err
		}

		if !curve.IsOnCurve(k.X, k.Y) {
			return fmt.Errorf("%w: EC point is not on curve %s", ErrJSONShape, k.Crv)
		}

	case OctKey:
		if k.Len() < minOctBytes {
			return fmt.Errorf("%w: oct key is %d bytes, need at least %d", ErrKeySizeTooSmall, k.Len(), minOctBytes)
		}
	}

	return nil
}

// BestJWSAlg picks the strongest signing algorithm a key admits, ignoring
// the key's own "alg" field: EC by curve, RSA always PS512, Oct the largest
// HMAC digest that fits within the key length, OKP Ed25519 always EdDSA.
// It fails with ErrKeySizeTooSmall for RSA and oct keys below the size
// floors CheckJWK also enforces; CheckJWK's RSA exponent and EC on-curve
// checks are not applied here.
func BestJWSAlg(material KeyMaterial) (JWSAlg, error) {
	switch k := material.(type) {
	case ECKey:
		switch k.Crv {
		case P256:
			return ES256, nil
		case P384:
			return ES384, nil
		case P521:
			return ES512, nil
		default:
			return "", fmt.Errorf("%w: no JWS algorithm for curve %q", ErrAlgorithmMismatch, k.Crv)
		}

	case RSAKey:
		if k.N.BitLen() < minKeyBits {
			return "", fmt.Errorf("%w: RSA modulus is %d bits, need at least %d", ErrKeySizeTooSmall, k.N.BitLen(), minKeyBits)
		}

		return PS512, nil

	case OctKey:
		switch {
		case k.Len() < minOctBytes:
			return "", fmt.Errorf("%w: oct key is %d bytes, need at least %d", ErrKeySizeTooSmall, k.Len(), minOctBytes)
		case k.Len() >= sha512.Size:
			return HS512, nil
		case k.Len() >= sha512.Size384:
			return HS384, nil
		default:
			return HS256, nil
		}

	case OKPKey:
		if k.Crv == Ed25519 {
			return EdDSA, nil
		}

		if k.Crv == X25519 {
			return "", fmt.Errorf("%w: cannot sign with ECDH key (X25519)", ErrKeyMismatch)
		}

		return "", fmt.Errorf("%w: no JWS algorithm for OKP curve %q", ErrAlgorithmMismatch, k.Crv)

	default:
		return "", fmt.Errorf("%w: unknown KeyMaterial implementation %T", ErrJSONShape, material)
	}
}
