/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import "github.com/awnumar/memguard"

// secretBuffer holds private key material (an EC/OKP "d", an RSA private
// exponent, or a symmetric "k") in memory that is locked against swapping and
// wiped on Destroy, the same discipline bryk-io-pkg/crypto/ed25519 and
// crypto/x25519 apply to their KeyPair.lb field.
//
// A zero-value secretBuffer (nil enclave) behaves as an absent secret: Bytes
// returns nil, Destroy is a no-op.
type secretBuffer struct {
	lb *memguard.LockedBuffer
}

// newSecretBuffer copies b into a locked buffer and wipes the caller's copy.
// Passing a nil or empty b yields an absent secretBuffer.
func newSecretBuffer(b []byte) secretBuffer {
	if len(b) == 0 {
		return secretBuffer{}
	}

	lb := memguard.NewBufferFromBytes(b)
	memguard.WipeBytes(b)

	return secretBuffer{lb: lb}
}

// Bytes returns the secret's current plaintext bytes. The returned slice
// aliases the locked buffer; callers must not retain it past the secret's
// lifetime and must not mutate it.
func (s secretBuffer) Bytes() []byte {
	if s.lb == nil {
		return nil
	}

	return s.lb.Bytes()
}

// Present reports whether a secret is actually held.
func (s secretBuffer) Present() bool {
	return s.lb != nil && !s.lb.IsClosed()
}

// clone copies the secret into a fresh locked buffer that shares no memory
// with s.
func (s secretBuffer) clone() secretBuffer {
	if !s.Present() {
		return secretBuffer{}
	}

	cp := make([]byte, len(s.Bytes()))
	copy(cp, s.Bytes())

	return newSecretBuffer(cp)
}

// Destroy releases the locked memory. Safe to call on an absent secretBuffer
// or to call more than once.
func (s secretBuffer) Destroy() {
	if s.lb != nil {
		s.lb.Destroy()
	}
}
