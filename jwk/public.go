/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

// AsPublicKey projects material onto its public-only form. For oct keys
// there is no public projection (a shared secret has no public half), so ok
// is false and material is returned unchanged.
func AsPublicKey(material KeyMaterial) (pub KeyMaterial, ok bool) {
	switch k := material.(type) {
	case ECKey:
		public, err := NewECPublicKey(k.Crv, k.X, k.Y)
		if err != nil {
			return material, false
		}

		return public, true

	case RSAKey:
		return NewRSAPublicKey(k.N, k.E), true

	case OKPKey:
		return NewOKPPublicKey(k.Crv, append([]byte(nil), k.X...)), true

	case OctKey:
		return material, false

	default:
		return material, false
	}
}

// PublicJWK returns a copy of j with Material projected to its public-only
// form via AsPublicKey, and all metadata preserved. ok is false (and the
// receiver's own material is kept) for key types with no public projection.
func (j *JWK) PublicJWK() (pub *JWK, ok bool) {
	material, ok := AsPublicKey(j.material)
	if !ok {
		return j, false
	}

	return &JWK{material: material, meta: j.cloneMeta()}, true
}
