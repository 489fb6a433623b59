/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"fmt"
	"math/big"
)

// rawOtherPrime mirrors RFC 7518 section 6.3.2.7's "oth" array element. Field
// names match the RFC's single-letter members, the same flattening the
// bigdata-memory-jwkset reference's OtherPrimes struct uses.
type rawOtherPrime struct {
	R string `json:"r,omitempty"`
	D string `json:"d,omitempty"`
	T string `json:"t,omitempty"`
}

// rawKeyMaterial is the flat, on-the-wire JSON shape for the union of all
// four key types: all defined RFC 7517/7518/8037 key-parameter fields live
// as siblings at the top level, never nested, matching the flattening both
// the teacher's jwk.JWK and the bigdata-memory-jwkset JWKMarshal struct use.
type rawKeyMaterial struct {
	Kty string `json:"kty,omitempty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	D   string `json:"d,omitempty"`
	N   string `json:"n,omitempty"`
	E   string `json:"e,omitempty"`
	K   string `json:"k,omitempty"`
	P   string `json:"p,omitempty"`
	Q   string `json:"q,omitempty"`
	DP  string `json:"dp,omitempty"`
	DQ  string `json:"dq,omitempty"`
	QI  string `json:"qi,omitempty"`
	Oth []rawOtherPrime `json:"oth,omitempty"`
}

// keyMaterialToRaw flattens material's fields into the wire shape.
func keyMaterialToRaw(material KeyMaterial) (rawKeyMaterial, error) {
	var raw rawKeyMaterial

	switch k := material.(type) {
	case ECKey:
		width, err := coordBytes(k.Crv)
		if err != nil {
			return rawKeyMaterial{}, err
		}

		x, err := NewSizedBase64Integer(k.X, width)
		if err != nil {
			return rawKeyMaterial{}, err
		}

		y, err := NewSizedBase64Integer(k.Y, width)
		if err != nil {
			return rawKeyMaterial{}, err
		}

		raw.Kty = "EC"
		raw.Crv = string(k.Crv)
		raw.X = x.Encode()
		raw.Y = y.Encode()

		if k.IsPrivate() {
			dWidth, err := dBytes(k.Crv)
			if err != nil {
				return rawKeyMaterial{}, err
			}

			d, err := NewSizedBase64Integer(k.D(), dWidth)
			if err != nil {
				return rawKeyMaterial{}, err
			}

			raw.D = d.Encode()
		}

	case RSAKey:
		raw.Kty = "RSA"
		raw.N = NewBase64Integer(k.N).Encode()
		raw.E = NewBase64Integer(k.E).Encode()

		if k.IsPrivate() {
			priv := k.Private()
			raw.D = NewBase64Integer(priv.D()).Encode()

			if priv.HasCRT() {
				raw.P = NewBase64Integer(priv.P()).Encode()
				raw.Q = NewBase64Integer(priv.Q()).Encode()
				raw.DP = NewBase64Integer(priv.Dp()).Encode()
				raw.DQ = NewBase64Integer(priv.Dq()).Encode()
				raw.QI = NewBase64Integer(priv.Qi()).Encode()
			}

			for _, o := range priv.Oth {
				raw.Oth = append(raw.Oth, rawOtherPrime{
					R: NewBase64Integer(o.R).Encode(),
					D: NewBase64Integer(o.D).Encode(),
					T: NewBase64Integer(o.T).Encode(),
				})
			}
		}

	case OctKey:
		raw.Kty = "oct"
		raw.K = Base64Octets(k.K()).Encode()

	case OKPKey:
		raw.Kty = "OKP"
		raw.Crv = string(k.Crv)
		raw.X = Base64Octets(k.X).Encode()

		if k.IsPrivate() {
			raw.D = Base64Octets(k.D()).Encode()
		}

	default:
		return rawKeyMaterial{}, fmt.Errorf("%w: unknown KeyMaterial implementation %T", ErrJSONShape, material)
	}

	return raw, nil
}

// rawToKeyMaterial dispatches on raw.Kty to build typed KeyMaterial,
// delegating to the per-kty parsers. This is a tagged-variant switch, not an
// alternative-parse chain: kty is read first and used to pick exactly one
// path, per Design Note 1.
func rawToKeyMaterial(raw rawKeyMaterial) (KeyMaterial, error) {
	switch raw.Kty {
	case "EC":
		return parseECKey(raw)
	case "RSA":
		return parseRSAKey(raw)
	case "oct":
		return parseOctKey(raw)
	case "OKP":
		return parseOKPKey(raw)
	case "":
		return nil, fmt.Errorf("%w: missing \"kty\"", ErrJSONShape)
	default:
		return nil, fmt.Errorf("%w: unsupported kty %q", ErrJSONShape, raw.Kty)
	}
}

func parseECKey(raw rawKeyMaterial) (KeyMaterial, error) {
	if raw.X == "" || raw.Y == "" || raw.Crv == "" {
		return nil, fmt.Errorf("%w: EC requires crv, x and y", ErrJSONShape)
	}

	crv := Crv(raw.Crv)

	width, err := coordBytes(crv)
	if err != nil {
		return nil, err
	}

	x, err := ParseSizedBase64Integer(raw.X)
	if err != nil {
		return nil, err
	}

	if err := x.CheckSize("x", width); err != nil {
		return nil, err
	}

	y, err := ParseSizedBase64Integer(raw.Y)
	if err != nil {
		return nil, err
	}

	if err := y.CheckSize("y", width); err != nil {
		return nil, err
	}

	if raw.D == "" {
		return NewECPublicKey(crv, x.Int(), y.Int())
	}

	dWidth, err := dBytes(crv)
	if err != nil {
		return nil, err
	}

	d, err := ParseSizedBase64Integer(raw.D)
	if err != nil {
		return nil, err
	}

	if err := d.CheckSize("d", dWidth); err != nil {
		return nil, err
	}

	return NewECPrivateKey(crv, x.Int(), y.Int(), d.Int())
}

func parseRSAKey(raw rawKeyMaterial) (KeyMaterial, error) {
	if raw.N == "" || raw.E == "" {
		return nil, fmt.Errorf("%w: RSA requires n and e", ErrJSONShape)
	}

	n, err := ParseBase64Integer(raw.N)
	if err != nil {
		return nil, err
	}

	e, err := ParseBase64Integer(raw.E)
	if err != nil {
		return nil, err
	}

	if raw.D == "" {
		return NewRSAPublicKey(n.Int(), e.Int()), nil
	}

	d, err := ParseBase64Integer(raw.D)
	if err != nil {
		return nil, err
	}

	crtFields := []string{raw.P, raw.Q, raw.DP, raw.DQ, raw.QI}

	present := 0

	for _, f := range crtFields {
		if f != "" {
			present++
		}
	}

	if present != 0 && present != len(crtFields) {
		return nil, fmt.Errorf("%w: RSA CRT parameters must be all present or all absent", ErrJSONShape)
	}

	var p, q, dp, dq, qi *big.Int

	if present == len(crtFields) {
		pv, err := ParseBase64Integer(raw.P)
		if err != nil {
			return nil, err
		}

		qv, err := ParseBase64Integer(raw.Q)
		if err != nil {
			return nil, err
		}

		dpv, err := ParseBase64Integer(raw.DP)
		if err != nil {
			return nil, err
		}

		dqv, err := ParseBase64Integer(raw.DQ)
		if err != nil {
			return nil, err
		}

		qiv, err := ParseBase64Integer(raw.QI)
		if err != nil {
			return nil, err
		}

		p, q, dp, dq, qi = pv.Int(), qv.Int(), dpv.Int(), dqv.Int(), qiv.Int()
	}

	var oth []RSAOtherPrime

	for i, o := range raw.Oth {
		rv, err := ParseBase64Integer(o.R)
		if err != nil {
			return nil, fmt.Errorf("oth[%d].r: %w", i, err)
		}

		dv, err := ParseBase64Integer(o.D)
		if err != nil {
			return nil, fmt.Errorf("oth[%d].d: %w", i, err)
		}

		tv, err := ParseBase64Integer(o.T)
		if err != nil {
			return nil, fmt.Errorf("oth[%d].t: %w", i, err)
		}

		oth = append(oth, RSAOtherPrime{R: rv.Int(), D: dv.Int(), T: tv.Int()})
	}

	return NewRSAPrivateKey(n.Int(), e.Int(), d.Int(), p, q, dp, dq, qi, oth), nil
}

func parseOctKey(raw rawKeyMaterial) (KeyMaterial, error) {
	if raw.K == "" {
		return nil, fmt.Errorf("%w: oct requires k", ErrJSONShape)
	}

	k, err := ParseBase64Octets(raw.K)
	if err != nil {
		return nil, err
	}

	return NewOctKey(k), nil
}

func parseOKPKey(raw rawKeyMaterial) (KeyMaterial, error) {
	if raw.Crv == "" || raw.X == "" {
		return nil, fmt.Errorf("%w: OKP requires crv and x", ErrJSONShape)
	}

	x, err := ParseBase64Octets(raw.X)
	if err != nil {
		return nil, err
	}

	crv := OKPCrv(raw.Crv)

	if err := checkOKPSize(crv, x); err != nil {
		return nil, err
	}

	if raw.D == "" {
		return NewOKPPublicKey(crv, x), nil
	}

	d, err := ParseBase64Octets(raw.D)
	if err != nil {
		return nil, err
	}

	return NewOKPPrivateKey(crv, x, d), nil
}
