/*
Copyright the jwkcore contributors.

SPDX-License-Identifier: Apache-2.0
*/

package jwk_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jwk/jwkcore/jwk"
)

// RFC 7517 Appendix A.1/A.2/C example keys (public values only, reused
// across these tests purely as realistic well-formed fixtures).
const (
	ecPublicJWK = `{
		"kty": "EC",
		"crv": "P-256",
		"x": "MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4",
		"y": "4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFGU"
	}`

	rsaPublicJWK = `{
		"kty": "RSA",
		"n": "0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",
		"e": "AQAB"
	}`

	octKeyJWK = `{"kty": "oct", "k": "GawgguFyGrWKav7AX4VKUg"}`

	okpPublicJWK = `{
		"kty": "OKP",
		"crv": "Ed25519",
		"x": "11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo"
	}`
)

func TestJWKRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		json string
		kty  string
	}{
		{"EC public", ecPublicJWK, "EC"},
		{"RSA public", rsaPublicJWK, "RSA"},
		{"oct", octKeyJWK, "oct"},
		{"OKP public", okpPublicJWK, "OKP"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := &jwk.JWK{}
			require.NoError(t, json.Unmarshal([]byte(tc.json), parsed))
			require.Equal(t, tc.kty, parsed.Kty())
			require.False(t, parsed.IsPrivate() && tc.kty != "oct")

			out, err := json.Marshal(parsed)
			require.NoError(t, err)

			reparsed := &jwk.JWK{}
			require.NoError(t, json.Unmarshal(out, reparsed))
			require.Equal(t, tc.kty, reparsed.Kty())
		})
	}
}

func TestJWKMetadata(t *testing.T) {
	parsed := &jwk.JWK{}
	require.NoError(t, json.Unmarshal([]byte(ecPublicJWK), parsed))

	withKid := parsed.WithKeyID("key-1").WithUse(jwk.UseSig).WithAlg("ES256")

	require.Empty(t, parsed.KeyID(), "original value must not be mutated")
	require.Equal(t, "key-1", withKid.KeyID())
	require.Equal(t, jwk.UseSig, withKid.Use())
	require.Equal(t, "ES256", withKid.Alg())

	out, err := json.Marshal(withKid)
	require.NoError(t, err)
	require.Contains(t, string(out), `"kid":"key-1"`)
}

func TestRSAPrivateKeyWithoutCRT(t *testing.T) {
	raw := `{
		"kty": "RSA",
		"n": "0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",
		"e": "AQAB",
		"d": "X4cTteJY_gn4FYPsXB8rdXix5vwsg1FLN5E3EaG6RJoVH-HLLKD9M7dx5oo7GURknchnrRweUkC7hT5fJLM0WbFAKNLWY2vv7B6NqXSzUvxT0_YSfqijwp3RTzlBaCxWp4doFk5N2o8Gy_nHNKroADIkJ46pRUohsXywbReAdYaMwFs9tv8d_cPVY3i07a3t8MN6TNwm0dSawm9v47UiCl3Sk5ZiG7xojPLu4sbg1U2jx4IBTNBznbJSzFHK66jT8bgkuqsk0GjskDJk19Z4qwjwbsnn4j2WBii3RL-Us2lGVkY8fkFzme1z0HbIkfz0Y6mqnOYtqc0X4jfcKoAC8Q"
	}`

	parsed := &jwk.JWK{}
	require.NoError(t, json.Unmarshal([]byte(raw), parsed))

	rsaKey, ok := parsed.Material().(jwk.RSAKey)
	require.True(t, ok)
	require.True(t, rsaKey.IsPrivate())
	require.False(t, rsaKey.Private().HasCRT())
}

func TestRSACRTMustBeAllOrNothing(t *testing.T) {
	raw := `{
		"kty": "RSA",
		"n": "0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",
		"e": "AQAB",
		"d": "X4cTteJY_gn4FYPsXB8rdXix5vwsg1FLN5E3EaG6RJoVH-HLLKD9M7dx5oo7GURknchnrRweUkC7hT5fJLM0WbFAKNLWY2vv7B6NqXSzUvxT0_YSfqijwp3RTzlBaCxWp4doFk5N2o8Gy_nHNKroADIkJ46pRUohsXywbReAdYaMwFs9tv8d_cPVY3i07a3t8MN6TNwm0dSawm9v47UiCl3Sk5ZiG7xojPLu4sbg1U2jx4IBTNBznbJSzFHK66jT8bgkuqsk0GjskDJk19Z4qwjwbsnn4j2WBii3RL-Us2lGVkY8fkFzme1z0HbIkfz0Y6mqnOYtqc0X4jfcKoAC8Q",
		"p": "83i-7IvMGXoMXCskv73TKr8637FIotaPkaz2PmnPxeA7VX-DErVD8i5gT_sM5eLvbfdPApwU1Xg5k6xIRblB22UNsvwFcsvL6gJTnjcw-anPbBBKOBsnDuScGxXaA_kM1z3e40XpUAXxP3qNCdLsNvw6vgH5s1Y0aXtdOHzSZg8"
	}`

	parsed := &jwk.JWK{}
	require.Error(t, json.Unmarshal([]byte(raw), parsed))
}
