package session

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// The stored blob is an HS256-signed JWT whose private claim carries the
// record. Signing is not secrecy — the record is readable — it is an
// integrity check: a blob the current key did not produce loads as absent.

type recordClaims struct {
	Record *Record `json:"portal"`
	jwt.RegisteredClaims
}

var errEnvelopeInvalid = errors.New("session envelope invalid")

// Encode wraps a validated record in a signed envelope.
func Encode(rec *Record, key []byte) (string, error) {
	if err := rec.validate(); err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", errors.New("signing key required")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, recordClaims{
		Record: rec,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: rec.ID,
		},
	})
	return token.SignedString(key)
}

// Decode verifies an envelope and returns the embedded record. Any parse,
// signature, or record-shape failure collapses into errEnvelopeInvalid; the
// store maps that to absence.
func Decode(blob string, key []byte) (*Record, error) {
	claims := &recordClaims{}
	token, err := jwt.ParseWithClaims(blob, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, errEnvelopeInvalid
	}

	if claims.Record == nil || claims.Record.validate() != nil {
		return nil, errEnvelopeInvalid
	}
	return claims.Record, nil
}
