package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"math/big"
)

// GenerateQRToken returns a URL-safe token with n bytes of entropy, encoded
// as unpadded base64 so it can be embedded in a query string as-is.
func GenerateQRToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ConstantTimeEquals compares two tokens without leaking the position of the
// first differing byte.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

const referralAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode uses an alphabet without easily confused characters
// because members share these codes verbally.
func GenerateReferralCode(n uint) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = referralAlphabet[RandIntn(len(referralAlphabet))]
	}
	return string(b)
}

// RandIntn returns a uniform random value in [0, n). It panics if got a
// non-positive parameter.
func RandIntn(n int) int {
	r, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(r.Int64())
}
