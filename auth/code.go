package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strconv"

	"github.com/goliatone/go-errors"
)

var codeRange = big.NewInt(900000)

// GenerateCode returns a uniformly random six digit verification code in
// [100000, 999999], drawn from crypto/rand.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeRange)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate verification code")
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// CodeMatches compares a submitted code against the stored one in
// constant time.
func CodeMatches(stored, submitted string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}
