// Package claims reads the payload segment of a bearer token without
// contacting the server. The signature is never checked: the token was issued
// and will be validated server-side, the client only needs the expiry hint.
package claims

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ErrMalformedToken is returned when a token does not have the expected
// three-segment structure, its payload is not valid claims data, or the
// exp claim is missing.
var ErrMalformedToken = errors.New("malformed bearer token")

// ExpiresAt decodes the exp claim of the token's payload segment.
func ExpiresAt(token string) (time.Time, error) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, fmt.Errorf("%w: expected three dot-separated segments", ErrMalformedToken)
	}

	parsed, err := jwt.ParseString(
		token,
		jwt.WithVerify(false),   // signature is the server's concern
		jwt.WithValidate(false), // expiry is judged by the caller
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if _, ok := parsed.Get(jwt.ExpirationKey); !ok {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	return parsed.Expiration(), nil
}

// Expired reports whether the token's expiry has passed at the given time.
// A token that cannot be decoded counts as expired, so a corrupted token
// can never masquerade as a valid one.
func Expired(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return true
	}
	return exp.Before(now)
}
