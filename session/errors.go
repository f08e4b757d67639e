package session

import "errors"

var (
	// ErrStorageUnavailable wraps failures of the persistence medium. The
	// triggering operation cannot complete without a place to keep the
	// session, so the error is fatal to it, never to the process.
	ErrStorageUnavailable = errors.New("session storage unavailable")

	// ErrVerificationRequired is returned by Login when the server accepts
	// the credentials but the account has not verified its email address.
	// No session is persisted in that case.
	ErrVerificationRequired = errors.New("user account is not verified")

	// ErrRefreshFailed wraps the gateway cause of a failed renewal. The
	// stored session is left intact; whether to force a logout is the
	// caller's decision, since a transient network fault should not destroy
	// a still-valid refresh token.
	ErrRefreshFailed = errors.New("access token renewal failed")

	// ErrSessionCleared is returned when a renewal completed after the
	// session had been cleared underneath it. The renewal result is
	// discarded; the clear wins.
	ErrSessionCleared = errors.New("session cleared during renewal")

	// ErrNoSession is returned by operations that need a stored session
	// when none exists.
	ErrNoSession = errors.New("no session")
)
