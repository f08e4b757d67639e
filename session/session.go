// Package session owns the client-side session lifecycle: one persisted
// session record, the store it lives in, the manager that decides when a
// held credential is usable, and the watchdog that polls for expiry.
package session

import "github.com/gowtham404/bookstore-auth-go/authapi"

// Session is the single unit of persisted client state: the identity record
// and both bearer tokens. The access token is short-lived and replaced in
// place on renewal; the refresh token and user never change for the life of
// the session.
type Session struct {
	User         authapi.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// complete reports whether the record is whole. A partial record must never
// surface; it is treated as absent by the stores.
func (s *Session) complete() bool {
	return s != nil && s.AccessToken != "" && s.RefreshToken != ""
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	return &copied
}
