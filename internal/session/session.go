package session

import (
	"net/http"
)

// Session carries the authentication context of one inbound browser request.
// It is built by the session middleware on every request (and by the auth
// handler on login), passed explicitly to whatever forwards the request, and
// discarded when the request completes. Logout clears the browser cookie, so
// the next request simply builds an empty session.
type Session struct {
	// CookieHeader is the raw inbound Cookie header, forwarded verbatim to the
	// backend. Individual cookie values are never parsed or validated here;
	// the backend is the authority on session validity.
	CookieHeader string

	// Token is the value of the named session cookie, if present. Only used
	// to decide whether a request is authenticated at all.
	Token string
}

// FromRequest extracts the session context from an inbound request.
func FromRequest(r *http.Request, cookieName string) Session {
	s := Session{CookieHeader: r.Header.Get("Cookie")}
	if c, err := r.Cookie(cookieName); err == nil {
		s.Token = c.Value
	}
	return s
}

// Authenticated reports whether the browser presented the session cookie.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// ContextKey is the gin context key the session middleware stores the session under.
const ContextKey = "gatewaySession"
