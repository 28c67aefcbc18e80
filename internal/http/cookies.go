package httpx

import (
	"math"
	"net/http"
	"time"

	domainauth "github.com/ayabeauty/storefront/internal/domain/auth"
)

// SessionCookieOptions configures SessionCookies.
type SessionCookieOptions struct {
	Name   string
	MaxAge time.Duration
	Secure bool
	Domain string
	// Now overrides the clock (tests).
	Now func() time.Time
}

// SessionCookies sets and clears the admin session cookie.
// Set and Clear share one attribute builder so a browser always matches the cookie being removed.
type SessionCookies struct {
	name   string
	maxAge int
	secure bool
	domain string
	now    func() time.Time
}

// NewSessionCookies returns a cookie manager. Empty options fall back to the admin_session
// cookie with a one day lifetime.
func NewSessionCookies(opts SessionCookieOptions) *SessionCookies {
	name := opts.Name
	if name == "" {
		name = domainauth.CookieName
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = domainauth.DefaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionCookies{
		name:   name,
		maxAge: int(maxAge / time.Second),
		secure: opts.Secure,
		domain: opts.Domain,
		now:    now,
	}
}

// Name returns the cookie name.
func (c *SessionCookies) Name() string { return c.name }

// Set writes the session cookie carrying token.
func (c *SessionCookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.build(token, c.maxAge))
}

// SetSession writes the cookie for a freshly issued session. Max-Age never outlives
// the server-side record.
func (c *SessionCookies) SetSession(w http.ResponseWriter, sess domainauth.Session) {
	maxAge := c.maxAge
	if !sess.ExpiresAt.IsZero() {
		remaining := int(math.Ceil(sess.TTL(c.now()).Seconds()))
		if remaining < maxAge {
			maxAge = remaining
		}
	}
	if maxAge <= 0 {
		c.Clear(w)
		return
	}
	http.SetCookie(w, c.build(sess.Token, maxAge))
}

// Clear expires the session cookie.
func (c *SessionCookies) Clear(w http.ResponseWriter) {
	ck := c.build("", -1)
	ck.Expires = time.Unix(0, 0).UTC()
	http.SetCookie(w, ck)
}

// Token returns the session token carried by r, or "" when the cookie is absent.
func (c *SessionCookies) Token(r *http.Request) string {
	ck, err := r.Cookie(c.name)
	if err != nil {
		return ""
	}
	return ck.Value
}

func (c *SessionCookies) build(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
