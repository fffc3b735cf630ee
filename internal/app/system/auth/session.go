// internal/app/system/auth/session.go
package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session value keys.
const (
	isAuthKey    = "is_authenticated"
	userIDKey    = "user_id"
	userNameKey  = "user_name"
	userEmailKey = "user_email"
	userRoleKey  = "user_role"
)

// SessionResolver resolves identities from a signed session cookie.
type SessionResolver struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionResolver builds a cookie-backed resolver. key signs the
// cookie; name is the cookie name; domain may be blank for current
// host. secure should be true outside local development.
//
// An empty key gets a random ephemeral key: sessions then survive only
// for the life of the process, which is acceptable in dev and never in
// production (the config layer warns about it).
func NewSessionResolver(key, name, domain string, secure bool, logger *zap.Logger) (*SessionResolver, error) {
	var keyBytes []byte
	switch {
	case key == "":
		keyBytes = securecookie.GenerateRandomKey(32)
		if keyBytes == nil {
			return nil, errors.New("failed to generate ephemeral session key")
		}
		logger.Warn("session key not configured; using ephemeral random key")
	case len(key) < 32:
		return nil, errors.New("session key must be at least 32 bytes")
	default:
		keyBytes = []byte(key)
	}
	store := sessions.NewCookieStore(keyBytes)
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionResolver{store: store, name: name, log: logger}, nil
}

// Resolve implements Resolver.
func (s *SessionResolver) Resolve(r *http.Request) (*Identity, bool) {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		// A bad or stale cookie is treated as anonymous, not an error.
		return nil, false
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return nil, false
	}
	return &Identity{
		ID:    getString(sess, userIDKey),
		Name:  getString(sess, userNameKey),
		Email: getString(sess, userEmailKey),
		Role:  getString(sess, userRoleKey),
	}, true
}

// SaveIdentity writes the identity into the session cookie.
func (s *SessionResolver) SaveIdentity(w http.ResponseWriter, r *http.Request, id *Identity) error {
	sess, _ := s.store.Get(r, s.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = id.ID
	sess.Values[userNameKey] = id.Name
	sess.Values[userEmailKey] = id.Email
	sess.Values[userRoleKey] = id.Role
	return sess.Save(r, w)
}

// Clear drops the session.
func (s *SessionResolver) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, s.name)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

func getString(sess *sessions.Session, key string) string {
	v, _ := sess.Values[key].(string)
	return v
}

// StaticResolver always yields the same identity. Used in tests and in
// single-operator deployments where the dashboard runs behind an
// authenticating proxy.
type StaticResolver struct {
	Identity Identity
}

// Resolve implements Resolver.
func (s *StaticResolver) Resolve(*http.Request) (*Identity, bool) {
	id := s.Identity
	return &id, true
}
