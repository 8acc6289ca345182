// Package session maps a signed-in account onto a gorilla cookie session.
package session

import (
	"crypto/sha256"
	"net/http"

	"accounts/config"
	"accounts/internal/domain/entity"
	"accounts/internal/errors"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// Session value keys.
const (
	KeyAccountID = "account_id"
	KeyUsername  = "username"
	KeyName      = "name"
)

// Binder stores only the account id, username and display name in the session.
// Everything else is looked up through the usecases.
type Binder struct {
	cookieName string
	options    sessions.Options
}

// NewBinder builds a Binder whose cookie lifetime follows the session config.
func NewBinder(cfg *config.Config) *Binder {
	return &Binder{
		cookieName: cfg.Session.CookieName,
		options: sessions.Options{
			Path:     "/",
			MaxAge:   int(cfg.Session.MaxAge.Seconds()),
			Secure:   cfg.Session.Secure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// NewStore builds the cookie store the session middleware reads from. Cookies are
// signed with the configured secret and encrypted with a key derived from it.
func NewStore(cfg *config.Config) sessions.Store {
	blockKey := sha256.Sum256([]byte("cookie-encryption:" + cfg.Session.Secret))
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret), blockKey[:])

	opts := NewBinder(cfg).options
	store.Options = &opts
	store.MaxAge(opts.MaxAge)

	return store
}

// Middleware installs the store on every request.
func Middleware(store sessions.Store) echo.MiddlewareFunc {
	return echosession.Middleware(store)
}

// Bind writes the account's identity into sess and restarts the inactivity timeout.
func (b *Binder) Bind(sess *sessions.Session, account *entity.Account) {
	opts := b.options
	sess.Options = &opts
	sess.Values[KeyAccountID] = account.ID.String()
	sess.Values[KeyUsername] = account.Username
	sess.Values[KeyName] = account.Name
}

// CurrentAccountID returns the bound account, or false for an anonymous or
// tampered session.
func (b *Binder) CurrentAccountID(sess *sessions.Session) (uuid.UUID, bool) {
	raw, ok := sess.Values[KeyAccountID].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}

	return id, true
}

// Clear drops every value and expires the cookie.
func (b *Binder) Clear(sess *sessions.Session) {
	for key := range sess.Values {
		delete(sess.Values, key)
	}
	opts := b.options
	opts.MaxAge = -1
	sess.Options = &opts
}

// Load returns the request's session. A cookie that fails verification yields a
// fresh, empty session.
func (b *Binder) Load(c echo.Context) (*sessions.Session, error) {
	sess, err := echosession.Get(b.cookieName, c)
	if sess != nil {
		return sess, nil
	}

	return nil, errors.Wrap(err, "load session")
}

func (b *Binder) save(c echo.Context, sess *sessions.Session) error {
	return errors.Wrap(sess.Save(c.Request(), c.Response()), "save session")
}

// SignIn binds account to the request's session and writes the cookie.
func (b *Binder) SignIn(c echo.Context, account *entity.Account) error {
	sess, err := b.Load(c)
	if err != nil {
		return err
	}
	b.Bind(sess, account)

	return b.save(c, sess)
}

// Refresh rewrites the stored identity after a profile change.
func (b *Binder) Refresh(c echo.Context, account *entity.Account) error {
	return b.SignIn(c, account)
}

// Touch re-saves the session so the inactivity timeout starts over.
func (b *Binder) Touch(c echo.Context, sess *sessions.Session) error {
	opts := b.options
	sess.Options = &opts

	return b.save(c, sess)
}

// SignOut clears the request's session and expires its cookie.
func (b *Binder) SignOut(c echo.Context) error {
	sess, err := b.Load(c)
	if err != nil {
		return err
	}
	b.Clear(sess)

	return b.save(c, sess)
}

// AccountID reads the bound account from the request's session.
func (b *Binder) AccountID(c echo.Context) (uuid.UUID, bool) {
	sess, err := b.Load(c)
	if err != nil {
		return uuid.Nil, false
	}

	return b.CurrentAccountID(sess)
}
