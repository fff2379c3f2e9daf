// Package session wraps the cookie session with typed accessors for the
// three things the app keeps per client: the anti-forgery state token, the
// authenticated identity, and one-shot notices for the next rendered page.
package session

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	keyState    = "state"
	keyUserID   = "user_id"
	keyName     = "username"
	keyEmail    = "email"
	keyPicture  = "picture"
	keyProvider = "provider"
	keySubject  = "subject"
)

// Identity is the transient, per-client copy of the authenticated user.
// Nothing here outlives the session; the catalog store owns the rows.
type Identity struct {
	UserID   uint
	Name     string
	Email    string
	Picture  string
	Provider string

	// Subject is the provider-assigned account id, used only to detect a
	// repeated login with the same account.
	Subject string
}

// SetState stores a fresh anti-forgery token for the next login attempt.
func SetState(c *gin.Context, state string) error {
	s := sessions.Default(c)
	s.Set(keyState, state)
	return s.Save()
}

// State returns the stored anti-forgery token, or "" when none was issued.
func State(c *gin.Context) string {
	state, _ := sessions.Default(c).Get(keyState).(string)
	return state
}

// Login marks the session authenticated. This is the OAuth bridge's single
// commit point for session state.
func Login(c *gin.Context, id Identity) error {
	s := sessions.Default(c)
	s.Set(keyUserID, id.UserID)
	s.Set(keyName, id.Name)
	s.Set(keyEmail, id.Email)
	s.Set(keyPicture, id.Picture)
	s.Set(keyProvider, id.Provider)
	s.Set(keySubject, id.Subject)
	return s.Save()
}

// Current returns the authenticated identity, if any.
func Current(c *gin.Context) (Identity, bool) {
	s := sessions.Default(c)
	userID, ok := s.Get(keyUserID).(uint)
	if !ok {
		return Identity{}, false
	}
	id := Identity{UserID: userID}
	id.Name, _ = s.Get(keyName).(string)
	id.Email, _ = s.Get(keyEmail).(string)
	id.Picture, _ = s.Get(keyPicture).(string)
	id.Provider, _ = s.Get(keyProvider).(string)
	id.Subject, _ = s.Get(keySubject).(string)
	return id, true
}

// Clear wipes all identity fields unconditionally and reports whether the
// session was authenticated beforehand. The report only changes messaging,
// never control flow.
func Clear(c *gin.Context) (bool, error) {
	s := sessions.Default(c)
	_, wasLoggedIn := s.Get(keyUserID).(uint)
	for _, key := range []string{keyUserID, keyName, keyEmail, keyPicture, keyProvider, keySubject, keyState} {
		s.Delete(key)
	}
	return wasLoggedIn, s.Save()
}

// Notify queues a one-shot notice shown on the next rendered page.
func Notify(c *gin.Context, message string) {
	s := sessions.Default(c)
	s.AddFlash(message)
	_ = s.Save()
}

// Notices drains the queued notices.
func Notices(c *gin.Context) []string {
	s := sessions.Default(c)
	flashes := s.Flashes()
	if len(flashes) > 0 {
		_ = s.Save()
	}
	notices := make([]string, 0, len(flashes))
	for _, flash := range flashes {
		if message, ok := flash.(string); ok {
			notices = append(notices, message)
		}
	}
	return notices
}
