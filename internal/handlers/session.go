package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/nfu-im/internship-service/internal/models"
)

const sessionName = "internship-session"

// SessionStore bridges the cookie layer and the explicit Session value
// the services operate on. Only primitive values go into the cookie so
// the codec stays stable across releases.
type SessionStore struct {
	store *sessions.CookieStore
}

func NewSessionStore(secret string) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   86400,
	}
	return &SessionStore{store: store}
}

// Load decodes the cookie into a Session. A missing or undecodable
// cookie yields an empty Session, never an error; the caller treats
// that as "not logged in".
func (s *SessionStore) Load(c *gin.Context) *models.Session {
	raw, err := s.store.Get(c.Request, sessionName)
	if err != nil {
		return &models.Session{}
	}

	sess := &models.Session{}
	if username, ok := raw.Values["username"].(string); ok {
		sess.Username = username
	}
	if userID, ok := raw.Values["user_id"].(uint); ok {
		sess.UserID = userID
	}
	if role, ok := raw.Values["role"].(string); ok {
		sess.Role = models.UserRole(role)
	}
	if original, ok := raw.Values["original_role"].(string); ok {
		sess.OriginalRole = models.UserRole(original)
	}
	if pending, ok := raw.Values["pending_roles"].(string); ok && pending != "" {
		for _, part := range strings.Split(pending, ",") {
			sess.PendingRoles = append(sess.PendingRoles, models.UserRole(part))
		}
	}
	return sess
}

// Save writes the Session back into the cookie.
func (s *SessionStore) Save(c *gin.Context, sess *models.Session) error {
	raw, _ := s.store.Get(c.Request, sessionName)

	pending := make([]string, len(sess.PendingRoles))
	for i, role := range sess.PendingRoles {
		pending[i] = string(role)
	}

	raw.Values["username"] = sess.Username
	raw.Values["user_id"] = sess.UserID
	raw.Values["role"] = string(sess.Role)
	raw.Values["original_role"] = string(sess.OriginalRole)
	raw.Values["pending_roles"] = strings.Join(pending, ",")

	return raw.Save(c.Request, c.Writer)
}

// Drop expires the cookie immediately.
func (s *SessionStore) Drop(c *gin.Context) error {
	raw, _ := s.store.Get(c.Request, sessionName)
	raw.Options.MaxAge = -1
	raw.Values = map[interface{}]interface{}{}
	return raw.Save(c.Request, c.Writer)
}
