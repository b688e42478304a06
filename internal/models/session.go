package models

// Session is the per-browser identity state. It is an explicit value
// passed into and out of the auth service; the cookie layer in the
// handlers package owns serialization.
//
// PendingRoles is only populated between an ambiguous login and role
// confirmation. Role is always one of the roles the resolver matched
// for this username at login time.
type Session struct {
	Username     string     `json:"username"`
	UserID       uint       `json:"user_id"`
	Role         UserRole   `json:"role"`
	OriginalRole UserRole   `json:"original_role"`
	PendingRoles []UserRole `json:"pending_roles,omitempty"`
}

// Authenticated reports whether a login has resolved an identity,
// regardless of whether a role has been confirmed yet.
func (s *Session) Authenticated() bool {
	return s.Username != "" && s.UserID != 0
}

// Ambiguous reports whether the session is waiting on a role choice.
func (s *Session) Ambiguous() bool {
	return s.Authenticated() && len(s.PendingRoles) > 0
}

// Clear wipes every identity field. Used on logout.
func (s *Session) Clear() {
	*s = Session{}
}
