package sessions

// StorageKey is the single key the session record lives under.
const StorageKey = "uzera_user_session"

// UserSession is the identity triple persisted between page loads.
type UserSession struct {
	Name   string `json:"name"`   // User supplied display name, may be empty
	Email  string `json:"email"`  // Email as entered, not validated
	UserID string `json:"userId"` // usr_ + 8 hex characters derived from Email
}

// Identified reports whether the session carries enough to re-identify the user.
func (s *UserSession) Identified() bool {
	return s != nil && s.Email != "" && s.UserID != ""
}
