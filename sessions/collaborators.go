package sessions

import "context"

// Traits is the user data forwarded alongside the user id.
type Traits struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identifier is notified when a session is established or restored.
type Identifier interface {
	Identify(ctx context.Context, userID string, traits Traits) error
}

// IdentifierFunc adapts a function to Identifier.
type IdentifierFunc func(ctx context.Context, userID string, traits Traits) error

func (f IdentifierFunc) Identify(ctx context.Context, userID string, traits Traits) error {
	return f(ctx, userID, traits)
}

// Display is whatever shows the current user (avatar, name banner).
type Display interface {
	ShowUser(name, email, userID string)
	Reset()
}
