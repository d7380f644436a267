// Package identity abstracts the external identity provider. The core
// only reads the user id and email off an authenticated identity; it
// never manages sessions or credentials.
package identity

import "context"

// User is the resolved identity attached to a request. A nil *User
// means the caller is anonymous, which is fine for guest checkout.
type User struct {
	ID    string
	Email string
	Admin bool
}

// Provider resolves a bearer token to a user.
type Provider interface {
	// UserFromToken returns the user for a token, nil when the token is
	// unknown, or an error when the provider itself is unreachable.
	UserFromToken(ctx context.Context, token string) (*User, error)
}

// StaticProvider resolves tokens from a fixed map, standing in for the
// hosted identity service during development and tests.
type StaticProvider struct {
	users map[string]User
}

func NewStatic(users map[string]User) *StaticProvider {
	return &StaticProvider{users: users}
}

func (p *StaticProvider) UserFromToken(_ context.Context, token string) (*User, error) {
	u, ok := p.users[token]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
