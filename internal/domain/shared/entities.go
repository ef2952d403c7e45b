package shared

import "github.com/google/uuid"

// Account is the identity primitive shared by every role. The ID is assigned
// once at creation and never re-issued.
type Account struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Secret   string    `json:"-"`
}

// NewAccount creates an account with a fresh identity.
func NewAccount(username, secret string) Account {
	return Account{
		ID:       uuid.New(),
		Username: username,
		Secret:   secret,
	}
}

// User is implemented by every role resolvable by username. Role-specific
// behavior is exposed through capability interfaces, not a type hierarchy.
type User interface {
	Identity() Account
}
