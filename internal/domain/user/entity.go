package user

import (
	"fmt"
)

// User is the identity-provider view of an account.
// It is resolved on demand and never persisted by this service.
type User struct {
	id        UserID
	email     Email
	username  string
	firstName string
	lastName  string
}

// NewUser creates a User resolved from the identity provider.
// Email is optional: accounts created through an OAuth provider may not expose one.
func NewUser(id, email, username string) (*User, error) {
	userID, err := ParseUserID(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	u := &User{
		id:       userID,
		username: username,
	}

	if email != "" {
		emailVO, err := NewEmail(email)
		if err != nil {
			return nil, fmt.Errorf("invalid email: %w", err)
		}
		u.email = emailVO
	}

	return u, nil
}

// WithName sets the display name parts
func (u *User) WithName(firstName, lastName string) *User {
	u.firstName = firstName
	u.lastName = lastName
	return u
}

// Getters

func (u *User) ID() UserID {
	return u.id
}

func (u *User) Email() Email {
	return u.email
}

func (u *User) Username() string {
	return u.username
}

func (u *User) FirstName() string {
	return u.firstName
}

func (u *User) LastName() string {
	return u.lastName
}

// String returns string representation (for debugging)
func (u *User) String() string {
	return fmt.Sprintf("User{id: %s, email: %s, username: %s}",
		u.id.String(), u.email.String(), u.username)
}
