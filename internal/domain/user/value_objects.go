package user

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// UserID is a value object holding the identity-provider (Clerk) user identifier.
// It is the primary key of every row this service stores for a user.
type UserID struct {
	value string
}

// ParseUserID parses a string into a UserID
func ParseUserID(id string) (UserID, error) {
	id = strings.TrimSpace(id)

	if id == "" {
		return UserID{}, fmt.Errorf("user ID cannot be empty")
	}

	if len(id) > 255 {
		return UserID{}, fmt.Errorf("user ID too long (max 255 characters)")
	}

	return UserID{value: id}, nil
}

// MustParseUserID is like ParseUserID but panics on invalid input
func MustParseUserID(id string) UserID {
	uid, err := ParseUserID(id)
	if err != nil {
		panic(err)
	}
	return uid
}

func (id UserID) String() string {
	return id.value
}

func (id UserID) IsZero() bool {
	return id.value == ""
}

func (id UserID) Equals(other UserID) bool {
	return id.value == other.value
}

// Email is a value object representing a valid email address
type Email struct {
	value string
}

// NewEmail creates a new Email with validation
func NewEmail(email string) (Email, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" {
		return Email{}, fmt.Errorf("email cannot be empty")
	}

	if len(email) > 255 {
		return Email{}, fmt.Errorf("email too long (max 255 characters)")
	}

	if !emailRegex.MatchString(email) {
		return Email{}, fmt.Errorf("invalid email format")
	}

	return Email{value: email}, nil
}

func (e Email) String() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}

func (e Email) Equals(other Email) bool {
	return e.value == other.value
}
