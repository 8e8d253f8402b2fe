package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("user account is disabled")
	ErrUserNotFound       = errors.New("user not found")
)

type User struct {
	ID        uint
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      Role
	Enabled   bool
	CreatedAt time.Time
}

type RegisterParams struct {
	Email     string
	Password  string
	Username  string
	FirstName string
	LastName  string
}

// AuthResult is what both register and login hand back to the transport.
type AuthResult struct {
	UserID    uint
	Token     string
	Email     string
	Username  string
	FirstName string
	LastName  string
}
