package models

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies the permission level of a [User].
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account in the library. Only admins may mutate
// folders, tracks and settings; regular users get a read-only view.
type User struct {
	id        string
	email     string
	name      string
	password  string
	role      Role
	createdAt time.Time
}

// NewUser creates a User with the given credentials and role.
// The ID is assigned by the repository on insert.
func NewUser(email, name, password string, role Role) *User {
	return &User{
		email:     strings.TrimSpace(email),
		name:      strings.TrimSpace(name),
		password:  password,
		role:      role,
		createdAt: time.Now(),
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) Password() string     { return u.password }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) SetID(id string)             { u.id = id }
func (u *User) SetRole(role Role)           { u.role = role }
func (u *User) SetCreatedAt(t time.Time)    { u.createdAt = t }
func (u *User) SetPassword(password string) { u.password = password }

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.role == RoleAdmin }

// Validate checks required fields and role membership.
func (u *User) Validate() error {
	if u.email == "" {
		return fmt.Errorf("user email is required")
	}
	if !strings.Contains(u.email, "@") {
		return fmt.Errorf("invalid email: %s", u.email)
	}
	if u.name == "" {
		return fmt.Errorf("user name is required")
	}
	if !u.role.Valid() {
		return fmt.Errorf("invalid role: %s", u.role)
	}
	return nil
}

// UserInfo is the DTO exposed to the CLI/HTTP layers. It never carries
// the stored password.
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Info converts the entity to its DTO form.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:        u.id,
		Email:     u.email,
		Name:      u.name,
		Role:      u.role,
		CreatedAt: u.createdAt,
	}
}
