package models

import (
	"encoding/json"
	"fmt"
)

// Role is the authorization role of a User.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// User is an authenticated identity. The password never leaves the
// login/registration request and is not part of the stored snapshot.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Credentials is the payload of POST /login/.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the payload of POST /register/.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// ProfileUpdate is the payload of PUT /users/{id}.
type ProfileUpdate struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// MarshalSnapshot serializes u for the session store.
func MarshalSnapshot(u User) ([]byte, error) {
	return json.Marshal(u)
}

// UnmarshalSnapshot restores a User written by MarshalSnapshot.
func UnmarshalSnapshot(b []byte) (*User, error) {
	var u User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("corrupted session snapshot: %w", err)
	}
	return &u, nil
}
