package model

import "strings"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// EntityData is the role-specific profile attached to a session.
type EntityData struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	College   string `json:"college,omitempty"`
	Program   string `json:"program,omitempty"`
}

// User is the identity held by a session.
type User struct {
	UserID     int64       `json:"user_id"`
	Email      string      `json:"email"`
	Role       Role        `json:"role"`
	EntityID   *int64      `json:"entity_id"`
	EntityData *EntityData `json:"entity_data"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.EntityData != nil {
		if name := strings.TrimSpace(u.EntityData.FirstName + " " + u.EntityData.LastName); name != "" {
			return name
		}
	}
	return u.Email
}
