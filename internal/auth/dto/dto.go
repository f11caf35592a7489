package dto

import "github.com/fekuna/bao-console/internal/model"

type LoginResult struct {
	Message   string     `json:"message"`
	SessionID string     `json:"session_id"`
	User      model.User `json:"user"`
}

type RegisteredUser struct {
	ID       int64      `json:"id"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
	EntityID *int64     `json:"entity_id"`
}

type RegisterResult struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}
