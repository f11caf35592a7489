package dto

import "github.com/fekuna/bao-console/internal/model"

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Email           string     `json:"email" validate:"required,email"`
	Password        string     `json:"password" validate:"required"`
	ConfirmPassword string     `json:"-"`
	Role            model.Role `json:"role" validate:"required"`
	FirstName       string     `json:"firstname" validate:"required"`
	LastName        string     `json:"lastname" validate:"required"`
	College         string     `json:"college,omitempty"`
	Program         string     `json:"program,omitempty"`
}
