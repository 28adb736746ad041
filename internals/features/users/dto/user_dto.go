package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"edumanage_backend/internals/features/users/model"
	"edumanage_backend/internals/helpers/errs"
)

var validate = validator.New()

// LoginRequest adalah payload upsert-on-login dari layer request.
type LoginRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Email  string `json:"email" validate:"required,email"`
	Image  string `json:"image" validate:"omitempty,url"`
	Role   string `json:"role" validate:"required,oneof=student teacher admin"`
	Status string `json:"status" validate:"omitempty,oneof=Requested Accepted Rejected"`
}

func (r *LoginRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation("invalid login payload: %v", err)
	}
	return nil
}

func (r *LoginRequest) ToModel() *model.UserModel {
	return &model.UserModel{
		Name:      r.Name,
		Email:     r.Email,
		Image:     r.Image,
		Role:      r.Role,
		Status:    r.Status,
		CreatedAt: time.Now(),
	}
}

// UpdateRoleRequest mengganti role (dan status) user by email.
type UpdateRoleRequest struct {
	Role   string `json:"role" validate:"required,oneof=student teacher admin"`
	Status string `json:"status" validate:"omitempty,oneof=Requested Accepted Rejected"`
}

func (r *UpdateRoleRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation("invalid role update payload: %v", err)
	}
	return nil
}
