package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"edumanage_backend/internals/features/classes/model"
	"edumanage_backend/internals/helpers/errs"
)

var validate = validator.New()

// CreateClassRequest: kelas baru selalu masuk sebagai pending dengan
// counter nol; field agregat tidak pernah diterima dari caller.
type CreateClassRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=200"`
	Description  string  `json:"description" validate:"required"`
	Image        string  `json:"image" validate:"omitempty,url"`
	Price        float64 `json:"price" validate:"gte=0"`
	TeacherName  string  `json:"teacher_name" validate:"required"`
	TeacherEmail string  `json:"teacher_email" validate:"required,email"`
	TeacherImage string  `json:"teacher_image" validate:"omitempty,url"`
}

func (r *CreateClassRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation("invalid class payload: %v", err)
	}
	return nil
}

func (r *CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Price:       r.Price,
		Teacher: model.TeacherRef{
			Name:  r.TeacherName,
			Email: r.TeacherEmail,
			Image: r.TeacherImage,
		},
		Status:           model.StatusPending,
		TotalEnrollment:  0,
		Students:         []string{},
		Assignments:      []model.AssignmentModel{},
		TotalAssignments: 0,
		CreatedAt:        time.Now(),
	}
}

// UpdateClassRequest hanya menyentuh field informasi, bukan agregat.
type UpdateClassRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func (r *UpdateClassRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation("invalid class update payload: %v", err)
	}
	return nil
}

type AddAssignmentRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" validate:"required"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

func (r *AddAssignmentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation("invalid assignment payload: %v", err)
	}
	return nil
}
