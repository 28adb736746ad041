package dto

import (
	"time"

	"github.com/go-playground/validator/v10"

	"edumanage_backend/internals/features/feedback/model"
	"edumanage_backend/internals/helpers/errs"
)

var validate = validator.New()

type FeedbackRequest struct {
	ClassID     string  `json:"class_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Rating      float64 `json:"rating" validate:"gte=1,lte=5"`
	Description string  `json:"description" validate:"required"`
}

func (r *FeedbackRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation("invalid feedback payload: %v", err)
	}
	return nil
}

func (r *FeedbackRequest) ToModel() *model.FeedbackModel {
	return &model.FeedbackModel{
		ClassID:     r.ClassID,
		Name:        r.Name,
		Image:       r.Image,
		Rating:      r.Rating,
		Description: r.Description,
		CreatedAt:   time.Now(),
	}
}
