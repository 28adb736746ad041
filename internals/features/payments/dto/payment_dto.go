package dto

import (
	"github.com/go-playground/validator/v10"

	"edumanage_backend/internals/helpers/errs"
)

var validate = validator.New()

// PaymentRequest datang dari layer request setelah pembayaran settle di
// gateway; detail integrasi gateway bukan urusan core ini.
type PaymentRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	ClassID string  `json:"class_id" validate:"required"`
	Amount  float64 `json:"amount" validate:"gt=0"`
}

func (r *PaymentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errs.Validation("invalid payment payload: %v", err)
	}
	return nil
}
