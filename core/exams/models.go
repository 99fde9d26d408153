package exams

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// NewHallTicket admits one student to one exam session.
type NewHallTicket struct {
	StudentCode string    `json:"studentCode" validate:"required"`
	ExamSession string    `json:"examSession" validate:"required"`
	ExamCentre  string    `json:"examCentre"`
	ExpiresAt   time.Time `json:"expiryDate"`
}

func (nh *NewHallTicket) Validate(validate *validator.Validate) error {
	nh.StudentCode = core.CleanString(nh.StudentCode)
	nh.ExamSession = core.CleanString(nh.ExamSession)
	nh.ExamCentre = core.CleanString(nh.ExamCentre)
	return validate.Struct(nh)
}
