package board

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

type NewPost struct {
	Title     string    `json:"title" validate:"required"`
	Body      string    `json:"body" validate:"required"`
	ExpiresAt time.Time `json:"expiryDate"`
}

func (np *NewPost) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Body = core.CleanString(np.Body)
	return validate.Struct(np)
}

type NewNotification struct {
	Title     string    `json:"title" validate:"required"`
	Body      string    `json:"body" validate:"required"`
	ExpiresAt time.Time `json:"expiryDate"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.Body = core.CleanString(nn.Body)
	return validate.Struct(nn)
}
