package assignment

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

type NewQuestion struct {
	Text          string   `json:"text" validate:"required"`
	Options       []string `json:"options" validate:"len=4,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required,answerkey"`
}

type NewAssignment struct {
	ClassCode string        `json:"classCode" validate:"required,classcode"`
	Title     string        `json:"title" validate:"required"`
	Subject   string        `json:"subject"`
	Questions []NewQuestion `json:"questions" validate:"required,min=1,dive"`
	ExpiresAt time.Time     `json:"expiryDate"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.ClassCode = core.CleanString(na.ClassCode, true /* lower */)
	na.Title = core.CleanString(na.Title)
	na.Subject = core.CleanString(na.Subject)
	for i := range na.Questions {
		na.Questions[i].Text = core.CleanString(na.Questions[i].Text)
		na.Questions[i].CorrectAnswer = core.CleanString(na.Questions[i].CorrectAnswer, true /* lower */)
	}
	return validate.Struct(na)
}

// Submission is one student's answer sheet; answers map positionally
// onto the assignment's questions.
type Submission struct {
	StudentCode string   `json:"studentCode" validate:"required"`
	Answers     []string `json:"answers" validate:"required,min=1,dive,answerkey"`
}

func (s *Submission) Validate(validate *validator.Validate) error {
	s.StudentCode = core.CleanString(s.StudentCode)
	for i := range s.Answers {
		s.Answers[i] = core.CleanString(s.Answers[i], true /* lower */)
	}
	return validate.Struct(s)
}
