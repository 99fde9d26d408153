package academics

import (
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

type NewSubjectMark struct {
	Subject  string `json:"subject" validate:"required"`
	Marks    int    `json:"marks" validate:"gte=0"`
	MaxMarks int    `json:"maxMarks" validate:"required,gtefield=Marks"`
}

// NewProgressCard upserts one student's report for a term.
type NewProgressCard struct {
	StudentCode string           `json:"studentCode" validate:"required"`
	Term        string           `json:"term" validate:"required"`
	Subjects    []NewSubjectMark `json:"subjects" validate:"required,min=1,dive"`
	Remarks     string           `json:"remarks"`
}

func (np *NewProgressCard) Validate(validate *validator.Validate) error {
	np.StudentCode = core.CleanString(np.StudentCode)
	np.Term = core.CleanString(np.Term, true /* lower */)
	for i := range np.Subjects {
		np.Subjects[i].Subject = core.CleanString(np.Subjects[i].Subject)
	}
	return validate.Struct(np)
}

// NewAttendance upserts the monthly sheet of one class.
type NewAttendance struct {
	ClassCode   string                   `json:"classCode" validate:"required,classcode"`
	Month       string                   `json:"month" validate:"required,acadmonth"`
	WorkingDays int                      `json:"workingDays" validate:"required,gte=1,lte=31"`
	Entries     []school.AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

func (na *NewAttendance) Validate(validate *validator.Validate) error {
	na.ClassCode = core.CleanString(na.ClassCode, true /* lower */)
	na.Month = core.CleanString(na.Month)
	return validate.Struct(na)
}

// StudentAttendance is the per-student view across monthly sheets.
type StudentAttendance struct {
	Month       string `json:"month"`
	ClassCode   string `json:"classCode"`
	PresentDays int    `json:"presentDays"`
	WorkingDays int    `json:"workingDays"`
}
