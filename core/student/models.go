package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// NewStudent contains the information needed to register a student.
type NewStudent struct {
	Name       string `json:"studentName" validate:"required"`
	FatherName string `json:"fatherName" validate:"required"`
	Class      string `json:"studentClass" validate:"required,classcode"`
	Roll       string `json:"studentRoll" validate:"required,numeric"`
	TotalFee   int    `json:"totalFee" validate:"gte=0"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.FatherName = core.CleanString(ns.FatherName)
	ns.Class = core.CleanString(ns.Class, true /* lower */)
	ns.Roll = core.CleanString(ns.Roll)
	return validate.Struct(ns)
}

// UpdateStudent defines what may be modified on an existing record.
// Fee corrections move TotalFee and CurrentDue together so the amount
// already paid is preserved.
type UpdateStudent struct {
	Name       string `json:"studentName"`
	FatherName string `json:"fatherName"`
	TotalFee   *int   `json:"totalFee" validate:"omitempty,gte=0"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.FatherName = core.CleanString(us.FatherName)
	return validate.Struct(us)
}

type QueryFilter struct {
	Class  string `query:"class"`
	Search string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Class = core.CleanString(qf.Class, true /* lower */)
	qf.Search = core.CleanString(qf.Search, true /* lower */)
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Class == "" && qf.Search == ""
}
