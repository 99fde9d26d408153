package fees

import (
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// IssueCertificate is one payment against a student's balance.
type IssueCertificate struct {
	StudentCode string `json:"studentCode" validate:"required"`
	AmountPaid  int    `json:"amountPaid" validate:"required,gt=0"`
}

func (ic *IssueCertificate) Validate(validate *validator.Validate) error {
	ic.StudentCode = core.CleanString(ic.StudentCode)
	return validate.Struct(ic)
}

// Summary is the fee position of one student.
type Summary struct {
	StudentCode  string `json:"studentCode"`
	StudentName  string `json:"studentName"`
	TotalFee     int    `json:"totalFee"`
	CurrentDue   int    `json:"currentDue"`
	TotalPaid    int    `json:"totalPaid"`
	Certificates int    `json:"certificates"`
}
