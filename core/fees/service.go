package fees

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

var (
	ErrCertNotFound = errors.New("fee certificate not found")
	ErrUnregistered = errors.New("student not registered")

	errExceedsDue  = errors.New("amount exceeds the current due")
	errNonPositive = errors.New("amount must be positive")
)

// Service is the fee ledger: it issues certificates and keeps the
// running balance of every registered student.
type Service struct {
	store school.Store
}

func NewService(store school.Store) *Service {
	return &Service{store: store}
}

// Issue records a payment: the student's due drops by exactly the
// amount paid and the certificate lands on both the global list and
// the student's own list within the same document write.
func (svc *Service) Issue(data IssueCertificate, actor string) (school.FeeCertificate, error) {
	var cert school.FeeCertificate
	err := svc.store.Update(func(doc *school.Document) error {
		stu, ok := doc.Students[data.StudentCode]
		if !ok {
			return ErrUnregistered
		}
		// guarded here too, not just in the binding: the due only
		// ever moves down
		if data.AmountPaid <= 0 {
			return core.NewValidationError(errNonPositive, core.FieldError{
				Field: "amountPaid",
				Error: "must be a positive amount",
			})
		}
		if data.AmountPaid > stu.CurrentDue {
			return core.NewValidationError(errExceedsDue, core.FieldError{
				Field: "amountPaid",
				Error: fmt.Sprintf("amount exceeds the current due of %d", stu.CurrentDue),
			})
		}

		now := time.Now().UTC()
		previousDue := stu.CurrentDue
		stu.CurrentDue -= data.AmountPaid
		stu.UpdatedAt = now
		doc.Students[stu.Code] = stu

		cert = school.FeeCertificate{
			ID:              uuid.New().String(),
			StudentCode:     stu.Code,
			StudentName:     stu.Name,
			AmountPaid:      data.AmountPaid,
			PreviousDue:     previousDue,
			RemainingDue:    previousDue - data.AmountPaid,
			TotalPaidToDate: stu.TotalPaid(),
			GeneratedBy:     actor,
			GeneratedAt:     now,
			Status:          school.CertStatusIssued,
		}
		doc.Certificates = append(doc.Certificates, cert)
		doc.StudentCerts[stu.Code] = append(doc.StudentCerts[stu.Code], cert)
		doc.AppendHistory(actor, "fees.issue",
			fmt.Sprintf("issued certificate of %d for %s, due now %d", cert.AmountPaid, stu.Code, cert.RemainingDue))
		return nil
	})
	if err != nil {
		return school.FeeCertificate{}, err
	}
	return cert, nil
}

func (svc *Service) QueryAll() ([]school.FeeCertificate, error) {
	var out []school.FeeCertificate
	err := svc.store.View(func(doc *school.Document) error {
		out = append(out, doc.Certificates...)
		return nil
	})
	return out, err
}

func (svc *Service) QueryByStudent(code string) ([]school.FeeCertificate, error) {
	var out []school.FeeCertificate
	err := svc.store.View(func(doc *school.Document) error {
		if _, ok := doc.Students[code]; !ok {
			return ErrUnregistered
		}
		out = append(out, doc.StudentCerts[code]...)
		return nil
	})
	return out, err
}

func (svc *Service) GetByID(id string) (school.FeeCertificate, error) {
	var cert school.FeeCertificate
	err := svc.store.View(func(doc *school.Document) error {
		for _, c := range doc.Certificates {
			if c.ID == id {
				cert = c
				return nil
			}
		}
		return ErrCertNotFound
	})
	return cert, err
}

// StudentSummary reports the fee position of one student.
func (svc *Service) StudentSummary(code string) (Summary, error) {
	var sum Summary
	err := svc.store.View(func(doc *school.Document) error {
		stu, ok := doc.Students[code]
		if !ok {
			return ErrUnregistered
		}
		sum = Summary{
			StudentCode:  stu.Code,
			StudentName:  stu.Name,
			TotalFee:     stu.TotalFee,
			CurrentDue:   stu.CurrentDue,
			TotalPaid:    stu.TotalPaid(),
			Certificates: len(doc.StudentCerts[code]),
		}
		return nil
	})
	return sum, err
}
