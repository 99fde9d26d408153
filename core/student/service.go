package student

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

var (
	ErrNotFound   = errors.New("student not found")
	ErrRegistered = errors.New("a student with this code is already registered")
)

// Service is the student registry.
type Service struct {
	store school.Store
	conf  *core.Config
}

func NewService(store school.Store, conf *core.Config) *Service {
	return &Service{store: store, conf: conf}
}

// Register creates the master record and assigns the canonical student
// code. Registering an already-known (code, academic year) pair is a
// conflict carrying the existing record.
func (svc *Service) Register(data NewStudent, actor string) (school.Student, error) {
	code, err := GenerateCode(svc.conf.CodePrefix(), data.Class, data.Roll)
	if err != nil {
		return school.Student{}, core.NewValidationError(err)
	}
	info, err := ParseCode(code)
	if err != nil {
		return school.Student{}, core.NewValidationError(err)
	}

	now := time.Now().UTC()
	stu := school.Student{
		Code:         code,
		Name:         data.Name,
		FatherName:   data.FatherName,
		Class:        info.ClassCode,
		Roll:         info.Roll,
		TotalFee:     data.TotalFee,
		CurrentDue:   data.TotalFee,
		AcademicYear: svc.conf.AcademicYear,
		RegisteredAt: now,
		UpdatedAt:    now,
	}

	err = svc.store.Update(func(doc *school.Document) error {
		if existing, ok := doc.Students[code]; ok && existing.AcademicYear == stu.AcademicYear {
			return core.NewConflictError(ErrRegistered, existing)
		}
		doc.Students[code] = stu
		doc.AppendHistory(actor, "student.register", fmt.Sprintf("registered %s (%s)", stu.Name, code))
		return nil
	})
	if err != nil {
		return school.Student{}, err
	}
	return stu, nil
}

func (svc *Service) GetByCode(code string) (school.Student, error) {
	var stu school.Student
	err := svc.store.View(func(doc *school.Document) error {
		s, ok := doc.Students[code]
		if !ok {
			return ErrNotFound
		}
		stu = s
		return nil
	})
	return stu, err
}

// Query lists students, optionally filtered by class and a
// case-insensitive search over name, father name and code.
func (svc *Service) Query(filter QueryFilter) ([]school.Student, error) {
	filter.Clean()
	var out []school.Student
	err := svc.store.View(func(doc *school.Document) error {
		for _, stu := range doc.Students {
			if filter.Class != "" && stu.Class != filter.Class {
				continue
			}
			if filter.Search != "" && !matches(stu, filter.Search) {
				continue
			}
			out = append(out, stu)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func matches(stu school.Student, search string) bool {
	return strings.Contains(strings.ToLower(stu.Name), search) ||
		strings.Contains(strings.ToLower(stu.FatherName), search) ||
		strings.Contains(strings.ToLower(stu.Code), search)
}

func (svc *Service) Update(code string, data UpdateStudent, actor string) (school.Student, error) {
	var updated school.Student
	err := svc.store.Update(func(doc *school.Document) error {
		stu, ok := doc.Students[code]
		if !ok {
			return ErrNotFound
		}
		if data.Name != "" {
			stu.Name = data.Name
		}
		if data.FatherName != "" {
			stu.FatherName = data.FatherName
		}
		if data.TotalFee != nil {
			delta := *data.TotalFee - stu.TotalFee
			if stu.CurrentDue+delta < 0 {
				return core.NewValidationError(
					errors.New("total fee cannot drop below the amount already paid"),
					core.FieldError{Field: "totalFee", Error: "less than amount already paid"},
				)
			}
			stu.TotalFee = *data.TotalFee
			stu.CurrentDue += delta
		}
		stu.UpdatedAt = time.Now().UTC()
		doc.Students[code] = stu
		doc.AppendHistory(actor, "student.update", fmt.Sprintf("updated %s", code))
		updated = stu
		return nil
	})
	if err != nil {
		return school.Student{}, err
	}
	return updated, nil
}

// Delete removes the master record along with the student's own
// certificate list and hall tickets. Issued certificates stay on the
// global list.
func (svc *Service) Delete(code, actor string) error {
	return svc.store.Update(func(doc *school.Document) error {
		if _, ok := doc.Students[code]; !ok {
			return ErrNotFound
		}
		delete(doc.Students, code)
		delete(doc.StudentCerts, code)
		delete(doc.HallTickets, code)
		doc.AppendHistory(actor, "student.delete", fmt.Sprintf("removed %s", code))
		return nil
	})
}
