package academics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/core/student"
)

var (
	ErrCardNotFound  = errors.New("progress card not found")
	ErrSheetNotFound = errors.New("attendance record not found")

	errMonthOutOfYear = errors.New("month falls outside the academic year")
	errPresentDays    = errors.New("present days cannot exceed working days")
)

// Service keeps progress cards and monthly attendance sheets.
type Service struct {
	store school.Store
	conf  *core.Config
}

func NewService(store school.Store, conf *core.Config) *Service {
	return &Service{store: store, conf: conf}
}

// RecordCard upserts a student's card for a term.
func (svc *Service) RecordCard(data NewProgressCard, actor string) (school.ProgressCard, error) {
	subjects := make([]school.SubjectMark, 0, len(data.Subjects))
	for _, s := range data.Subjects {
		subjects = append(subjects, school.SubjectMark{Subject: s.Subject, Marks: s.Marks, MaxMarks: s.MaxMarks})
	}

	var card school.ProgressCard
	err := svc.store.Update(func(doc *school.Document) error {
		stu, ok := doc.Students[data.StudentCode]
		if !ok {
			return student.ErrNotFound
		}

		card = school.ProgressCard{
			ID:          uuid.New().String(),
			StudentCode: stu.Code,
			ClassCode:   stu.Class,
			Term:        data.Term,
			Subjects:    subjects,
			Remarks:     data.Remarks,
			IssuedBy:    actor,
			IssuedAt:    time.Now().UTC(),
		}

		cards := doc.ProgressCards[stu.Class]
		for i, c := range cards {
			if c.StudentCode == stu.Code && c.Term == data.Term {
				card.ID = c.ID
				cards[i] = card
				doc.ProgressCards[stu.Class] = cards
				doc.AppendHistory(actor, "progress.record", fmt.Sprintf("updated %s card for %s", data.Term, stu.Code))
				return nil
			}
		}
		doc.ProgressCards[stu.Class] = append(cards, card)
		doc.AppendHistory(actor, "progress.record", fmt.Sprintf("issued %s card for %s", data.Term, stu.Code))
		return nil
	})
	if err != nil {
		return school.ProgressCard{}, err
	}
	return card, nil
}

func (svc *Service) CardsByClass(classCode string) ([]school.ProgressCard, error) {
	var out []school.ProgressCard
	err := svc.store.View(func(doc *school.Document) error {
		out = append(out, doc.ProgressCards[classCode]...)
		return nil
	})
	return out, err
}

func (svc *Service) CardsByStudent(code string) ([]school.ProgressCard, error) {
	var out []school.ProgressCard
	err := svc.store.View(func(doc *school.Document) error {
		if _, ok := doc.Students[code]; !ok {
			return student.ErrNotFound
		}
		for _, cards := range doc.ProgressCards {
			for _, c := range cards {
				if c.StudentCode == code {
					out = append(out, c)
				}
			}
		}
		return nil
	})
	return out, err
}

// RecordAttendance upserts the monthly sheet of one class. The month
// must fall inside the configured academic year and no entry may claim
// more present days than the sheet's working days.
func (svc *Service) RecordAttendance(data NewAttendance, actor string) (school.AttendanceRecord, error) {
	if err := svc.checkMonth(data.Month); err != nil {
		return school.AttendanceRecord{}, err
	}
	for _, e := range data.Entries {
		if e.PresentDays < 0 || e.PresentDays > data.WorkingDays {
			return school.AttendanceRecord{}, core.NewValidationError(errPresentDays, core.FieldError{
				Field: "entries",
				Error: fmt.Sprintf("%s: present days %d out of %d working days", e.StudentCode, e.PresentDays, data.WorkingDays),
			})
		}
	}

	rec := school.AttendanceRecord{
		ID:          uuid.New().String(),
		ClassCode:   data.ClassCode,
		Month:       data.Month,
		WorkingDays: data.WorkingDays,
		Entries:     data.Entries,
		RecordedBy:  actor,
		RecordedAt:  time.Now().UTC(),
	}
	err := svc.store.Update(func(doc *school.Document) error {
		sheets := doc.Attendance[data.ClassCode]
		for i, s := range sheets {
			if s.Month == data.Month {
				rec.ID = s.ID
				sheets[i] = rec
				doc.Attendance[data.ClassCode] = sheets
				doc.AppendHistory(actor, "attendance.record",
					fmt.Sprintf("updated %s sheet for class %s", data.Month, data.ClassCode))
				return nil
			}
		}
		doc.Attendance[data.ClassCode] = append(sheets, rec)
		doc.AppendHistory(actor, "attendance.record",
			fmt.Sprintf("recorded %s sheet for class %s", data.Month, data.ClassCode))
		return nil
	})
	if err != nil {
		return school.AttendanceRecord{}, err
	}
	return rec, nil
}

func (svc *Service) AttendanceByClass(classCode string) ([]school.AttendanceRecord, error) {
	var out []school.AttendanceRecord
	err := svc.store.View(func(doc *school.Document) error {
		out = append(out, doc.Attendance[classCode]...)
		return nil
	})
	return out, err
}

func (svc *Service) AttendanceByStudent(code string) ([]StudentAttendance, error) {
	var out []StudentAttendance
	err := svc.store.View(func(doc *school.Document) error {
		if _, ok := doc.Students[code]; !ok {
			return student.ErrNotFound
		}
		for _, sheets := range doc.Attendance {
			for _, s := range sheets {
				for _, e := range s.Entries {
					if e.StudentCode == code {
						out = append(out, StudentAttendance{
							Month:       s.Month,
							ClassCode:   s.ClassCode,
							PresentDays: e.PresentDays,
							WorkingDays: s.WorkingDays,
						})
					}
				}
			}
		}
		return nil
	})
	return out, err
}

func (svc *Service) checkMonth(month string) error {
	m, err := time.Parse("2006-01", month)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "month", Error: "must be a month in YYYY-MM format"})
	}
	start, end := svc.conf.YearWindow()
	if m.Before(start) || !m.Before(end) {
		return core.NewValidationError(errMonthOutOfYear, core.FieldError{
			Field: "month",
			Error: fmt.Sprintf("must fall within academic year %s", svc.conf.AcademicYear),
		})
	}
	return nil
}
