package exams

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
	ErrTicketNotFound = errors.New("hall ticket not found")

	errDuplicateTicket = errors.New("a hall ticket for this exam session already exists")
)

type Service struct {
	store school.Store
}

func NewService(store school.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Issue(data NewHallTicket, actor string) (school.HallTicket, error) {
	var ticket school.HallTicket
	err := svc.store.Update(func(doc *school.Document) error {
		stu, ok := doc.Students[data.StudentCode]
		if !ok {
			return student.ErrNotFound
		}
		for _, t := range doc.HallTickets[stu.Code] {
			if t.ExamSession == data.ExamSession {
				return core.NewConflictError(errDuplicateTicket, t)
			}
		}

		ticket = school.HallTicket{
			ID:          uuid.New().String(),
			StudentCode: stu.Code,
			StudentName: stu.Name,
			ClassCode:   stu.Class,
			Roll:        stu.Roll,
			ExamSession: data.ExamSession,
			ExamCentre:  data.ExamCentre,
			ExpiresAt:   data.ExpiresAt,
			IssuedBy:    actor,
			IssuedAt:    time.Now().UTC(),
		}
		doc.HallTickets[stu.Code] = append(doc.HallTickets[stu.Code], ticket)
		doc.AppendHistory(actor, "hallticket.issue",
			fmt.Sprintf("issued %s ticket for %s", data.ExamSession, stu.Code))
		return nil
	})
	if err != nil {
		return school.HallTicket{}, err
	}
	return ticket, nil
}

// QueryByStudent sweeps expired tickets out (persisting the sweep)
// before returning the student's remaining tickets.
func (svc *Service) QueryByStudent(code string) ([]school.HallTicket, error) {
	var out []school.HallTicket
	err := svc.store.Update(func(doc *school.Document) error {
		if _, ok := doc.Students[code]; !ok {
			return student.ErrNotFound
		}
		doc.SweepHallTickets(time.Now().UTC())
		out = append(out, doc.HallTickets[code]...)
		return nil
	})
	return out, err
}

func (svc *Service) QueryByClass(classCode string) ([]school.HallTicket, error) {
	var out []school.HallTicket
	err := svc.store.Update(func(doc *school.Document) error {
		doc.SweepHallTickets(time.Now().UTC())
		for _, tickets := range doc.HallTickets {
			for _, t := range tickets {
				if t.ClassCode == classCode {
					out = append(out, t)
				}
			}
		}
		return nil
	})
	return out, err
}

func (svc *Service) Delete(id, actor string) error {
	return svc.store.Update(func(doc *school.Document) error {
		for code, tickets := range doc.HallTickets {
			for i, t := range tickets {
				if t.ID == id {
					doc.HallTickets[code] = append(tickets[:i], tickets[i+1:]...)
					doc.AppendHistory(actor, "hallticket.delete",
						fmt.Sprintf("revoked %s ticket for %s", t.ExamSession, t.StudentCode))
					return nil
				}
			}
		}
		return ErrTicketNotFound
	})
}
