package assignment

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

var (
	ErrNotFound = errors.New("assignment not found")

	errInactive    = errors.New("assignment is no longer active")
	errAnswerCount = errors.New("answer count does not match question count")
)

type Service struct {
	store school.Store
}

func NewService(store school.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Create(data NewAssignment, actor string) (school.Assignment, error) {
	questions := make([]school.Question, 0, len(data.Questions))
	for _, q := range data.Questions {
		questions = append(questions, school.Question{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	asg := school.Assignment{
		ID:        uuid.New().String(),
		ClassCode: data.ClassCode,
		Title:     data.Title,
		Subject:   data.Subject,
		Questions: questions,
		ExpiresAt: data.ExpiresAt,
		IsActive:  true,
		CreatedBy: actor,
		CreatedAt: time.Now().UTC(),
	}
	err := svc.store.Update(func(doc *school.Document) error {
		doc.Assignments = append(doc.Assignments, asg)
		doc.AppendHistory(actor, "assignment.create",
			fmt.Sprintf("created %q for class %s", asg.Title, asg.ClassCode))
		return nil
	})
	if err != nil {
		return school.Assignment{}, err
	}
	return asg, nil
}

// QueryByClass lists active assignments, optionally for one class.
// Expired assignments are swept out and the swept document is written
// back, so this read persists.
func (svc *Service) QueryByClass(classCode string) ([]school.Assignment, error) {
	var out []school.Assignment
	err := svc.store.Update(func(doc *school.Document) error {
		doc.SweepAssignments(time.Now().UTC())
		for _, a := range doc.Assignments {
			if !a.IsActive {
				continue
			}
			if classCode != "" && a.ClassCode != classCode {
				continue
			}
			out = append(out, a)
		}
		return nil
	})
	return out, err
}

func (svc *Service) GetByID(id string) (school.Assignment, error) {
	var asg school.Assignment
	err := svc.store.View(func(doc *school.Document) error {
		a, ok := findAssignment(doc, id)
		if !ok {
			return ErrNotFound
		}
		asg = a
		return nil
	})
	return asg, err
}

func (svc *Service) Deactivate(id, actor string) error {
	return svc.store.Update(func(doc *school.Document) error {
		for i, a := range doc.Assignments {
			if a.ID == id {
				doc.Assignments[i].IsActive = false
				doc.AppendHistory(actor, "assignment.deactivate", fmt.Sprintf("deactivated %q", a.Title))
				return nil
			}
		}
		return ErrNotFound
	})
}

func (svc *Service) Delete(id, actor string) error {
	return svc.store.Update(func(doc *school.Document) error {
		for i, a := range doc.Assignments {
			if a.ID == id {
				doc.Assignments = append(doc.Assignments[:i], doc.Assignments[i+1:]...)
				delete(doc.Results, id)
				doc.AppendHistory(actor, "assignment.delete", fmt.Sprintf("deleted %q", a.Title))
				return nil
			}
		}
		return ErrNotFound
	})
}

// Submit grades an answer sheet against the assignment's key: the
// score counts positional matches and the percentage is rounded to the
// nearest whole. One result per student; resubmission overwrites.
func (svc *Service) Submit(assignmentID string, data Submission) (school.AssignmentResult, error) {
	var result school.AssignmentResult
	err := svc.store.Update(func(doc *school.Document) error {
		asg, ok := findAssignment(doc, assignmentID)
		if !ok {
			return ErrNotFound
		}
		// expiry is not checked here: an expired assignment stays
		// submittable until a list read sweeps it out
		if !asg.IsActive {
			return core.NewValidationError(errInactive)
		}
		if len(data.Answers) != len(asg.Questions) {
			return core.NewValidationError(errAnswerCount, core.FieldError{
				Field: "answers",
				Error: fmt.Sprintf("expected %d answers, got %d", len(asg.Questions), len(data.Answers)),
			})
		}

		var score int
		for i, q := range asg.Questions {
			if data.Answers[i] == q.CorrectAnswer {
				score++
			}
		}
		total := len(asg.Questions)
		result = school.AssignmentResult{
			AssignmentID: assignmentID,
			StudentCode:  data.StudentCode,
			Answers:      data.Answers,
			Score:        score,
			Total:        total,
			Percentage:   int(math.Round(float64(score) / float64(total) * 100)),
			SubmittedAt:  time.Now().UTC(),
		}

		results := doc.Results[assignmentID]
		for i, r := range results {
			if r.StudentCode == data.StudentCode {
				results[i] = result
				doc.Results[assignmentID] = results
				return nil
			}
		}
		doc.Results[assignmentID] = append(results, result)
		return nil
	})
	if err != nil {
		return school.AssignmentResult{}, err
	}
	return result, nil
}

func (svc *Service) Results(assignmentID string) ([]school.AssignmentResult, error) {
	var out []school.AssignmentResult
	err := svc.store.View(func(doc *school.Document) error {
		if _, ok := findAssignment(doc, assignmentID); !ok {
			return ErrNotFound
		}
		out = append(out, doc.Results[assignmentID]...)
		return nil
	})
	return out, err
}

func findAssignment(doc *school.Document, id string) (school.Assignment, bool) {
	for _, a := range doc.Assignments {
		if a.ID == id {
			return a, true
		}
	}
	return school.Assignment{}, false
}
