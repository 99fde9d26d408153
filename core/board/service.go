package board

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

var (
	ErrPostNotFound         = errors.New("post not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Service keeps the faculty notice board and school-wide notifications.
type Service struct {
	store   school.Store
	mailSvc core.EmailService
}

func NewService(store school.Store, mailSvc core.EmailService) *Service {
	return &Service{store: store, mailSvc: mailSvc}
}

func (svc *Service) CreatePost(data NewPost, facultyCode string) (school.FacultyPost, error) {
	post := school.FacultyPost{
		ID:          uuid.New().String(),
		FacultyCode: facultyCode,
		Title:       data.Title,
		Body:        data.Body,
		ExpiresAt:   data.ExpiresAt,
		PostedAt:    time.Now().UTC(),
	}
	err := svc.store.Update(func(doc *school.Document) error {
		doc.Posts = append(doc.Posts, post)
		doc.AppendHistory(school.FacultyActor(facultyCode), "post.create", fmt.Sprintf("posted %q", post.Title))
		return nil
	})
	if err != nil {
		return school.FacultyPost{}, err
	}
	return post, nil
}

// QueryPosts sweeps expired posts out and writes the swept document
// back before returning the rest.
func (svc *Service) QueryPosts() ([]school.FacultyPost, error) {
	var out []school.FacultyPost
	err := svc.store.Update(func(doc *school.Document) error {
		doc.SweepPosts(time.Now().UTC())
		out = append(out, doc.Posts...)
		return nil
	})
	return out, err
}

func (svc *Service) DeletePost(id, actor string) error {
	return svc.store.Update(func(doc *school.Document) error {
		for i, p := range doc.Posts {
			if p.ID == id {
				doc.Posts = append(doc.Posts[:i], doc.Posts[i+1:]...)
				doc.AppendHistory(actor, "post.delete", fmt.Sprintf("deleted %q", p.Title))
				return nil
			}
		}
		return ErrPostNotFound
	})
}

// CreateNotification publishes an announcement and mails it to every
// active staff account.
func (svc *Service) CreateNotification(data NewNotification, source, actor string) (school.Notification, error) {
	notif := school.Notification{
		ID:        uuid.New().String(),
		Title:     data.Title,
		Body:      data.Body,
		Source:    source,
		ExpiresAt: data.ExpiresAt,
		CreatedBy: actor,
		CreatedAt: time.Now().UTC(),
	}
	var recipients []mail.Address
	err := svc.store.Update(func(doc *school.Document) error {
		doc.Notifications = append(doc.Notifications, notif)
		doc.AppendHistory(actor, "notification.create", fmt.Sprintf("published %q", notif.Title))
		for _, usr := range doc.Users {
			if usr.IsActive && usr.Email != "" {
				recipients = append(recipients, mail.Address{Name: usr.Name, Address: usr.Email})
			}
		}
		return nil
	})
	if err != nil {
		return school.Notification{}, err
	}

	if len(recipients) > 0 {
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:      recipients,
			Subject: notif.Title,
			Body:    notif.Body,
		})
	}
	return notif, nil
}

// QueryNotifications sweeps expired notifications out and writes the
// swept document back before returning the rest.
func (svc *Service) QueryNotifications() ([]school.Notification, error) {
	var out []school.Notification
	err := svc.store.Update(func(doc *school.Document) error {
		doc.SweepNotifications(time.Now().UTC())
		out = append(out, doc.Notifications...)
		return nil
	})
	return out, err
}

func (svc *Service) DeleteNotification(id, actor string) error {
	return svc.store.Update(func(doc *school.Document) error {
		for i, n := range doc.Notifications {
			if n.ID == id {
				doc.Notifications = append(doc.Notifications[:i], doc.Notifications[i+1:]...)
				doc.AppendHistory(actor, "notification.delete", fmt.Sprintf("deleted %q", n.Title))
				return nil
			}
		}
		return ErrNotificationNotFound
	})
}
