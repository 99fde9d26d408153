package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrEmailExists    = errors.New("a user with this email already exists")

	errFacultyCode = errors.New("faculty accounts need a faculty code")
)

// Service manages the staff accounts stored in the document.
type Service struct {
	store school.Store
}

func NewService(store school.Store) *Service {
	return &Service{store: store}
}

func (svc *Service) Create(data NewUser) (school.User, error) {
	usr := school.User{
		ID:          uuid.New().String(),
		Name:        data.Name,
		Username:    data.Username,
		Email:       data.Email,
		IsActive:    true,
		Roles:       data.Roles,
		FacultyCode: data.FacultyCode,
	}
	if usr.IsFaculty() && usr.FacultyCode == "" {
		return school.User{}, core.NewValidationError(errFacultyCode,
			core.FieldError{Field: "faculty_code", Error: errFacultyCode.Error()})
	}
	if err := usr.SetPassword(data.Password); err != nil {
		return school.User{}, errors.Wrap(err, "hashing password")
	}
	now := time.Now().UTC()
	usr.CreatedAt = now
	usr.UpdatedAt = now

	err := svc.store.Update(func(doc *school.Document) error {
		if err := checkUniqueness(doc, usr.Username, usr.Email); err != nil {
			return err
		}
		doc.Users = append(doc.Users, usr)
		return nil
	})
	if err != nil {
		return school.User{}, err
	}
	return usr, nil
}

func checkUniqueness(doc *school.Document, username, email string) error {
	for _, u := range doc.Users {
		if u.Username == username {
			return core.NewValidationError(ErrUsernameExists,
				core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
		}
		if email != "" && u.Email == email {
			return core.NewValidationError(ErrEmailExists,
				core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
	}
	return nil
}

func (svc *Service) QueryAll() ([]school.User, error) {
	var out []school.User
	err := svc.store.View(func(doc *school.Document) error {
		out = append(out, doc.Users...)
		return nil
	})
	return out, err
}

func (svc *Service) GetByID(id string) (school.User, error) {
	return svc.get(func(u school.User) bool { return u.ID == id })
}

func (svc *Service) GetByUsernameOrEmail(uname string) (school.User, error) {
	uname = core.CleanString(uname, true /* lower */)
	return svc.get(func(u school.User) bool { return u.Username == uname || (u.Email != "" && u.Email == uname) })
}

func (svc *Service) get(match func(school.User) bool) (school.User, error) {
	var usr school.User
	err := svc.store.View(func(doc *school.Document) error {
		for _, u := range doc.Users {
			if match(u) {
				usr = u
				return nil
			}
		}
		return ErrNotFound
	})
	return usr, err
}

func (svc *Service) SetLastLogin(usr school.User) (school.User, error) {
	usr.LastLogin = time.Now().UTC()
	err := svc.store.Update(func(doc *school.Document) error {
		for i, u := range doc.Users {
			if u.ID == usr.ID {
				doc.Users[i].LastLogin = usr.LastLogin
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return school.User{}, err
	}
	return usr, nil
}

// UpdateOrCreate upserts an account by username; used by the admin CLI.
func (svc *Service) UpdateOrCreate(usr school.User) (school.User, error) {
	err := svc.store.Update(func(doc *school.Document) error {
		for i, u := range doc.Users {
			if u.Username == usr.Username {
				usr.ID = u.ID
				usr.CreatedAt = u.CreatedAt
				usr.UpdatedAt = time.Now().UTC()
				doc.Users[i] = usr
				return nil
			}
		}
		if usr.ID == "" {
			usr.ID = uuid.New().String()
		}
		now := time.Now().UTC()
		usr.CreatedAt = now
		usr.UpdatedAt = now
		doc.Users = append(doc.Users, usr)
		return nil
	})
	if err != nil {
		return school.User{}, err
	}
	return usr, nil
}

// ResetPassword sets a new password on the account matching the
// username or email.
func (svc *Service) ResetPassword(unameOrEmail, pwd string) error {
	usr, err := svc.GetByUsernameOrEmail(unameOrEmail)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.UpdateOrCreate(usr)
	return err
}
