package school

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleFaculty      = "faculty"
)

var AllRoles = []string{RoleAdmin, RoleReceptionist, RoleFaculty}

// User is a staff account allowed to operate on the document: the
// school admin, the receptionist, or a faculty member identified by
// their faculty code.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	IsActive     bool      `json:"is_active"`
	Roles        []string  `json:"roles"`
	FacultyCode  string    `json:"faculty_code,omitempty"`
	PasswordHash []byte    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) hasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool        { return u.hasRole(RoleAdmin) }
func (u *User) IsReceptionist() bool { return u.hasRole(RoleReceptionist) }
func (u *User) IsFaculty() bool      { return u.hasRole(RoleFaculty) }

// ActorKey is the history-trail partition this user writes to.
func (u *User) ActorKey() string {
	switch {
	case u.IsAdmin():
		return ActorAdmin
	case u.IsReceptionist():
		return ActorReceptionist
	case u.IsFaculty():
		return FacultyActor(u.FacultyCode)
	}
	return u.Username
}
