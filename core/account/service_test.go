package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/school"
	"github.com/darasahq/darasa/storage/document/dummy"
)

func setup(t *testing.T) *Service {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	return NewService(db)
}

func TestService_Create(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Create(NewUser{
		Name:            "Front Desk",
		Username:        "desk",
		Email:           "desk@school.test",
		Password:        "s3cr3tpass",
		PasswordConfirm: "s3cr3tpass",
		Roles:           []string{school.RoleReceptionist},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("s3cr3tpass"))
	assert.Error(t, usr.CheckPassword("wrong"))
	assert.Equal(t, school.ActorReceptionist, usr.ActorKey())

	// username is unique
	_, err = svc.Create(NewUser{
		Name: "Other", Username: "desk", Password: "s3cr3tpass", PasswordConfirm: "s3cr3tpass",
		Roles: []string{school.RoleReceptionist},
	})
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %v", err)
	assert.Equal(t, "username", vErr.Fields[0].Field)

	// email is unique
	_, err = svc.Create(NewUser{
		Name: "Other", Username: "desk2", Email: "desk@school.test",
		Password: "s3cr3tpass", PasswordConfirm: "s3cr3tpass",
		Roles: []string{school.RoleReceptionist},
	})
	vErr, ok = err.(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %v", err)
	assert.Equal(t, "email", vErr.Fields[0].Field)

	// faculty accounts need a faculty code
	_, err = svc.Create(NewUser{
		Name: "Teach", Username: "teach", Password: "s3cr3tpass", PasswordConfirm: "s3cr3tpass",
		Roles: []string{school.RoleFaculty},
	})
	vErr, ok = err.(*core.ValidationError)
	require.True(t, ok, "want ValidationError, got %v", err)
	assert.Equal(t, "faculty_code", vErr.Fields[0].Field)

	fac, err := svc.Create(NewUser{
		Name: "Teach", Username: "teach", Password: "s3cr3tpass", PasswordConfirm: "s3cr3tpass",
		Roles: []string{school.RoleFaculty}, FacultyCode: "f01",
	})
	require.NoError(t, err)
	assert.Equal(t, school.FacultyActor("f01"), fac.ActorKey())
}

func TestService_lookups(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Create(NewUser{
		Name: "Head", Username: "head", Email: "head@school.test",
		Password: "s3cr3tpass", PasswordConfirm: "s3cr3tpass",
		Roles: []string{school.RoleAdmin},
	})
	require.NoError(t, err)

	byID, err := svc.GetByID(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr.Username, byID.Username)

	byUname, err := svc.GetByUsernameOrEmail("HEAD")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, byUname.ID)

	byEmail, err := svc.GetByUsernameOrEmail("head@school.test")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, byEmail.ID)

	_, err = svc.GetByUsernameOrEmail("nobody")
	assert.Equal(t, ErrNotFound, err)

	all, err := svc.QueryAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_SetLastLogin(t *testing.T) {
	svc := setup(t)

	usr, err := svc.Create(NewUser{
		Name: "Head", Username: "head", Password: "s3cr3tpass", PasswordConfirm: "s3cr3tpass",
		Roles: []string{school.RoleAdmin},
	})
	require.NoError(t, err)
	require.True(t, usr.LastLogin.IsZero())

	usr, err = svc.SetLastLogin(usr)
	require.NoError(t, err)
	assert.False(t, usr.LastLogin.IsZero())

	stored, err := svc.GetByID(usr.ID)
	require.NoError(t, err)
	assert.Equal(t, usr.LastLogin, stored.LastLogin)
}

func TestService_UpdateOrCreate_and_ResetPassword(t *testing.T) {
	svc := setup(t)

	usr := school.User{Name: "Head", Username: "head", IsActive: true, Roles: school.AllRoles}
	require.NoError(t, usr.SetPassword("firstpass"))

	created, err := svc.UpdateOrCreate(usr)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// same username upserts
	created.Name = "Head Master"
	updated, err := svc.UpdateOrCreate(created)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	all, err := svc.QueryAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Head Master", all[0].Name)

	require.NoError(t, svc.ResetPassword("head", "secondpass"))
	stored, err := svc.GetByUsernameOrEmail("head")
	require.NoError(t, err)
	assert.NoError(t, stored.CheckPassword("secondpass"))
	assert.Error(t, stored.CheckPassword("firstpass"))

	assert.Equal(t, ErrNotFound, svc.ResetPassword("nobody", "x"))
}
