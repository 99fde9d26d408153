package main

import (
	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/core/school"
)

// addUser updates or creates a staff account.
func (cli *commandLine) addUser(uname, email, pwd string, isAdmin bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	usr, err := cli.usrSvc.GetByUsernameOrEmail(uname)
	if err != nil {
		if err != account.ErrNotFound {
			return err
		}
		usr = school.User{
			Username: uname,
			Email:    email,
		}
	}
	if isAdmin {
		usr.Roles = school.AllRoles
	}
	usr.IsActive = true
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.usrSvc.UpdateOrCreate(usr)
	return err
}
