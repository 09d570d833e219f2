package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/greencampus/greencampus/core"
	"github.com/greencampus/greencampus/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(ctx context.Context, name, email, pwd, role string) error {
	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		if !core.IsNotFound(err) {
			return err
		}
		_, err = cli.usrSvc.Create(ctx, user.NewUser{Name: name, Email: email, Password: pwd, Role: role})
		return err
	}

	if usr, err = cli.usrSvc.SetRole(ctx, usr, core.CleanString(role)); err != nil {
		return errors.Wrap(err, "setting role")
	}
	if _, err = cli.usrSvc.SetPassword(ctx, usr, pwd); err != nil {
		return err
	}
	return nil
}
