package cli

import (
	"context"

	"github.com/dmitrijs2005/voltdrive/internal/client/models"
)

// getPassword is swapped in tests.
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	var (
		data models.RegisterData
		err  error
	)
	if data.Name, err = a.ask("Enter name"); err != nil {
		return err
	}
	if data.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if data.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if data.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	if err := a.session.Register(ctx, data); err != nil {
		return err
	}

	u := a.session.User()
	a.printf("Registered and logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	var (
		data models.LoginData
		err  error
	)
	if data.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if data.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}

	if err := a.session.Login(ctx, data); err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", a.session.User().Name)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// WhoAmI refreshes the cached profile from the server.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	if err := a.session.SetUser(ctx, u); err != nil {
		return err
	}

	a.printf("%s <%s>\nrole: %s\n", u.Name, u.Email, u.Role)
	if u.Avatar != nil {
		a.printf("avatar: %s\n", *u.Avatar)
	}
	if u.PhoneNumber != nil {
		a.printf("phone: %s\n", *u.PhoneNumber)
	}
	if u.DrivingLicense != nil {
		a.printf("driving license: %s\n", *u.DrivingLicense)
	}
	return nil
}
