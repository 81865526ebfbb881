package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipehub/internal/client/models"
	"github.com/dmitrijs2005/recipehub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Signup prompts for name, email and password and creates an account. It
// does not log in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Signup(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	a.println(fmt.Sprintf("Account created for %s. You can log in now.", u.Email))
	return nil
}

// Login prompts for credentials and stores the resulting session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	if err := a.setSession(ctx, s); err != nil {
		return err
	}

	a.println("Login successful. Welcome, " + displayName(s) + "!")
	return nil
}

// Logout revokes the refresh token on the server (best effort) and forgets
// the local session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in.")
		return nil
	}

	if err := a.api.Logout(ctx, a.session); err != nil {
		a.println("Warning: server logout failed:", err.Error())
	}
	if err := a.clearSession(ctx); err != nil {
		return err
	}

	a.println("Logged out.")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	return a.withSession(ctx, func(s *models.Session) error {
		u, err := a.api.Me(ctx, s)
		if err != nil {
			return err
		}
		a.println(fmt.Sprintf("%s <%s> id=%s", u.Name, u.Email, u.ID))
		return nil
	})
}

func displayName(s *models.Session) string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}
