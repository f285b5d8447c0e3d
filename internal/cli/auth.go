package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register asks for a username and password and files a membership
// request. The account stays pending until an administrator approves it.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	p, err := a.authService.Register(ctx, username, string(password))
	if err != nil {
		return err
	}

	a.printf("Registered %s (%s). An administrator must approve the account.\n", p.Username, p.Email)
	return nil
}

// Login asks for credentials and signs in. Unknown users and wrong
// passwords get the same message.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if _, err := a.authService.Login(ctx, username, string(password)); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return errors.New("invalid username or password")
		}
		return err
	}
	if err := a.refreshUser(ctx); err != nil {
		return err
	}
	if a.user == nil {
		return errors.New("session was not stored")
	}

	a.printf("Welcome, %s!\n", a.user.Username())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	a.println("Signed out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if err := a.refreshUser(ctx); err != nil {
		return err
	}
	if a.user == nil {
		a.println("Not signed in.")
		return nil
	}
	a.printf("%s <%s>\n", a.user.Username(), a.user.User.Email)
	if p := a.user.Profile; p != nil {
		a.printf("role: %s, status: %s\n", p.Role, p.Status)
	}
	return nil
}

// Settings prints the notification settings, or changes one of them:
//
//	settings assignment off
func (a *App) Settings(ctx context.Context, args []string) error {
	if a.user == nil || a.user.Profile == nil {
		return common.ErrProfileNotFound
	}
	s := a.user.Profile.EffectiveSettings()

	if len(args) > 0 {
		if len(args) < 2 {
			return fmt.Errorf("usage: settings [assignment|completion|due] [on|off]")
		}
		v, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		switch args[0] {
		case "assignment":
			s.NotifyAssignment = v
		case "completion":
			s.NotifyCompletion = v
		case "due":
			s.NotifyDueDate = v
		default:
			return fmt.Errorf("unknown setting %q", args[0])
		}
		p, err := a.teamService.UpdateSettings(ctx, a.user.Profile.ID, s)
		if err != nil {
			return err
		}
		a.user.Profile = p
		s = p.EffectiveSettings()
	}

	printSettings(a, s)
	return nil
}

func printSettings(a *App, s models.Settings) {
	a.printf("assignment: %s\n", onOff(s.NotifyAssignment))
	a.printf("completion: %s\n", onOff(s.NotifyCompletion))
	a.printf("due:        %s\n", onOff(s.NotifyDueDate))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
