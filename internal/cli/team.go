package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/taskhub/internal/models"
)

func (a *App) Team(ctx context.Context) error {
	members, err := a.teamService.List(ctx)
	if err != nil {
		return err
	}
	return a.printMembers(members)
}

func (a *App) Pending(ctx context.Context) error {
	members, err := a.teamService.Pending(ctx)
	if err != nil {
		return err
	}
	return a.printMembers(members)
}

func (a *App) Approve(ctx context.Context, args []string) error {
	p, err := a.member(ctx, args)
	if err != nil {
		return err
	}
	if _, err := a.teamService.Approve(ctx, p.ID); err != nil {
		return err
	}
	a.printf("%s approved.\n", p.Username)
	return nil
}

func (a *App) Reject(ctx context.Context, args []string) error {
	p, err := a.member(ctx, args)
	if err != nil {
		return err
	}
	if err := a.teamService.Reject(ctx, p.ID); err != nil {
		return err
	}
	a.printf("%s rejected.\n", p.Username)
	return nil
}

// AddMember creates an active member with the chosen role.
func (a *App) AddMember(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	role, err := getSimpleText(a.reader, "Role (member or admin, empty for member)", a.out)
	if err != nil {
		return err
	}
	if role == "" {
		role = string(models.RoleMember)
	}

	p, err := a.authService.AddMember(ctx, username, string(password), models.Role(role))
	if err != nil {
		return err
	}
	a.printf("Added %s as %s.\n", p.Username, p.Role)
	return nil
}

// RemoveMember deletes a member, their profile and auth user, and
// unassigns their tasks.
func (a *App) RemoveMember(ctx context.Context, args []string) error {
	p, err := a.member(ctx, args)
	if err != nil {
		return err
	}
	if err := a.teamService.Remove(ctx, p.ID); err != nil {
		return err
	}
	a.printf("%s removed.\n", p.Username)
	return nil
}

func (a *App) ClearInactive(ctx context.Context) error {
	n, err := a.teamService.ClearInactive(ctx)
	if err != nil {
		return err
	}
	a.printf("Removed %d inactive user(s).\n", n)
	return nil
}

func (a *App) member(ctx context.Context, args []string) (*models.Profile, error) {
	username, err := a.arg(args, 0, "Username")
	if err != nil {
		return nil, err
	}
	p, err := a.teamService.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", username, err)
	}
	return p, nil
}

func (a *App) printMembers(members []models.Profile) error {
	if len(members) == 0 {
		a.println("No members.")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tROLE\tSTATUS")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Username, m.Role, m.Status)
	}
	return tw.Flush()
}
