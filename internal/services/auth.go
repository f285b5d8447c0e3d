package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/models"
	"github.com/dmitrijs2005/taskhub/internal/store"
)

// CurrentUser is the signed-in auth user merged with its profile. Profile
// is nil when the user has none.
type CurrentUser struct {
	User    models.User
	Profile *models.Profile
}

// Username prefers the profile's username over the sign-up metadata.
func (c CurrentUser) Username() string {
	if c.Profile != nil && c.Profile.Username != "" {
		return c.Profile.Username
	}
	return c.User.UserMetadata.Username
}

func (c CurrentUser) IsAdmin() bool {
	return c.Profile != nil && c.Profile.IsAdmin()
}

// AuthService defines the member-facing authentication flows.
//
// Contract:
//   - Register: self sign-up; the profile starts pending until approved.
//   - AddMember: an administrator adds an active member with a given role.
//   - Login: sign in by username; the login email is derived from it.
//   - Logout: end the session. Safe to call when signed out.
//   - CurrentUser: the signed-in user, or nil when signed out.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.Profile, error)
	AddMember(ctx context.Context, username, password string, role models.Role) (*models.Profile, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*CurrentUser, error)
}

type authService struct {
	st     *store.Store
	logger logging.Logger
}

func NewAuthService(st *store.Store, logger logging.Logger) AuthService {
	return &authService{st: st, logger: logger.With("service", "auth")}
}

func (a *authService) Register(ctx context.Context, username, password string) (*models.Profile, error) {
	return a.register(ctx, username, password, models.RoleMember, models.ProfileStatusPending)
}

func (a *authService) AddMember(ctx context.Context, username, password string, role models.Role) (*models.Profile, error) {
	return a.register(ctx, username, password, role, models.ProfileStatusActive)
}

// register creates the auth user, then the profile. When a previous attempt
// died between those two steps, SignUp hands back the orphaned user and the
// profile is created now.
func (a *authService) register(ctx context.Context, username, password string, role models.Role, status models.ProfileStatus) (*models.Profile, error) {
	email := models.EmailForUsername(username)
	if email == "" {
		return nil, common.ErrInvalidUsername
	}
	if !role.Valid() {
		return nil, common.ErrInvalidRole
	}

	auth := a.st.Auth()
	user, err := auth.SignUp(ctx, email, password, models.UserMetadata{Username: username})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	profile := models.Profile{
		ID:       user.ID,
		Username: username,
		Email:    email,
		Role:     role,
		Status:   status,
	}
	rec, err := store.ToRecord(profile)
	if err != nil {
		return nil, err
	}
	if _, err := a.st.From(store.Profiles).Upsert(rec).Execute(ctx); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	// The new identity must not replace whoever is signed in.
	if sess := auth.GetSession(ctx); sess != nil && sess.User.ID == user.ID {
		if err := auth.SignOut(ctx); err != nil {
			return nil, err
		}
	}

	a.logger.Info(ctx, "member registered", "user_id", user.ID, "username", username, "status", status)
	return getProfile(ctx, a.st, user.ID)
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.Session, error) {
	email := models.EmailForUsername(username)
	if email == "" {
		return nil, common.ErrInvalidCredentials
	}
	sess, err := a.st.Auth().SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.st.Auth().SignOut(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*CurrentUser, error) {
	auth := a.st.Auth()
	sess := auth.GetSession(ctx)
	if sess == nil {
		return nil, nil
	}
	if _, err := auth.VerifySession(sess); err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}

	cu := &CurrentUser{User: sess.User}
	p, err := getProfile(ctx, a.st, sess.User.ID)
	switch {
	case err == nil:
		cu.Profile = p
	case errors.Is(err, common.ErrProfileNotFound):
	default:
		return nil, err
	}
	return cu, nil
}

func getProfile(ctx context.Context, st *store.Store, id string) (*models.Profile, error) {
	res, err := st.From(store.Profiles).Select("*").Eq("id", id).Single().Execute(ctx)
	if err != nil {
		return nil, err
	}
	row := res.Row()
	if row == nil {
		return nil, common.ErrProfileNotFound
	}
	p, err := store.Decode[models.Profile](row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
