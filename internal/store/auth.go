package store

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/auth"
	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
)

// Auth is the authentication subsystem of a Store.
type Auth struct {
	s *Store
}

// Admin returns the privileged user management operations.
func (a *Auth) Admin() *Admin {
	return &Admin{s: a.s}
}

// GetSession returns the stored session, or nil when signed out. An
// unreadable session reads as signed out.
func (a *Auth) GetSession(ctx context.Context) *models.Session {
	s := a.s
	s.delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, _ := s.readSession(ctx)
	return sess
}

// SignUp creates an auth user. An email that already has a profile is
// rejected with common.ErrUserExists. An email whose user has no profile is
// a leftover of an interrupted registration: the existing user is returned
// so the caller can finish creating the profile. SignUp never signs in.
func (a *Auth) SignUp(ctx context.Context, email, password string, metadata models.UserMetadata) (*models.User, error) {
	s := a.s
	s.delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.Email != email {
			continue
		}
		profiles, err := s.readRecords(ctx, Profiles)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			if p.String("id") == u.ID {
				return nil, common.ErrUserExists
			}
		}
		s.logger.Info(ctx, "recovered user without profile", "user_id", u.ID)
		recovered := u.Public()
		return &recovered, nil
	}

	u := models.User{
		ID:           s.newID(),
		Email:        email,
		Password:     password,
		UserMetadata: metadata,
	}
	users = append(users, u)
	if err := s.write(ctx, map[string]any{common.StorageKeyUsers: users}); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user signed up", "user_id", u.ID)
	created := u.Public()
	return &created, nil
}

// SignInWithPassword authenticates by email or by username. Unknown users
// and wrong passwords both yield common.ErrInvalidCredentials.
func (a *Auth) SignInWithPassword(ctx context.Context, login, password string) (*models.Session, error) {
	sess, err := a.signIn(ctx, login, password)
	if err != nil {
		return nil, err
	}
	a.s.listeners.notify(EventSignedIn, sess)
	c := *sess
	return &c, nil
}

func (a *Auth) signIn(ctx context.Context, login, password string) (*models.Session, error) {
	s := a.s
	s.delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureDefaults(ctx)

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}

	var found *models.User
	for i := range users {
		if users[i].Email == login || users[i].UserMetadata.Username == login {
			found = &users[i]
			break
		}
	}
	if found == nil || subtle.ConstantTimeCompare([]byte(found.Password), []byte(password)) != 1 {
		s.logger.Warn(ctx, "sign-in rejected", "login", login)
		return nil, common.ErrInvalidCredentials
	}

	now := s.now()
	token, err := auth.GenerateToken(found.ID, s.tokenSecret, now, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	sess := &models.Session{User: found.Public(), AccessToken: token}
	if s.tokenTTL > 0 {
		sess.ExpiresAt = models.NewTimestampPtr(now.Add(s.tokenTTL))
	}

	if err := s.write(ctx, map[string]any{common.StorageKeySession: sess}); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "signed in", "user_id", found.ID)
	return sess, nil
}

// SignOut clears the session. Signing out while signed out is not an error
// and still notifies listeners.
func (a *Auth) SignOut(ctx context.Context) error {
	s := a.s
	s.delay()

	err := func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.remove(ctx, common.StorageKeySession, common.StorageKeyMasterSession)
	}()
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "signed out")
	s.listeners.notify(EventSignedOut, nil)
	return nil
}

// OnAuthStateChange registers fn for every later sign-in and sign-out.
func (a *Auth) OnAuthStateChange(fn Listener) *Subscription {
	return a.s.listeners.add(fn)
}

// VerifySession checks the session token and returns the user id it was
// issued for.
func (a *Auth) VerifySession(sess *models.Session) (string, error) {
	if sess == nil {
		return "", common.ErrInvalidToken
	}
	userID, err := auth.GetUserIDFromToken(sess.AccessToken, a.s.tokenSecret)
	if err != nil {
		return "", err
	}
	if userID != sess.User.ID {
		return "", common.ErrInvalidToken
	}
	return userID, nil
}
