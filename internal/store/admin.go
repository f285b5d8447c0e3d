package store

import (
	"context"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
)

// Admin deletes auth users. It never touches profiles.
type Admin struct {
	s *Store
}

// DeleteUser removes the auth user with id and returns it.
func (a *Admin) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	s := a.s
	s.delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.ErrUserNotFound
	}

	target := users[idx]
	if target.IsProtected() {
		s.logger.Warn(ctx, "refused to delete protected user", "user_id", id)
		return nil, common.ErrProtectedAccount
	}

	users = append(users[:idx:idx], users[idx+1:]...)
	if err := s.write(ctx, map[string]any{common.StorageKeyUsers: users}); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	deleted := target.Public()
	return &deleted, nil
}

// DeleteInactiveUsers removes every auth user without a profile, except the
// administrator, and returns how many were removed. Users and profiles are
// read under one lock so the decision is made on a consistent snapshot.
func (a *Admin) DeleteInactiveUsers(ctx context.Context) (int, error) {
	s := a.s
	s.delay()

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.readUsers(ctx)
	if err != nil {
		return 0, err
	}
	profiles, err := s.readRecords(ctx, Profiles)
	if err != nil {
		return 0, err
	}

	active := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		active[p.String("id")] = struct{}{}
	}

	kept := make([]models.User, 0, len(users))
	for _, u := range users {
		if _, ok := active[u.ID]; ok || u.IsProtected() {
			kept = append(kept, u)
		}
	}

	removed := len(users) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.write(ctx, map[string]any{common.StorageKeyUsers: kept}); err != nil {
		return 0, err
	}

	s.logger.Info(ctx, "inactive users deleted", "count", removed)
	return removed, nil
}
