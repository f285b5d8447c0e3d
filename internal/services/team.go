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

// TeamService manages team membership.
//
// Contract:
//   - List: every member except the administrator, ordered by username.
//   - Pending: members awaiting approval, ordered by username.
//   - Approve: activate a pending member.
//   - Reject: delete a pending member's profile; the auth user is left for
//     ClearInactive.
//   - Remove: unassign the member's tasks, delete the profile, then the
//     auth user.
//   - UpdateSettings: replace a member's notification settings.
//   - ClearInactive: delete auth users that have no profile.
type TeamService interface {
	List(ctx context.Context) ([]models.Profile, error)
	Pending(ctx context.Context) ([]models.Profile, error)
	Get(ctx context.Context, id string) (*models.Profile, error)
	FindByUsername(ctx context.Context, username string) (*models.Profile, error)
	Approve(ctx context.Context, id string) (*models.Profile, error)
	Reject(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	UpdateSettings(ctx context.Context, id string, settings models.Settings) (*models.Profile, error)
	ClearInactive(ctx context.Context) (int, error)
}

type teamService struct {
	st     *store.Store
	logger logging.Logger
}

func NewTeamService(st *store.Store, logger logging.Logger) TeamService {
	return &teamService{st: st, logger: logger.With("service", "team")}
}

func (s *teamService) all(ctx context.Context) ([]models.Profile, error) {
	res, err := s.st.From(store.Profiles).Select("*").Order("username", true).Execute(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := store.DecodeAll[models.Profile](res.Data)
	if err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return profiles, nil
}

func (s *teamService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	out := profiles[:0]
	for _, p := range profiles {
		if p.Username != common.MasterUsername {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *teamService) Pending(ctx context.Context) ([]models.Profile, error) {
	res, err := s.st.From(store.Profiles).Select("*").
		Eq("status", models.ProfileStatusPending).
		Order("username", true).
		Execute(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Profile](res.Data)
}

func (s *teamService) Get(ctx context.Context, id string) (*models.Profile, error) {
	return getProfile(ctx, s.st, id)
}

func (s *teamService) FindByUsername(ctx context.Context, username string) (*models.Profile, error) {
	res, err := s.st.From(store.Profiles).Select("*").Eq("username", username).Single().Execute(ctx)
	if err != nil {
		return nil, err
	}
	if res.Row() == nil {
		return nil, common.ErrProfileNotFound
	}
	p, err := store.Decode[models.Profile](res.Row())
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *teamService) Approve(ctx context.Context, id string) (*models.Profile, error) {
	p, err := s.update(ctx, id, store.Record{"status": models.ProfileStatusActive})
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "member approved", "user_id", id)
	return p, nil
}

func (s *teamService) Reject(ctx context.Context, id string) error {
	res, err := s.st.From(store.Profiles).Delete().Eq("id", id).Execute(ctx)
	if err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return common.ErrProfileNotFound
	}
	s.logger.Info(ctx, "member rejected", "user_id", id)
	return nil
}

func (s *teamService) Remove(ctx context.Context, id string) error {
	p, err := getProfile(ctx, s.st, id)
	if err != nil && !errors.Is(err, common.ErrProfileNotFound) {
		return err
	}
	if models.IsProtectedRecord("", id) || (p != nil && p.IsProtected()) {
		return common.ErrProtectedAccount
	}

	// A failed unassign leaves dangling assignee ids, which readers already
	// tolerate, so removal goes on.
	if _, err := s.st.From(store.Tasks).Update(store.Record{"assignee_id": nil}).Eq("assignee_id", id).Execute(ctx); err != nil {
		s.logger.Warn(ctx, "unassign tasks failed", "user_id", id, "error", err)
	}

	if _, err := s.st.From(store.Profiles).Delete().Eq("id", id).Execute(ctx); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}

	if _, err := s.st.Auth().Admin().DeleteUser(ctx, id); err != nil {
		if !errors.Is(err, common.ErrUserNotFound) || p == nil {
			return fmt.Errorf("delete auth user: %w", err)
		}
	}

	s.logger.Info(ctx, "member removed", "user_id", id)
	return nil
}

func (s *teamService) UpdateSettings(ctx context.Context, id string, settings models.Settings) (*models.Profile, error) {
	return s.update(ctx, id, store.Record{"settings": settings})
}

func (s *teamService) ClearInactive(ctx context.Context) (int, error) {
	n, err := s.st.Auth().Admin().DeleteInactiveUsers(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info(ctx, "inactive users cleared", "count", n)
	return n, nil
}

func (s *teamService) update(ctx context.Context, id string, updates store.Record) (*models.Profile, error) {
	res, err := s.st.From(store.Profiles).Update(updates).Eq("id", id).Select().Single().Execute(ctx)
	if err != nil {
		return nil, err
	}
	if res.Row() == nil {
		return nil, common.ErrProfileNotFound
	}
	p, err := store.Decode[models.Profile](res.Row())
	if err != nil {
		return nil, err
	}
	return &p, nil
}
