package store

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_DeleteUser(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()
	seed(t, repo, common.StorageKeyUsers, []models.User{
		{ID: "u1", Email: "a@taskhub.local", Password: "x"},
		{ID: "u2", Email: "b@taskhub.local"},
	})
	seed(t, repo, common.StorageKeyProfiles, []Record{{"id": "u1"}})

	deleted, err := s.Auth().Admin().DeleteUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", deleted.ID)
	assert.Empty(t, deleted.Password)

	users := stored[[]models.User](t, repo, common.StorageKeyUsers)
	require.Len(t, users, 1)
	assert.Equal(t, "u2", users[0].ID)
	assert.Len(t, stored[[]Record](t, repo, common.StorageKeyProfiles), 1, "profiles are not touched")
}

func TestAdmin_DeleteUserNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Auth().Admin().DeleteUser(context.Background(), "ghost")
	require.ErrorIs(t, err, common.ErrUserNotFound)
	assert.Equal(t, "User not found", err.Error())
}

func TestAdmin_DeleteUserProtected(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyUsers, []models.User{{ID: "some-id", Email: common.MasterEmail}})
	before := snapshot(t, repo)

	_, err := s.Auth().Admin().DeleteUser(context.Background(), "some-id")
	require.ErrorIs(t, err, common.ErrProtectedAccount)
	assert.Equal(t, before, snapshot(t, repo))
}

func TestAdmin_DeleteInactiveUsers(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()
	seed(t, repo, common.StorageKeyUsers, []models.User{
		{ID: "master", Email: common.MasterEmail},
		{ID: "active", Email: "a@taskhub.local"},
		{ID: "zombie-1", Email: "z1@taskhub.local"},
		{ID: "zombie-2", Email: "z2@taskhub.local"},
	})
	seed(t, repo, common.StorageKeyProfiles, []Record{{"id": "active"}})

	n, err := s.Auth().Admin().DeleteInactiveUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	users := stored[[]models.User](t, repo, common.StorageKeyUsers)
	var got []string
	for _, u := range users {
		got = append(got, u.ID)
	}
	assert.Equal(t, []string{"master", "active"}, got)

	writes := repo.writes.Load()
	n, err = s.Auth().Admin().DeleteInactiveUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, writes, repo.writes.Load())
}

func TestAdmin_DeleteInactiveUsersAbortsOnReadFault(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyUsers, []models.User{{ID: "u1", Email: "a@taskhub.local"}})
	seed(t, repo, common.StorageKeyProfiles, []Record{{"id": "u1"}})
	repo.setFailGet(common.StorageKeyProfiles)
	before := snapshot(t, repo)

	_, err := s.Auth().Admin().DeleteInactiveUsers(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, before, snapshot(t, repo))
}
