package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usernames(ps []models.Profile) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Username)
	}
	return out
}

func TestTeam_ListHidesAdministratorAndSorts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, name := range []string{"alice", "Charlie", "Bob"} {
		_, err := f.auth.AddMember(ctx, name, "pw", models.RoleMember)
		require.NoError(t, err)
	}

	members, err := f.team.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Charlie", "alice"}, usernames(members))
}

func TestTeam_ApproveAndPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.auth.Register(ctx, "zoe", "pw")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "amy", "pw")
	require.NoError(t, err)

	pending, err := f.team.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy", "zoe"}, usernames(pending))

	approved, err := f.team.Approve(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProfileStatusActive, approved.Status)

	pending, err = f.team.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy"}, usernames(pending))

	_, err = f.team.Approve(ctx, "missing")
	require.ErrorIs(t, err, common.ErrProfileNotFound)
}

func TestTeam_RejectLeavesZombieForCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.auth.Register(ctx, "mallory", "pw")
	require.NoError(t, err)

	require.NoError(t, f.team.Reject(ctx, p.ID))
	_, err = f.team.Get(ctx, p.ID)
	require.ErrorIs(t, err, common.ErrProfileNotFound)
	require.ErrorIs(t, f.team.Reject(ctx, p.ID), common.ErrProfileNotFound)

	n, err := f.team.ClearInactive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = f.auth.Login(ctx, "mallory", "pw")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestTeam_RemoveUnassignsTasksAndDeletesUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.auth.AddMember(ctx, "oscar", "pw", models.RoleMember)
	require.NoError(t, err)
	task, err := f.tasks.Create(ctx, NewTask{Title: "write docs", AssigneeID: &p.ID})
	require.NoError(t, err)

	require.NoError(t, f.team.Remove(ctx, p.ID))

	got, err := f.tasks.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)

	_, err = f.team.Get(ctx, p.ID)
	require.ErrorIs(t, err, common.ErrProfileNotFound)
	_, err = f.auth.Login(ctx, "oscar", "pw")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	err = f.team.Remove(ctx, p.ID)
	require.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestTeam_RemoveAdministratorRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.team.FindByUsername(ctx, common.MasterUsername)
	require.NoError(t, err)

	err = f.team.Remove(ctx, admin.ID)
	require.ErrorIs(t, err, common.ErrProtectedAccount)

	_, err = f.auth.Login(ctx, common.MasterUsername, "master")
	require.NoError(t, err)
}

func TestTeam_RemoveRefusesAdministratorIDWithoutProfile(t *testing.T) {
	f := newFixture(t)

	err := f.team.Remove(context.Background(), common.MasterIDPrefix+"-42")
	require.ErrorIs(t, err, common.ErrProtectedAccount)
}

func TestTeam_UpdateSettings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.auth.AddMember(ctx, "nina", "pw", models.RoleMember)
	require.NoError(t, err)

	want := models.Settings{NotifyAssignment: false, NotifyCompletion: true, NotifyDueDate: false}
	updated, err := f.team.UpdateSettings(ctx, p.ID, want)
	require.NoError(t, err)
	assert.Equal(t, want, updated.EffectiveSettings())

	again, err := f.team.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, want, again.EffectiveSettings())
}

func TestTeam_FindByUsernameMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.team.FindByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, common.ErrProfileNotFound)
}
