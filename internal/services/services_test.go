package services

import (
	"testing"

	"github.com/dmitrijs2005/taskhub/internal/kv"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/store"
)

type fixture struct {
	repo  *kv.MemoryRepository
	st    *store.Store
	auth  AuthService
	team  TeamService
	tasks *taskService
}

func newFixture(t *testing.T, opts ...store.Option) *fixture {
	t.Helper()
	repo := kv.NewMemoryRepository()
	st := store.New(repo, append([]store.Option{store.WithLatency(0), store.WithMasterPassword("master")}, opts...)...)
	log := logging.Discard()
	return &fixture{
		repo:  repo,
		st:    st,
		auth:  NewAuthService(st, log),
		team:  NewTeamService(st, log),
		tasks: NewTaskService(st, log).(*taskService),
	}
}
