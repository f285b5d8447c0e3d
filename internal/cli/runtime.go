package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskhub/internal/config"
	"github.com/dmitrijs2005/taskhub/internal/kv"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/services"
	"github.com/dmitrijs2005/taskhub/internal/store"
)

// Runtime holds the wired dependencies shared by every command.
type Runtime struct {
	Logger logging.Logger
	Store  *store.Store
	Auth   services.AuthService
	Team   services.TeamService
	Tasks  services.TaskService

	repo kv.Repository
}

// Bootstrap opens the configured storage and builds the services on top
// of it. Log records go to logOut.
func Bootstrap(ctx context.Context, cfg *config.Config, logOut io.Writer) (*Runtime, error) {
	logger, err := logging.NewTextLogger(logOut, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	repo, err := kv.Open(ctx, cfg.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	logger.Debug(ctx, "storage opened", "backend", cfg.StorageBackend)

	st := store.New(repo, cfg.StoreOptions(logger)...)
	return &Runtime{
		Logger: logger,
		Store:  st,
		Auth:   services.NewAuthService(st, logger),
		Team:   services.NewTeamService(st, logger),
		Tasks:  services.NewTaskService(st, logger),
		repo:   repo,
	}, nil
}

// NewApp builds an interactive session over the runtime's services.
func (r *Runtime) NewApp(in io.Reader, out io.Writer) *App {
	return NewApp(r.Auth, r.Team, r.Tasks, r.Logger, in, out)
}

func (r *Runtime) Close() error {
	return r.repo.Close()
}
