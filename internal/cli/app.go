package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/services"
)

// App is one interactive session. It caches the signed-in user so the
// prompt and the admin checks do not hit the store on every line.
type App struct {
	authService services.AuthService
	teamService services.TeamService
	taskService services.TaskService
	logger      logging.Logger

	reader *bufio.Reader
	out    io.Writer
	user   *services.CurrentUser
}

func NewApp(auth services.AuthService, team services.TeamService, tasks services.TaskService, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		authService: auth,
		teamService: team,
		taskService: tasks,
		logger:      logger,
		reader:      bufio.NewReader(in),
		out:         out,
	}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) isAdmin() bool {
	return a.user != nil && a.user.IsAdmin()
}

// refreshUser reloads the signed-in user. A session that no longer
// verifies is dropped.
func (a *App) refreshUser(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		a.user = nil
		a.logger.Warn(ctx, "stored session rejected", "error", err)
		return a.authService.Logout(ctx)
	}
	a.user = u
	return nil
}

func (a *App) getStatus() string {
	if a.user == nil {
		return "(signed out)"
	}
	if a.isAdmin() {
		return fmt.Sprintf("(%s admin)", a.user.Username())
	}
	return fmt.Sprintf("(%s)", a.user.Username())
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// arg returns args[i], or prompts for it when it was not given inline.
func (a *App) arg(args []string, i int, prompt string) (string, error) {
	if i < len(args) {
		return args[i], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
