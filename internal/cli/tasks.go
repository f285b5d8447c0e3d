package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/models"
	"github.com/dmitrijs2005/taskhub/internal/services"
)

// ListTasks prints the board, newest first, optionally for one status.
func (a *App) ListTasks(ctx context.Context, args []string) error {
	var (
		tasks []models.Task
		err   error
	)
	if len(args) > 0 {
		tasks, err = a.taskService.ListByStatus(ctx, models.TaskStatus(args[0]))
	} else {
		tasks, err = a.taskService.List(ctx)
	}
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		a.println("No tasks.")
		return nil
	}

	names, err := a.usernames(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tASSIGNEE\tDUE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, statusLabel(t.Status), t.Title, assigneeName(t.AssigneeID, names), dateLabel(t.DueDate))
	}
	return tw.Flush()
}

// AddTask prompts for the fields of a new task.
func (a *App) AddTask(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	due, err := a.promptDate("Due date (YYYY-MM-DD, empty for none)")
	if err != nil {
		return err
	}
	assignee, err := a.promptAssignee(ctx)
	if err != nil {
		return err
	}

	t, err := a.taskService.Create(ctx, services.NewTask{
		Title:       title,
		Description: description,
		AssigneeID:  assignee,
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	a.printf("Created task %s.\n", t.ID)
	return nil
}

// MoveTask changes a task's status: move <id> <todo|in_progress|done>.
func (a *App) MoveTask(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Task id")
	if err != nil {
		return err
	}
	status, err := a.arg(args, 1, "New status (todo, in_progress, done)")
	if err != nil {
		return err
	}

	t, err := a.taskService.SetStatus(ctx, id, models.TaskStatus(status))
	if err != nil {
		return err
	}
	a.printf("Task %s is now %s.\n", t.ID, statusLabel(t.Status))
	return nil
}

// AssignTask sets or clears the assignee: assign <id> [username|-].
func (a *App) AssignTask(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Task id")
	if err != nil {
		return err
	}
	username, err := a.arg(args, 1, "Assignee username (- to unassign)")
	if err != nil {
		return err
	}

	var assignee *string
	if username != "-" && username != "" {
		p, err := a.teamService.FindByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("member %s: %w", username, err)
		}
		assignee = &p.ID
	}

	if _, err := a.taskService.Assign(ctx, id, assignee); err != nil {
		return err
	}
	a.println("Done.")
	return nil
}

func (a *App) DeleteTask(ctx context.Context, args []string) error {
	id, err := a.arg(args, 0, "Task id")
	if err != nil {
		return err
	}
	if err := a.taskService.Delete(ctx, id); err != nil {
		return err
	}
	a.println("Deleted.")
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	st, err := a.taskService.Stats(ctx)
	if err != nil {
		return err
	}
	a.printf("total %d, todo %d, in progress %d, done %d\n", st.Total, st.Todo, st.InProgress, st.Done)
	return nil
}

// ClearTasks deletes done tasks past the retention window.
func (a *App) ClearTasks(ctx context.Context, args []string) error {
	olderThan := services.DefaultRetention
	if len(args) > 0 {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return err
		}
		olderThan = d
	}
	n, err := a.taskService.ClearCompleted(ctx, olderThan)
	if err != nil {
		return err
	}
	a.printf("Cleanup complete: %d task(s) removed.\n", n)
	return nil
}

func (a *App) promptDate(prompt string) (*models.Timestamp, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return nil, err
	}
	ts, err := models.ParseTimestamp(s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (a *App) promptAssignee(ctx context.Context) (*string, error) {
	s, err := getSimpleText(a.reader, "Assignee username (empty for none)", a.out)
	if err != nil || s == "" {
		return nil, err
	}
	p, err := a.teamService.FindByUsername(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", s, err)
	}
	return &p.ID, nil
}

func (a *App) usernames(ctx context.Context) (map[string]string, error) {
	members, err := a.teamService.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Username
	}
	return names, nil
}

func statusLabel(s models.TaskStatus) string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// assigneeName tolerates ids of members that no longer exist.
func assigneeName(id *string, names map[string]string) string {
	if id == nil {
		return "-"
	}
	if n, ok := names[*id]; ok {
		return n
	}
	return "(removed)"
}

func dateLabel(ts *models.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02")
}
