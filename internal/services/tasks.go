package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/dmitrijs2005/taskhub/internal/models"
	"github.com/dmitrijs2005/taskhub/internal/store"
)

// DefaultRetention is how long completed tasks stay on the board.
const DefaultRetention = 24 * time.Hour

// NewTask is the input of TaskService.Create.
type NewTask struct {
	Title       string
	Description string
	Status      models.TaskStatus
	AssigneeID  *string
	StartDate   *models.Timestamp
	DueDate     *models.Timestamp
}

// Stats counts tasks per status.
type Stats struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
}

// TaskService manages the task board.
//
// Contract:
//   - Create: validates the title, status and assignee; a task created as
//     done is stamped completed at once.
//   - List: every task, newest first.
//   - SetStatus: moving to done stamps completed_at, any other status
//     clears it.
//   - Assign: a nil assignee unassigns.
//   - ClearCompleted: deletes done tasks completed before now-olderThan.
type TaskService interface {
	Create(ctx context.Context, in NewTask) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	ListByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	SetStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error)
	Assign(ctx context.Context, id string, assigneeID *string) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	ClearCompleted(ctx context.Context, olderThan time.Duration) (int, error)
	Stats(ctx context.Context) (Stats, error)
}

type taskService struct {
	st     *store.Store
	logger logging.Logger
	now    func() time.Time
}

func NewTaskService(st *store.Store, logger logging.Logger) TaskService {
	return &taskService{st: st, logger: logger.With("service", "tasks"), now: time.Now}
}

func (s *taskService) Create(ctx context.Context, in NewTask) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.ErrEmptyTitle
	}
	status := in.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !status.Valid() {
		return nil, common.ErrInvalidStatus
	}
	if in.AssigneeID != nil {
		if err := s.checkAssignee(ctx, *in.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := models.Task{
		Title:       title,
		Description: in.Description,
		Status:      status,
		AssigneeID:  in.AssigneeID,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
	}
	if status == models.TaskStatusDone {
		task.CompletedAt = models.NewTimestampPtr(s.now())
	}

	rec, err := store.ToRecord(task)
	if err != nil {
		return nil, err
	}
	delete(rec, "id")

	res, err := s.st.From(store.Tasks).Insert(rec).Select().Single().Execute(ctx)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	created, err := decodeTask(res.Row())
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "task created", "task_id", created.ID, "status", created.Status)
	return created, nil
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	res, err := s.st.From(store.Tasks).Select("*").Order("created_at", false).Execute(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Task](res.Data)
}

func (s *taskService) ListByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	if !status.Valid() {
		return nil, common.ErrInvalidStatus
	}
	res, err := s.st.From(store.Tasks).Select("*").Eq("status", status).Order("created_at", false).Execute(ctx)
	if err != nil {
		return nil, err
	}
	return store.DecodeAll[models.Task](res.Data)
}

func (s *taskService) Get(ctx context.Context, id string) (*models.Task, error) {
	res, err := s.st.From(store.Tasks).Select("*").Eq("id", id).Single().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return decodeTask(res.Row())
}

func (s *taskService) SetStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, common.ErrInvalidStatus
	}
	updates := store.Record{"status": status, "completed_at": nil}
	if status == models.TaskStatusDone {
		updates["completed_at"] = models.NewTimestamp(s.now())
	}
	t, err := s.update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "task status changed", "task_id", id, "status", status)
	return t, nil
}

func (s *taskService) Assign(ctx context.Context, id string, assigneeID *string) (*models.Task, error) {
	updates := store.Record{"assignee_id": nil}
	if assigneeID != nil {
		if err := s.checkAssignee(ctx, *assigneeID); err != nil {
			return nil, err
		}
		updates["assignee_id"] = *assigneeID
	}
	return s.update(ctx, id, updates)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	res, err := s.st.From(store.Tasks).Delete().Eq("id", id).Execute(ctx)
	if err != nil {
		return err
	}
	if len(res.Data) == 0 {
		return common.ErrTaskNotFound
	}
	return nil
}

func (s *taskService) ClearCompleted(ctx context.Context, olderThan time.Duration) (int, error) {
	if olderThan <= 0 {
		olderThan = DefaultRetention
	}
	cutoff := s.now().Add(-olderThan)

	res, err := s.st.From(store.Tasks).Delete().
		Eq("status", models.TaskStatusDone).
		Lt("completed_at", models.NewTimestamp(cutoff)).
		Execute(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear completed tasks: %w", err)
	}

	s.logger.Info(ctx, "completed tasks cleared", "count", len(res.Data), "cutoff", models.FormatTimestamp(cutoff))
	return len(res.Data), nil
}

func (s *taskService) Stats(ctx context.Context) (Stats, error) {
	tasks, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskStatusTodo:
			st.Todo++
		case models.TaskStatusInProgress:
			st.InProgress++
		case models.TaskStatusDone:
			st.Done++
		}
	}
	return st, nil
}

func (s *taskService) checkAssignee(ctx context.Context, id string) error {
	if _, err := getProfile(ctx, s.st, id); err != nil {
		return fmt.Errorf("assignee %s: %w", id, err)
	}
	return nil
}

func (s *taskService) update(ctx context.Context, id string, updates store.Record) (*models.Task, error) {
	res, err := s.st.From(store.Tasks).Update(updates).Eq("id", id).Select().Single().Execute(ctx)
	if err != nil {
		return nil, err
	}
	return decodeTask(res.Row())
}

func decodeTask(row store.Record) (*models.Task, error) {
	if row == nil {
		return nil, common.ErrTaskNotFound
	}
	t, err := store.Decode[models.Task](row)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
