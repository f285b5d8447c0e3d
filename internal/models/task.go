package models

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a unit of work on the board. AssigneeID is a weak reference to a
// profile id; nothing cascades when that profile goes away.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	AssigneeID  *string    `json:"assignee_id"`
	StartDate   *Timestamp `json:"start_date"`
	DueDate     *Timestamp `json:"due_date"`
	CompletedAt *Timestamp `json:"completed_at"`
	CreatedAt   *Timestamp `json:"created_at,omitempty"`
}
