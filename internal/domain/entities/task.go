package entities

import (
	"database/sql/driver"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

const (
	maxTaskTitleLen       = 200
	maxTaskDescriptionLen = 2000
	maxTagLen             = 30
)

// Reminder is the per-task reminder sub-object, stored as a JSONB column.
type Reminder struct {
	Enabled  bool       `json:"enabled"`
	Datetime *time.Time `json:"datetime,omitempty"`
	Sent     bool       `json:"sent"`
}

func (r Reminder) Value() (driver.Value, error) { return jsonValue(r) }
func (r *Reminder) Scan(src interface{}) error  { return scanJSON(r, src) }

// Subtask is an embedded checklist entry; completion of the parent task is
// derived from these.
type Subtask struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type Subtasks []Subtask

func (s Subtasks) Value() (driver.Value, error) { return jsonValue(s) }
func (s *Subtasks) Scan(src interface{}) error  { return scanJSON(s, src) }

// Attachment describes an uploaded file linked to a task.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) { return jsonValue(a) }
func (a *Attachments) Scan(src interface{}) error  { return scanJSON(a, src) }

// Task is the central entity: a user-owned todo item with embedded subtasks,
// attachments and reminder settings.
type Task struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	UserID           uuid.UUID      `json:"userId" db:"user_id"`
	Title            string         `json:"title" db:"title"`
	Description      *string        `json:"description" db:"description"`
	Priority         Priority       `json:"priority" db:"priority"`
	Status           TaskStatus     `json:"status" db:"status"`
	Category         *string        `json:"category" db:"category"`
	Tags             pq.StringArray `json:"tags" db:"tags"`
	Stickers         pq.StringArray `json:"stickers" db:"stickers"`
	DueDate          *time.Time     `json:"dueDate" db:"due_date"`
	Reminder         Reminder       `json:"reminder" db:"reminder"`
	Attachments      Attachments    `json:"attachments" db:"attachments"`
	Subtasks         Subtasks       `json:"subtasks" db:"subtasks"`
	EstimatedMinutes *int           `json:"estimatedMinutes" db:"estimated_minutes"`
	ActualMinutes    *int           `json:"actualMinutes" db:"actual_minutes"`
	CompletedAt      *time.Time     `json:"completedAt" db:"completed_at"`
	CreatedAt        time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time      `json:"updatedAt" db:"updated_at"`

	// Computed on read, never persisted.
	CompletionPercentage int  `json:"completionPercentage" db:"-"`
	IsOverdue            bool `json:"isOverdue" db:"-"`
}

// Validate enforces the field constraints before a task is persisted.
func (t *Task) Validate() error {
	if t.Title == "" {
		return validationError("title is required")
	}
	if len(t.Title) > maxTaskTitleLen {
		return validationError("title must be at most %d characters", maxTaskTitleLen)
	}
	if t.Description != nil && len(*t.Description) > maxTaskDescriptionLen {
		return validationError("description must be at most %d characters", maxTaskDescriptionLen)
	}
	if !t.Priority.IsValid() {
		return validationError("priority must be one of low, medium, high")
	}
	if !t.Status.IsValid() {
		return validationError("status must be one of pending, in-progress, completed, cancelled")
	}
	for _, tag := range t.Tags {
		if len(tag) > maxTagLen {
			return validationError("tag %q must be at most %d characters", tag, maxTagLen)
		}
	}
	for _, st := range t.Subtasks {
		if st.Title == "" {
			return validationError("subtask title is required")
		}
		if len(st.Title) > maxTaskTitleLen {
			return validationError("subtask title must be at most %d characters", maxTaskTitleLen)
		}
	}
	if t.EstimatedMinutes != nil && *t.EstimatedMinutes < 0 {
		return validationError("estimated minutes must not be negative")
	}
	if t.ActualMinutes != nil && *t.ActualMinutes < 0 {
		return validationError("actual minutes must not be negative")
	}
	return nil
}

// StampCompletion keeps completedAt in sync with status on every save:
// moving to completed stamps the time once, moving away clears it.
func (t *Task) StampCompletion(now time.Time) {
	if t.Status == TaskStatusCompleted {
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
		return
	}
	t.CompletedAt = nil
}

// SyncSubtasks applies the same stamping rule to embedded subtasks.
func (t *Task) SyncSubtasks(now time.Time) {
	for i := range t.Subtasks {
		if t.Subtasks[i].Completed {
			if t.Subtasks[i].CompletedAt == nil {
				ts := now
				t.Subtasks[i].CompletedAt = &ts
			}
			continue
		}
		t.Subtasks[i].CompletedAt = nil
	}
}

// Completion returns the completion percentage. With no subtasks it is all or
// nothing based on status; otherwise it is the completed share rounded half up.
func (t *Task) Completion() int {
	if len(t.Subtasks) == 0 {
		if t.Status == TaskStatusCompleted {
			return 100
		}
		return 0
	}
	done := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(t.Subtasks)) * 100))
}

// Overdue reports whether the task is past its due date. Completed tasks are
// never overdue.
func (t *Task) Overdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return now.After(*t.DueDate)
}

// Derive fills the computed response fields.
func (t *Task) Derive(now time.Time) {
	t.CompletionPercentage = t.Completion()
	t.IsOverdue = t.Overdue(now)
}

// TaskStats is the aggregate returned by the stats summary endpoint.
type TaskStats struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	InProgress     int64   `json:"inProgress"`
	Completed      int64   `json:"completed"`
	Cancelled      int64   `json:"cancelled"`
	Overdue        int64   `json:"overdue"`
	CompletionRate float64 `json:"completionRate"`
}
