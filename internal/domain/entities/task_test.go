package entities

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validTask() *Task {
	return &Task{
		Title:    "Write report",
		Priority: PriorityMedium,
		Status:   TaskStatusPending,
	}
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	if err := validTask().Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Task)
	}{
		{"empty title", func(task *Task) { task.Title = "" }},
		{"title too long", func(task *Task) { task.Title = strings.Repeat("a", 201) }},
		{"description too long", func(task *Task) {
			d := strings.Repeat("b", 2001)
			task.Description = &d
		}},
		{"bad priority", func(task *Task) { task.Priority = "urgent" }},
		{"bad status", func(task *Task) { task.Status = "done" }},
		{"tag too long", func(task *Task) { task.Tags = []string{strings.Repeat("t", 31)} }},
		{"subtask without title", func(task *Task) { task.Subtasks = Subtasks{{ID: "1"}} }},
		{"negative estimate", func(task *Task) {
			m := -5
			task.EstimatedMinutes = &m
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task := validTask()
			tc.mutate(task)
			err := task.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestStampCompletion(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	task := validTask()
	task.Status = TaskStatusCompleted
	task.StampCompletion(now)
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Fatalf("expected completedAt %v, got %v", now, task.CompletedAt)
	}

	// A second save must not move the timestamp.
	later := now.Add(time.Hour)
	task.StampCompletion(later)
	if !task.CompletedAt.Equal(now) {
		t.Fatalf("completedAt moved on re-save: %v", task.CompletedAt)
	}

	// Leaving completed clears it.
	task.Status = TaskStatusInProgress
	task.StampCompletion(later)
	if task.CompletedAt != nil {
		t.Fatalf("expected completedAt cleared, got %v", task.CompletedAt)
	}
}

func TestSyncSubtasks(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stamped := now.Add(-time.Hour)

	task := validTask()
	task.Subtasks = Subtasks{
		{ID: "a", Title: "done earlier", Completed: true, CompletedAt: &stamped},
		{ID: "b", Title: "just done", Completed: true},
		{ID: "c", Title: "reopened", Completed: false, CompletedAt: &stamped},
	}
	task.SyncSubtasks(now)

	if !task.Subtasks[0].CompletedAt.Equal(stamped) {
		t.Fatalf("existing stamp moved: %v", task.Subtasks[0].CompletedAt)
	}
	if task.Subtasks[1].CompletedAt == nil || !task.Subtasks[1].CompletedAt.Equal(now) {
		t.Fatalf("expected new stamp %v, got %v", now, task.Subtasks[1].CompletedAt)
	}
	if task.Subtasks[2].CompletedAt != nil {
		t.Fatalf("expected cleared stamp, got %v", task.Subtasks[2].CompletedAt)
	}
}

func TestCompletion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		status   TaskStatus
		subtasks Subtasks
		want     int
	}{
		{"no subtasks pending", TaskStatusPending, nil, 0},
		{"no subtasks completed", TaskStatusCompleted, nil, 100},
		{"two of three done", TaskStatusInProgress, Subtasks{
			{ID: "1", Title: "a", Completed: true},
			{ID: "2", Title: "b", Completed: true},
			{ID: "3", Title: "c"},
		}, 67},
		{"one of three done", TaskStatusInProgress, Subtasks{
			{ID: "1", Title: "a", Completed: true},
			{ID: "2", Title: "b"},
			{ID: "3", Title: "c"},
		}, 33},
		{"all done", TaskStatusInProgress, Subtasks{
			{ID: "1", Title: "a", Completed: true},
			{ID: "2", Title: "b", Completed: true},
		}, 100},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task := validTask()
			task.Status = tc.status
			task.Subtasks = tc.subtasks
			if got := task.Completion(); got != tc.want {
				t.Fatalf("completion = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestOverdue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	task := validTask()
	if task.Overdue(now) {
		t.Fatal("task without due date should not be overdue")
	}

	task.DueDate = &tomorrow
	if task.Overdue(now) {
		t.Fatal("task due tomorrow should not be overdue")
	}

	task.DueDate = &yesterday
	if !task.Overdue(now) {
		t.Fatal("task due yesterday should be overdue")
	}

	task.Status = TaskStatusCompleted
	if task.Overdue(now) {
		t.Fatal("completed task should never be overdue")
	}
}

func TestDerive(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)

	task := validTask()
	task.Status = TaskStatusInProgress
	task.DueDate = &yesterday
	task.Subtasks = Subtasks{
		{ID: "1", Title: "a", Completed: true},
		{ID: "2", Title: "b"},
	}
	task.Derive(now)

	if task.CompletionPercentage != 50 {
		t.Fatalf("completionPercentage = %d, want 50", task.CompletionPercentage)
	}
	if !task.IsOverdue {
		t.Fatal("expected isOverdue true")
	}
}
