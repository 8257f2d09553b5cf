package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

const taskColumns = `id, user_id, title, description, priority, status, category, tags, stickers,
	due_date, reminder, attachments, subtasks, estimated_minutes, actual_minutes,
	completed_at, created_at, updated_at`

var taskSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, priority, status, category, tags,
			stickers, due_date, reminder, attachments, subtasks, estimated_minutes,
			actual_minutes, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.UserID, task.Title, task.Description, task.Priority, task.Status,
		task.Category, task.Tags, task.Stickers, task.DueDate, task.Reminder,
		task.Attachments, task.Subtasks, task.EstimatedMinutes, task.ActualMinutes,
		task.CompletedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, priority = $4, status = $5, category = $6,
			tags = $7, stickers = $8, due_date = $9, reminder = $10, attachments = $11,
			subtasks = $12, estimated_minutes = $13, actual_minutes = $14,
			completed_at = $15, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Priority, task.Status, task.Category,
		task.Tags, task.Stickers, task.DueDate, task.Reminder, task.Attachments,
		task.Subtasks, task.EstimatedMinutes, task.ActualMinutes, task.CompletedAt,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	where, args := buildTaskWhere(filter)

	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		taskColumns, where,
		sortColumn(taskSortColumns, filter.SortBy, "created_at"), sortDirection(filter.SortOrder),
		filter.Limit, filter.Offset(),
	)

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) Count(ctx context.Context, filter ports.TaskFilter) (int64, error) {
	where, args := buildTaskWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM tasks WHERE %s`, where)

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}

	return count, nil
}

func (r *TaskRepositoryImpl) Stats(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.TaskStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'in-progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
			COUNT(*) FILTER (WHERE due_date IS NOT NULL AND status <> 'completed' AND due_date < $2) AS overdue
		FROM tasks
		WHERE user_id = $1`

	var row struct {
		Total      int64 `db:"total"`
		Pending    int64 `db:"pending"`
		InProgress int64 `db:"in_progress"`
		Completed  int64 `db:"completed"`
		Cancelled  int64 `db:"cancelled"`
		Overdue    int64 `db:"overdue"`
	}

	if err := r.db.GetContext(ctx, &row, query, userID, now); err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}

	stats := &entities.TaskStats{
		Total:      row.Total,
		Pending:    row.Pending,
		InProgress: row.InProgress,
		Completed:  row.Completed,
		Cancelled:  row.Cancelled,
		Overdue:    row.Overdue,
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total) * 100
	}

	return stats, nil
}

func buildTaskWhere(filter ports.TaskFilter) (string, []interface{}) {
	b := newWhereBuilder()
	b.add("user_id = %s", filter.UserID)

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		b.add("(title ILIKE %s OR description ILIKE %s)", pattern, pattern)
	}
	if filter.Status != nil {
		b.add("status = %s", *filter.Status)
	}
	if filter.Priority != nil {
		b.add("priority = %s", *filter.Priority)
	}
	if filter.Category != nil {
		b.add("category = %s", *filter.Category)
	}
	if filter.Tag != nil {
		b.add("%s = ANY(tags)", *filter.Tag)
	}
	if filter.DueBefore != nil {
		b.add("due_date <= %s", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		b.add("due_date >= %s", *filter.DueAfter)
	}

	return b.where(), b.args
}
