package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noteandmore/api/internal/domain/entities"
	"github.com/noteandmore/api/internal/infrastructure/logger"
	"github.com/noteandmore/api/internal/ports"
)

const statsCacheTTL = 5 * time.Minute

// TaskService handles task operations
type TaskService struct {
	taskRepo     ports.TaskRepository
	categoryRepo ports.CategoryRepository
	cache        ports.CacheRepository
	logger       *logger.Logger
	now          func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, categoryRepo ports.CategoryRepository, cache ports.CacheRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateTaskRequest is the payload for creating a task
type CreateTaskRequest struct {
	Title            string                `json:"title" validate:"required,max=200"`
	Description      *string               `json:"description" validate:"omitempty,max=2000"`
	Priority         entities.Priority     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status           entities.TaskStatus   `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Category         *string               `json:"category"`
	Tags             []string              `json:"tags" validate:"omitempty,dive,max=30"`
	Stickers         []string              `json:"stickers"`
	DueDate          *time.Time            `json:"dueDate"`
	Reminder         *entities.Reminder    `json:"reminder"`
	Attachments      []entities.Attachment `json:"attachments"`
	Subtasks         []SubtaskRequest      `json:"subtasks" validate:"omitempty,dive"`
	EstimatedMinutes *int                  `json:"estimatedMinutes" validate:"omitempty,min=0"`
	ActualMinutes    *int                  `json:"actualMinutes" validate:"omitempty,min=0"`
}

// SubtaskRequest is an embedded subtask payload
type SubtaskRequest struct {
	ID        string `json:"id"`
	Title     string `json:"title" validate:"required,max=200"`
	Completed bool   `json:"completed"`
}

// UpdateTaskRequest is the payload for partial task updates
type UpdateTaskRequest struct {
	Title            *string                `json:"title" validate:"omitempty,max=200"`
	Description      *string                `json:"description" validate:"omitempty,max=2000"`
	Priority         *entities.Priority     `json:"priority" validate:"omitempty,oneof=low medium high"`
	Status           *entities.TaskStatus   `json:"status" validate:"omitempty,oneof=pending in-progress completed cancelled"`
	Category         *string                `json:"category"`
	Tags             *[]string              `json:"tags" validate:"omitempty,dive,max=30"`
	Stickers         *[]string              `json:"stickers"`
	DueDate          *time.Time             `json:"dueDate"`
	Reminder         *entities.Reminder     `json:"reminder"`
	Attachments      *[]entities.Attachment `json:"attachments"`
	Subtasks         *[]SubtaskRequest      `json:"subtasks" validate:"omitempty,dive"`
	EstimatedMinutes *int                   `json:"estimatedMinutes" validate:"omitempty,min=0"`
	ActualMinutes    *int                   `json:"actualMinutes" validate:"omitempty,min=0"`
}

// CreateTask creates a task owned by the given user
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req CreateTaskRequest) (*entities.Task, error) {
	now := s.now()

	task := &entities.Task{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            req.Title,
		Description:      req.Description,
		Priority:         req.Priority,
		Status:           req.Status,
		Category:         req.Category,
		Tags:             req.Tags,
		Stickers:         req.Stickers,
		DueDate:          req.DueDate,
		Attachments:      req.Attachments,
		Subtasks:         buildSubtasks(req.Subtasks, now),
		EstimatedMinutes: req.EstimatedMinutes,
		ActualMinutes:    req.ActualMinutes,
	}
	if task.Priority == "" {
		task.Priority = entities.PriorityMedium
	}
	if task.Status == "" {
		task.Status = entities.TaskStatusPending
	}
	if req.Reminder != nil {
		task.Reminder = *req.Reminder
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	task.StampCompletion(now)

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.bumpCategoryUsage(ctx, userID, task.Category)
	s.invalidateStats(ctx, userID)

	s.logger.Info("Task created", "task_id", task.ID, "user_id", userID)

	task.Derive(now)
	return task, nil
}

// GetTask returns a task after an ownership check
func (s *TaskService) GetTask(ctx context.Context, userID, taskID uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, entities.ErrForbidden
	}

	task.Derive(s.now())
	return task, nil
}

// UpdateTask applies a partial update. completedAt is recomputed from status
// on every save: a transition to completed stamps it once, a transition away
// clears it.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uuid.UUID, req UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, entities.ErrForbidden
	}

	now := s.now()

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Category != nil {
		task.Category = req.Category
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.Stickers != nil {
		task.Stickers = *req.Stickers
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Reminder != nil {
		task.Reminder = *req.Reminder
	}
	if req.Attachments != nil {
		task.Attachments = *req.Attachments
	}
	if req.Subtasks != nil {
		task.Subtasks = mergeSubtasks(task.Subtasks, *req.Subtasks)
	}
	if req.EstimatedMinutes != nil {
		task.EstimatedMinutes = req.EstimatedMinutes
	}
	if req.ActualMinutes != nil {
		task.ActualMinutes = req.ActualMinutes
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	task.StampCompletion(now)
	task.SyncSubtasks(now)

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidateStats(ctx, userID)

	task.Derive(now)
	return task, nil
}

// CompleteTask marks a task completed
func (s *TaskService) CompleteTask(ctx context.Context, userID, taskID uuid.UUID) (*entities.Task, error) {
	status := entities.TaskStatusCompleted
	return s.UpdateTask(ctx, userID, taskID, UpdateTaskRequest{Status: &status})
}

// DeleteTask removes a task after an ownership check
func (s *TaskService) DeleteTask(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return entities.ErrForbidden
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.invalidateStats(ctx, userID)

	s.logger.Info("Task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// ListTasks returns one page of the user's tasks
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) (*ports.Page[*entities.Task], error) {
	filter.Normalize()

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	total, err := s.taskRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	now := s.now()
	for _, task := range tasks {
		task.Derive(now)
	}

	return &ports.Page[*entities.Task]{
		Data:       tasks,
		Pagination: ports.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// Stats returns the per-user task summary, cache-aside with a short TTL
func (s *TaskService) Stats(ctx context.Context, userID uuid.UUID) (*entities.TaskStats, error) {
	key := statsCacheKey(userID)

	if s.cache != nil {
		var cached entities.TaskStats
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if err != ports.ErrCacheMiss {
			s.logger.Warn("Stats cache read failed", "error", err, "user_id", userID)
		}
	}

	stats, err := s.taskRepo.Stats(ctx, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, statsCacheTTL); err != nil {
			s.logger.Warn("Stats cache write failed", "error", err, "user_id", userID)
		}
	}

	return stats, nil
}

func (s *TaskService) invalidateStats(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKey(userID)); err != nil {
		s.logger.Warn("Stats cache invalidation failed", "error", err, "user_id", userID)
	}
}

func (s *TaskService) bumpCategoryUsage(ctx context.Context, userID uuid.UUID, name *string) {
	if name == nil || *name == "" || s.categoryRepo == nil {
		return
	}
	category, err := s.categoryRepo.GetByNameAndType(ctx, userID, *name, entities.CategoryTypeTask)
	if err != nil {
		return
	}
	if err := s.categoryRepo.IncrementUsage(ctx, category.ID); err != nil {
		s.logger.Warn("Category usage increment failed", "error", err, "category_id", category.ID)
	}
}

func statsCacheKey(userID uuid.UUID) string {
	return "stats:tasks:" + userID.String()
}

func buildSubtasks(reqs []SubtaskRequest, now time.Time) entities.Subtasks {
	if len(reqs) == 0 {
		return nil
	}
	subtasks := make(entities.Subtasks, 0, len(reqs))
	for _, r := range reqs {
		st := entities.Subtask{
			ID:        r.ID,
			Title:     r.Title,
			Completed: r.Completed,
		}
		if st.ID == "" {
			st.ID = uuid.NewString()
		}
		if st.Completed {
			ts := now
			st.CompletedAt = &ts
		}
		subtasks = append(subtasks, st)
	}
	return subtasks
}

// mergeSubtasks replaces the subtask list, carrying completion timestamps
// over for items that were already completed.
func mergeSubtasks(existing entities.Subtasks, reqs []SubtaskRequest) entities.Subtasks {
	prior := make(map[string]*time.Time, len(existing))
	for _, st := range existing {
		if st.Completed {
			prior[st.ID] = st.CompletedAt
		}
	}

	merged := make(entities.Subtasks, 0, len(reqs))
	for _, r := range reqs {
		st := entities.Subtask{
			ID:        r.ID,
			Title:     r.Title,
			Completed: r.Completed,
		}
		if st.ID == "" {
			st.ID = uuid.NewString()
		}
		if st.Completed {
			st.CompletedAt = prior[st.ID]
		}
		merged = append(merged, st)
	}
	return merged
}
