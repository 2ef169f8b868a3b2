package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"todoweb/internal/domain"
	"todoweb/internal/repository"
)

// DueDateLayout is the wire format for due dates, both in forms and in
// rendered pages.
const DueDateLayout = "2006-01-02"

// CreateTaskRequest holds the form data for a new task.
type CreateTaskRequest struct {
	Title   string
	DueDate *time.Time
}

// UpdateTaskRequest holds the form data for editing a task. Pointer fields
// distinguish "not submitted" from a zero value; ClearDueDate nulls the date
// when the form posts an empty due_date.
type UpdateTaskRequest struct {
	Title        *string
	DueDate      *time.Time
	ClearDueDate bool
	Completed    *bool
}

// TaskResponse is the representation of a task handed to the HTTP layer.
type TaskResponse struct {
	ID        uint
	Title     string
	DueDate   string // YYYY-MM-DD, empty when unset
	Completed bool
	CreatedAt string
	UpdatedAt string
}

// TaskService contains the business rules for tasks.
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)
	GetTaskByID(ctx context.Context, id uint) (*TaskResponse, error)
	GetAllTasks(ctx context.Context) ([]TaskResponse, error)
	UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error)
	ToggleTask(ctx context.Context, id uint) (*TaskResponse, error)
	DeleteTask(ctx context.Context, id uint) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a new task service backed by repo.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

// CreateTask persists a new task. A blank title is rejected with
// domain.ErrEmptyTitle; the handler decides how to surface that.
func (s *taskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}

	task := &domain.Task{
		Title:   title,
		DueDate: req.DueDate,
	}
	if err := s.repo.Create(task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return toResponse(task), nil
}

func (s *taskService) GetTaskByID(ctx context.Context, id uint) (*TaskResponse, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return toResponse(task), nil
}

func (s *taskService) GetAllTasks(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, *toResponse(&tasks[i]))
	}
	return responses, nil
}

// UpdateTask mutates an existing task in place. Only submitted fields are
// touched; a blank title keeps the current one.
func (s *taskService) UpdateTask(ctx context.Context, id uint, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if title := strings.TrimSpace(*req.Title); title != "" {
			task.Title = title
		}
	}
	if req.ClearDueDate {
		task.DueDate = nil
	} else if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("update task %d: %w", id, err)
	}

	return toResponse(task), nil
}

// ToggleTask flips the completion flag and returns the new state.
func (s *taskService) ToggleTask(ctx context.Context, id uint) (*TaskResponse, error) {
	task, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.repo.Update(task); err != nil {
		return nil, fmt.Errorf("toggle task %d: %w", id, err)
	}

	return toResponse(task), nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uint) error {
	// The repository reports a missing row as domain.ErrTaskNotFound.
	return s.repo.Delete(id)
}

func toResponse(task *domain.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	}
	if task.DueDate != nil {
		resp.DueDate = task.DueDate.Format(DueDateLayout)
	}
	return resp
}
