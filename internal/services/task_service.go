package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskTitleRequired = errors.New("task title is required")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrTaskNotFound      = errors.New("task not found")
)

// TaskService handles task business logic. Tasks carry no owner of their
// own; authorization is always transitive through the parent project.
type TaskService struct {
	taskRepo       repository.TaskRepository
	projectService *ProjectService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectService *ProjectService) *TaskService {
	return &TaskService{
		taskRepo:       taskRepo,
		projectService: projectService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID   uint64
	ProjectID uint64
	Title     string
	Status    models.TaskStatus
	DueDate   *time.Time
	Notes     string
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	OwnerID uint64
	TaskID  uint64
	Title   string
	Status  models.TaskStatus
	DueDate *time.Time
	Notes   string
}

// ListTasksInput represents filters for listing a project's tasks
type ListTasksInput struct {
	OwnerID     uint64
	ProjectID   uint64
	Status      *models.TaskStatus
	TitleFilter string
}

// Create creates a task inside a project the acting user owns.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	project, err := s.projectService.Get(input.OwnerID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:     title,
		Status:    status,
		DueDate:   input.DueDate,
		Notes:     input.Notes,
		ProjectID: project.ID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// List returns a project's tasks, newest first, with optional exact status
// and case-insensitive title substring filters.
func (s *TaskService) List(input ListTasksInput) ([]models.Task, error) {
	project, err := s.projectService.Get(input.OwnerID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{
		ProjectID:   project.ID,
		Status:      input.Status,
		TitleFilter: strings.TrimSpace(input.TitleFilter),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// Get returns a task after resolving its parent project under ownerID.
func (s *TaskService) Get(ownerID, taskID uint64) (*models.Task, error) {
	return s.resolveOwnedTask(ownerID, taskID)
}

// Update replaces a task's mutable fields.
func (s *TaskService) Update(input UpdateTaskInput) (*models.Task, error) {
	task, err := s.resolveOwnedTask(input.OwnerID, input.TaskID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Status = status
	task.DueDate = input.DueDate
	task.Notes = input.Notes

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete removes a task after the same two-step ownership resolution.
func (s *TaskService) Delete(ownerID, taskID uint64) error {
	task, err := s.resolveOwnedTask(ownerID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// resolveOwnedTask loads a task and verifies its parent project belongs to
// ownerID. A missing task and a task in someone else's project both fail
// with ErrTaskNotFound.
func (s *TaskService) resolveOwnedTask(ownerID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.projectService.Get(ownerID, task.ProjectID); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// normalizeStatus applies the Todo default and rejects unknown statuses.
// Transitions between the three statuses are otherwise unrestricted.
func normalizeStatus(status models.TaskStatus) (models.TaskStatus, error) {
	if status == "" {
		return models.TaskStatusTodo, nil
	}
	if !models.ValidTaskStatus(status) {
		return "", ErrInvalidTaskStatus
	}
	return status, nil
}
