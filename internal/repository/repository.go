package repository

import (
	"github.com/taskdeck/taskdeck/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by (normalized) email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByIDAndOwner finds a project by ID scoped to its owner.
	// A project owned by someone else behaves exactly like a missing one.
	FindByIDAndOwner(id, ownerID uint64) (*models.Project, error)

	// ListByOwner lists an owner's projects, newest first, optionally
	// filtered by a case-insensitive name substring.
	ListByOwner(ownerID uint64, nameFilter string) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and all its tasks in one transaction
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID   uint64
	Status      *models.TaskStatus
	TitleFilter string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// List lists a project's tasks, newest first, with optional filters
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}
