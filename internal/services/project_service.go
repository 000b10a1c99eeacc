package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProjectNotFound     = errors.New("project not found")
)

// ProjectService handles project business logic. Every operation takes the
// acting user's ID explicitly; there is no ambient current-user state.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// Create creates a project owned by ownerID.
func (s *ProjectService) Create(ownerID uint64, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// List returns the owner's projects, newest first, optionally filtered by a
// case-insensitive name substring.
func (s *ProjectService) List(ownerID uint64, nameFilter string) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a project owned by ownerID. A missing project and a project
// owned by someone else both fail with ErrProjectNotFound so existence is
// not leaked to non-owners.
func (s *ProjectService) Get(ownerID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDAndOwner(projectID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// Update renames a project and replaces its description.
func (s *ProjectService) Update(ownerID, projectID uint64, name, description string) (*models.Project, error) {
	project, err := s.Get(ownerID, projectID)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}

	project.Name = name
	project.Description = description

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// Delete removes a project and, atomically, all of its tasks.
func (s *ProjectService) Delete(ownerID, projectID uint64) error {
	project, err := s.Get(ownerID, projectID)
	if err != nil {
		return err
	}

	if err := s.projectRepo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
