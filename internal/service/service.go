// Package service is the entry point for project operations. It turns
// "no such row" results from the store into NotFoundError.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/projects/internal/dao"
	"github.com/roach88/projects/internal/entity"
)

// ProjectStore is the storage the service depends on. *store.Store
// implements it.
type ProjectStore interface {
	InsertProject(ctx context.Context, project *entity.Project) (*entity.Project, error)
	FetchAllProjects(ctx context.Context) ([]entity.Project, error)
	FetchProjectByID(ctx context.Context, projectID int) (*entity.Project, bool, error)
	ModifyProjectDetails(ctx context.Context, project *entity.Project) (bool, error)
	DeleteProject(ctx context.Context, projectID int) (bool, error)
	AddMaterial(ctx context.Context, material *entity.Material) (*entity.Material, error)
	AddStep(ctx context.Context, step *entity.Step) (*entity.Step, error)
	InsertCategory(ctx context.Context, category *entity.Category) (*entity.Category, error)
	AddCategoryToProject(ctx context.Context, projectID int, categoryName string) error
	FetchAllCategories(ctx context.Context) ([]entity.Category, error)
}

// ProjectService exposes the project operations.
type ProjectService struct {
	store ProjectStore
}

// New returns a service backed by store.
func New(store ProjectStore) *ProjectService {
	return &ProjectService{store: store}
}

// AddProject stores a new project and returns it with its id.
func (s *ProjectService) AddProject(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	return s.store.InsertProject(ctx, project)
}

// FetchAllProjects returns all projects without their children.
func (s *ProjectService) FetchAllProjects(ctx context.Context) ([]entity.Project, error) {
	return s.store.FetchAllProjects(ctx)
}

// FetchProjectByID returns the full project or a NotFoundError.
func (s *ProjectService) FetchProjectByID(ctx context.Context, projectID int) (*entity.Project, error) {
	project, found, err := s.store.FetchProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, projectNotFound(projectID)
	}
	return project, nil
}

// ModifyProjectDetails updates the project's scalar fields.
func (s *ProjectService) ModifyProjectDetails(ctx context.Context, project *entity.Project) error {
	ok, err := s.store.ModifyProjectDetails(ctx, project)
	if err != nil {
		return err
	}
	if !ok {
		return projectNotFound(project.ProjectID)
	}
	return nil
}

// DeleteProject removes the project and its children.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID int) error {
	ok, err := s.store.DeleteProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return projectNotFound(projectID)
	}
	return nil
}

// AddMaterial adds a material to an existing project.
func (s *ProjectService) AddMaterial(ctx context.Context, material *entity.Material) (*entity.Material, error) {
	if err := s.requireProject(ctx, material.ProjectID); err != nil {
		return nil, err
	}
	return s.store.AddMaterial(ctx, material)
}

// AddStep appends a step to an existing project.
func (s *ProjectService) AddStep(ctx context.Context, step *entity.Step) (*entity.Step, error) {
	if err := s.requireProject(ctx, step.ProjectID); err != nil {
		return nil, err
	}
	return s.store.AddStep(ctx, step)
}

// AddCategory creates a category.
func (s *ProjectService) AddCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	return s.store.InsertCategory(ctx, category)
}

// AddCategoryToProject links the named category to a project.
func (s *ProjectService) AddCategoryToProject(ctx context.Context, projectID int, categoryName string) error {
	if err := s.requireProject(ctx, projectID); err != nil {
		return err
	}
	err := s.store.AddCategoryToProject(ctx, projectID, categoryName)
	if errors.Is(err, dao.ErrNoRows) {
		return &NotFoundError{Entity: "category", Key: fmt.Sprintf("name=%q", categoryName)}
	}
	return err
}

// FetchAllCategories returns every category.
func (s *ProjectService) FetchAllCategories(ctx context.Context) ([]entity.Category, error) {
	return s.store.FetchAllCategories(ctx)
}

// requireProject checks the project exists so child inserts report
// NotFoundError instead of a foreign key violation.
func (s *ProjectService) requireProject(ctx context.Context, projectID int) error {
	_, err := s.FetchProjectByID(ctx, projectID)
	return err
}
