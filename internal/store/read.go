package store

import (
	"context"
	"fmt"

	"github.com/roach88/projects/internal/dao"
	"github.com/roach88/projects/internal/entity"
)

const (
	categoryTable        = "category"
	materialTable        = "material"
	projectTable         = "project"
	projectCategoryTable = "project_category"
	stepTable            = "step"
)

// FetchAllProjects returns every project row ordered by name. Child
// collections are left empty.
func (s *Store) FetchAllProjects(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	err := s.tx.Run(ctx, "fetch all projects", func(tx dao.Querier) error {
		var err error
		projects, err = dao.QueryAll[entity.Project](ctx, tx,
			"SELECT * FROM "+projectTable+" ORDER BY project_name", nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// FetchProjectByID returns the project with its materials, steps and
// categories. found is false when no such project exists; in that case no
// child table is queried.
func (s *Store) FetchProjectByID(ctx context.Context, projectID int) (project *entity.Project, found bool, err error) {
	err = s.tx.Run(ctx, "fetch project", func(tx dao.Querier) error {
		p, ok, err := dao.QueryOne[entity.Project](ctx, tx,
			"SELECT * FROM "+projectTable+" WHERE project_id = ?", idParams(projectID))
		if err != nil {
			return fmt.Errorf("query project: %w", err)
		}
		if !ok {
			return nil
		}

		materials, err := fetchMaterialsForProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		steps, err := fetchStepsForProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		categories, err := fetchCategoriesForProject(ctx, tx, projectID)
		if err != nil {
			return err
		}

		p.Materials = append(p.Materials, materials...)
		p.Steps = append(p.Steps, steps...)
		p.Categories = append(p.Categories, categories...)
		project = p
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return project, project != nil, nil
}

// FetchAllCategories returns every category ordered by name.
func (s *Store) FetchAllCategories(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := s.tx.Run(ctx, "fetch all categories", func(tx dao.Querier) error {
		var err error
		categories, err = dao.QueryAll[entity.Category](ctx, tx,
			"SELECT * FROM "+categoryTable+" ORDER BY category_name", nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func fetchMaterialsForProject(ctx context.Context, tx dao.Querier, projectID int) ([]entity.Material, error) {
	materials, err := dao.QueryAll[entity.Material](ctx, tx,
		"SELECT * FROM "+materialTable+" WHERE project_id = ? ORDER BY material_id", idParams(projectID))
	if err != nil {
		return nil, fmt.Errorf("query materials: %w", err)
	}
	return materials, nil
}

func fetchStepsForProject(ctx context.Context, tx dao.Querier, projectID int) ([]entity.Step, error) {
	steps, err := dao.QueryAll[entity.Step](ctx, tx,
		"SELECT * FROM "+stepTable+" WHERE project_id = ? ORDER BY step_order, step_id", idParams(projectID))
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	return steps, nil
}

func fetchCategoriesForProject(ctx context.Context, tx dao.Querier, projectID int) ([]entity.Category, error) {
	query := "SELECT c.* FROM " + categoryTable + " c" +
		" JOIN " + projectCategoryTable + " pc USING (category_id)" +
		" WHERE pc.project_id = ? ORDER BY c.category_name"
	categories, err := dao.QueryAll[entity.Category](ctx, tx, query, idParams(projectID))
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return categories, nil
}

// categoryByName looks a category up inside tx.
func categoryByName(ctx context.Context, tx dao.Querier, name string) (*entity.Category, bool, error) {
	params := dao.NewParams().Add(name, dao.TypeOf[string]())
	c, found, err := dao.QueryOne[entity.Category](ctx, tx,
		"SELECT * FROM "+categoryTable+" WHERE category_name = ?", params)
	if err != nil {
		return nil, false, fmt.Errorf("query category: %w", err)
	}
	return c, found, nil
}
