package store

import (
	"context"
	"fmt"

	"github.com/roach88/projects/internal/dao"
	"github.com/roach88/projects/internal/entity"
)

// InsertProject inserts the project's scalar fields and sets ProjectID from
// the generated key. Child collections are not written.
func (s *Store) InsertProject(ctx context.Context, project *entity.Project) (*entity.Project, error) {
	var projectID int
	err := s.tx.Run(ctx, "insert project", func(tx dao.Querier) error {
		_, err := dao.Exec(ctx, tx, `
			INSERT INTO project
			(project_name, estimated_hours, actual_hours, difficulty, notes)
			VALUES (?, ?, ?, ?, ?)
		`, projectParams(project))
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}

		id, err := dao.LastInsertID(ctx, tx, s.dialect, projectTable)
		if err != nil {
			return err
		}
		projectID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	project.ProjectID = projectID
	return project, nil
}

// ModifyProjectDetails overwrites the scalar fields of the project with
// project.ProjectID. It reports whether exactly one row was updated.
func (s *Store) ModifyProjectDetails(ctx context.Context, project *entity.Project) (bool, error) {
	var updated bool
	err := s.tx.Run(ctx, "modify project", func(tx dao.Querier) error {
		params := projectParams(project).Add(project.ProjectID, intType)
		res, err := dao.Exec(ctx, tx, `
			UPDATE project SET
			project_name = ?, estimated_hours = ?, actual_hours = ?, difficulty = ?, notes = ?
			WHERE project_id = ?
		`, params)
		if err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		updated, err = exactlyOne(res)
		return err
	})
	if err != nil {
		return false, err
	}
	return updated, nil
}

// DeleteProject removes a project; its materials, steps and category links
// go with it. It reports whether exactly one row was deleted.
func (s *Store) DeleteProject(ctx context.Context, projectID int) (bool, error) {
	var deleted bool
	err := s.tx.Run(ctx, "delete project", func(tx dao.Querier) error {
		res, err := dao.Exec(ctx, tx, "DELETE FROM "+projectTable+" WHERE project_id = ?", idParams(projectID))
		if err != nil {
			return fmt.Errorf("delete project: %w", err)
		}
		deleted, err = exactlyOne(res)
		return err
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// AddMaterial inserts a material for material.ProjectID and sets MaterialID.
func (s *Store) AddMaterial(ctx context.Context, material *entity.Material) (*entity.Material, error) {
	var materialID int
	err := s.tx.Run(ctx, "add material", func(tx dao.Querier) error {
		_, err := dao.Exec(ctx, tx, `
			INSERT INTO material
			(project_id, material_name, num_required, cost)
			VALUES (?, ?, ?, ?)
		`, materialParams(material))
		if err != nil {
			return fmt.Errorf("insert material: %w", err)
		}

		id, err := dao.LastInsertID(ctx, tx, s.dialect, materialTable)
		if err != nil {
			return err
		}
		materialID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	material.MaterialID = materialID
	return material, nil
}

// AddStep appends a step to step.ProjectID. StepOrder is assigned as one past
// the project's current step count; any caller-supplied value is replaced.
func (s *Store) AddStep(ctx context.Context, step *entity.Step) (*entity.Step, error) {
	var stepID, order int
	err := s.tx.Run(ctx, "add step", func(tx dao.Querier) error {
		var err error
		order, err = dao.NextOrdinal(ctx, tx, step.ProjectID, stepTable, "project_id")
		if err != nil {
			return err
		}

		_, err = dao.Exec(ctx, tx, `
			INSERT INTO step
			(project_id, step_text, step_order)
			VALUES (?, ?, ?)
		`, stepParams(step, order))
		if err != nil {
			return fmt.Errorf("insert step: %w", err)
		}

		id, err := dao.LastInsertID(ctx, tx, s.dialect, stepTable)
		if err != nil {
			return err
		}
		stepID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	step.StepID = stepID
	step.StepOrder = order
	return step, nil
}

// InsertCategory inserts a category and sets CategoryID. Names are unique;
// a duplicate fails with the driver's constraint error.
func (s *Store) InsertCategory(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var categoryID int
	err := s.tx.Run(ctx, "insert category", func(tx dao.Querier) error {
		params := dao.NewParams().Add(category.CategoryName, stringType)
		if _, err := dao.Exec(ctx, tx, "INSERT INTO category (category_name) VALUES (?)", params); err != nil {
			return fmt.Errorf("insert category: %w", err)
		}

		id, err := dao.LastInsertID(ctx, tx, s.dialect, categoryTable)
		if err != nil {
			return err
		}
		categoryID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	category.CategoryID = categoryID
	return category, nil
}

// AddCategoryToProject links an existing category, found by name, to a
// project. An unknown name fails with a *dao.TransactionError wrapping
// dao.ErrNoRows.
func (s *Store) AddCategoryToProject(ctx context.Context, projectID int, categoryName string) error {
	return s.tx.Run(ctx, "add category to project", func(tx dao.Querier) error {
		category, found, err := categoryByName(ctx, tx, categoryName)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("category %q: %w", categoryName, dao.ErrNoRows)
		}

		params := dao.NewParams().Add(projectID, intType).Add(category.CategoryID, intType)
		if _, err := dao.Exec(ctx, tx,
			"INSERT INTO "+projectCategoryTable+" (project_id, category_id) VALUES (?, ?)", params); err != nil {
			return fmt.Errorf("link category: %w", err)
		}
		return nil
	})
}

func exactlyOne(res interface{ RowsAffected() (int64, error) }) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}
