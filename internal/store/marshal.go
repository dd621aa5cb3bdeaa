package store

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/projects/internal/dao"
	"github.com/roach88/projects/internal/entity"
)

// Parameter lists for the project tables. The declared types give nil
// fields a storage type, so an unset estimate binds as a DECIMAL NULL.

var (
	intType     = dao.TypeOf[int]()
	decimalType = dao.TypeOf[apd.Decimal]()
	stringType  = dao.TypeOf[string]()
)

func idParams(id int) *dao.Params {
	return dao.NewParams().Add(id, intType)
}

// projectParams binds name, estimated_hours, actual_hours, difficulty, notes.
func projectParams(p *entity.Project) *dao.Params {
	return dao.NewParams().
		Add(p.ProjectName, stringType).
		Add(p.EstimatedHours, decimalType).
		Add(p.ActualHours, decimalType).
		Add(p.Difficulty, intType).
		Add(p.Notes, stringType)
}

// materialParams binds project_id, material_name, num_required, cost.
func materialParams(m *entity.Material) *dao.Params {
	return dao.NewParams().
		Add(m.ProjectID, intType).
		Add(m.MaterialName, stringType).
		Add(m.NumRequired, intType).
		Add(m.Cost, decimalType)
}

// stepParams binds project_id, step_text, step_order.
func stepParams(s *entity.Step, order int) *dao.Params {
	return dao.NewParams().
		Add(s.ProjectID, intType).
		Add(s.StepText, stringType).
		Add(order, intType)
}
