package entity

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/projects/internal/dao"
)

func TestProjectInit(t *testing.T) {
	var p Project
	require.NoError(t, p.Init())
	assert.NotNil(t, p.Materials)
	assert.NotNil(t, p.Steps)
	assert.NotNil(t, p.Categories)
}

func TestShapes(t *testing.T) {
	tests := []struct {
		name  string
		shape func() (*dao.Shape, error)
		want  []string
	}{
		{"project", dao.ShapeFor[Project], []string{"project_id", "project_name", "estimated_hours", "actual_hours", "difficulty", "notes"}},
		{"material", dao.ShapeFor[Material], []string{"material_id", "project_id", "material_name", "num_required", "cost"}},
		{"step", dao.ShapeFor[Step], []string{"step_id", "project_id", "step_text", "step_order"}},
		{"category", dao.ShapeFor[Category], []string{"category_id", "category_name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := tt.shape()
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Columns())
		})
	}
}

func TestExtractProject(t *testing.T) {
	row := dao.MapRow{
		"project_id":      int64(1),
		"project_name":    "Build shed",
		"estimated_hours": "10.00",
		"actual_hours":    nil,
		"difficulty":      int64(3),
		"notes":           nil,
	}
	p, err := dao.Extract[Project](row)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ProjectID)
	assert.Equal(t, "Build shed", p.ProjectName)
	assert.Equal(t, "10.00", p.EstimatedHours.String())
	assert.Nil(t, p.ActualHours)
	assert.Equal(t, 3, *p.Difficulty)
	assert.Nil(t, p.Notes)
	assert.NotNil(t, p.Materials)
	assert.Empty(t, p.Materials)
}

func TestProjectString(t *testing.T) {
	difficulty := 2
	p := Project{
		ProjectID:      4,
		ProjectName:    "Paint fence",
		EstimatedHours: apd.New(450, -2),
		Difficulty:     &difficulty,
		Materials:      []Material{{MaterialID: 1, MaterialName: "paint"}},
		Steps:          []Step{{StepID: 2, StepOrder: 1, StepText: "Sand"}},
		Categories:     []Category{{CategoryID: 3, CategoryName: "Outdoor"}},
	}
	want := "ID=4\n" +
		"   name=Paint fence\n" +
		"   estimatedHours=4.50\n" +
		"   actualHours=null\n" +
		"   difficulty=2\n" +
		"   notes=null\n" +
		"   Materials:\n" +
		"      ID=1, materialName=paint, numRequired=null, cost=null\n" +
		"   Steps:\n" +
		"      ID=2, stepOrder=1, stepText=Sand\n" +
		"   Categories:\n" +
		"      ID=3, categoryName=Outdoor\n"
	assert.Equal(t, want, p.String())
}

func TestProjectJSON(t *testing.T) {
	p := Project{ProjectID: 1, ProjectName: "Shelf", EstimatedHours: apd.New(25, -1)}
	require.NoError(t, p.Init())

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"project_id": 1,
		"project_name": "Shelf",
		"estimated_hours": "2.5",
		"actual_hours": null,
		"difficulty": null,
		"notes": null,
		"materials": [],
		"steps": [],
		"categories": []
	}`, string(data))
}
