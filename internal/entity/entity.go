// Package entity defines the records of the projects database. Field names
// follow the column naming rule of package dao; identifier columns carry
// explicit db tags.
package entity

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Project is a DIY project together with its child collections. Extraction
// fills only the scalar fields; the store appends the children.
type Project struct {
	ProjectID      int          `db:"project_id" json:"project_id"`
	ProjectName    string       `json:"project_name"`
	EstimatedHours *apd.Decimal `json:"estimated_hours"`
	ActualHours    *apd.Decimal `json:"actual_hours"`
	Difficulty     *int         `json:"difficulty"`
	Notes          *string      `json:"notes"`

	Materials  []Material `json:"materials"`
	Steps      []Step     `json:"steps"`
	Categories []Category `json:"categories"`
}

// Init gives the collections empty, non-nil values.
func (p *Project) Init() error {
	p.Materials = []Material{}
	p.Steps = []Step{}
	p.Categories = []Category{}
	return nil
}

// Material is something a project needs.
type Material struct {
	MaterialID   int          `db:"material_id" json:"material_id"`
	ProjectID    int          `db:"project_id" json:"project_id"`
	MaterialName string       `json:"material_name"`
	NumRequired  *int         `json:"num_required"`
	Cost         *apd.Decimal `json:"cost"`
}

// Step is one instruction of a project; StepOrder starts at 1.
type Step struct {
	StepID    int    `db:"step_id" json:"step_id"`
	ProjectID int    `db:"project_id" json:"project_id"`
	StepText  string `json:"step_text"`
	StepOrder int    `json:"step_order"`
}

// Category labels projects; names are unique.
type Category struct {
	CategoryID   int    `db:"category_id" json:"category_id"`
	CategoryName string `json:"category_name"`
}

func (p Project) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID=%d\n", p.ProjectID)
	fmt.Fprintf(&b, "   name=%s\n", p.ProjectName)
	fmt.Fprintf(&b, "   estimatedHours=%s\n", decimalText(p.EstimatedHours))
	fmt.Fprintf(&b, "   actualHours=%s\n", decimalText(p.ActualHours))
	fmt.Fprintf(&b, "   difficulty=%s\n", intText(p.Difficulty))
	fmt.Fprintf(&b, "   notes=%s\n", stringText(p.Notes))

	b.WriteString("   Materials:\n")
	for _, m := range p.Materials {
		fmt.Fprintf(&b, "      %s\n", m)
	}
	b.WriteString("   Steps:\n")
	for _, s := range p.Steps {
		fmt.Fprintf(&b, "      %s\n", s)
	}
	b.WriteString("   Categories:\n")
	for _, c := range p.Categories {
		fmt.Fprintf(&b, "      %s\n", c)
	}
	return b.String()
}

func (m Material) String() string {
	return fmt.Sprintf("ID=%d, materialName=%s, numRequired=%s, cost=%s",
		m.MaterialID, m.MaterialName, intText(m.NumRequired), decimalText(m.Cost))
}

func (s Step) String() string {
	return fmt.Sprintf("ID=%d, stepOrder=%d, stepText=%s", s.StepID, s.StepOrder, s.StepText)
}

func (c Category) String() string {
	return fmt.Sprintf("ID=%d, categoryName=%s", c.CategoryID, c.CategoryName)
}

func decimalText(d *apd.Decimal) string {
	if d == nil {
		return "null"
	}
	return d.String()
}

func intText(n *int) string {
	if n == nil {
		return "null"
	}
	return fmt.Sprint(*n)
}

func stringText(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}
