package cli

import (
	"fmt"
	"strings"

	"github.com/roach88/projects/internal/entity"
)

// renderProjectList prints one "ID: name" line per project.
func renderProjectList(projects []entity.Project) string {
	if len(projects) == 0 {
		return "No projects.\n"
	}
	var b strings.Builder
	b.WriteString("Projects:\n")
	for _, p := range projects {
		fmt.Fprintf(&b, "   %d: %s\n", p.ProjectID, p.ProjectName)
	}
	return b.String()
}

func renderCategoryList(categories []entity.Category) string {
	if len(categories) == 0 {
		return "No categories.\n"
	}
	var b strings.Builder
	b.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "   %d: %s\n", c.CategoryID, c.CategoryName)
	}
	return b.String()
}
