package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/projects/internal/entity"
)

// NewMaterialCommand creates the material command group.
func NewMaterialCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material",
		Short: "Manage project materials",
	}
	cmd.AddCommand(newMaterialAddCommand(rootOpts))
	return cmd
}

type materialFlags struct {
	projectID   int
	name        string
	numRequired int
	cost        string
}

func newMaterialAddCommand(rootOpts *RootOptions) *cobra.Command {
	mf := &materialFlags{}
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a material to a project",
		Example: `  projects material add --project 3 --name "2x4 stud" --num-required 40 --cost 3.98`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterialAdd(rootOpts, mf, cmd)
		},
	}
	cmd.Flags().IntVar(&mf.projectID, "project", 0, "project ID")
	cmd.Flags().StringVar(&mf.name, "name", "", "material name")
	cmd.Flags().IntVar(&mf.numRequired, "num-required", 0, "quantity needed")
	cmd.Flags().StringVar(&mf.cost, "cost", "", "cost (decimal)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func runMaterialAdd(opts *RootOptions, mf *materialFlags, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	if mf.name == "" {
		return failInput(formatter, "--name must not be empty")
	}
	material := &entity.Material{ProjectID: mf.projectID, MaterialName: mf.name}
	if cmd.Flags().Changed("num-required") {
		if mf.numRequired < 0 {
			return failInput(formatter, "--num-required must not be negative")
		}
		n := mf.numRequired
		material.NumRequired = &n
	}
	cost, err := parseDecimal(formatter, "cost", mf.cost)
	if err != nil {
		return err
	}
	material.Cost = cost

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	created, err := sess.svc.AddMaterial(cmd.Context(), material)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(created,
		fmt.Sprintf("Added material to project %d: %s\n", created.ProjectID, created))
}

// NewStepCommand creates the step command group.
func NewStepCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Manage project steps",
	}
	cmd.AddCommand(newStepAddCommand(rootOpts))
	return cmd
}

func newStepAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		projectID int
		text      string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a step to a project",
		Long: `Append a step to a project. Steps are numbered in the order they are
added, starting at 1.`,
		Example: `  projects step add --project 3 --text "Frame the walls"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStepAdd(rootOpts, projectID, text, cmd)
		},
	}
	cmd.Flags().IntVar(&projectID, "project", 0, "project ID")
	cmd.Flags().StringVar(&text, "text", "", "step instructions")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func runStepAdd(opts *RootOptions, projectID int, text string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	if text == "" {
		return failInput(formatter, "--text must not be empty")
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	created, err := sess.svc.AddStep(cmd.Context(), &entity.Step{ProjectID: projectID, StepText: text})
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(created,
		fmt.Sprintf("Added step %d to project %d: %s\n", created.StepOrder, created.ProjectID, created.StepText))
}

// NewCategoryCommand creates the category command group.
func NewCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories and link them to projects",
	}
	cmd.AddCommand(newCategoryAddCommand(rootOpts))
	cmd.AddCommand(newCategoryListCommand(rootOpts))
	cmd.AddCommand(newCategoryLinkCommand(rootOpts))
	return cmd
}

func newCategoryAddCommand(rootOpts *RootOptions) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			if name == "" {
				return failInput(formatter, "--name must not be empty")
			}

			sess, err := openSession(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer sess.Close()

			created, err := sess.svc.AddCategory(cmd.Context(), &entity.Category{CategoryName: name})
			if err != nil {
				return fail(formatter, err)
			}
			return formatter.Result(created, fmt.Sprintf("Added category: %s\n", created))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "category name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newCategoryListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			sess, err := openSession(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer sess.Close()

			categories, err := sess.svc.FetchAllCategories(cmd.Context())
			if err != nil {
				return fail(formatter, err)
			}
			return formatter.Result(categories, renderCategoryList(categories))
		},
	}
}

// LinkResult reports a category attached to a project.
type LinkResult struct {
	ProjectID    int    `json:"project_id"`
	CategoryName string `json:"category_name"`
}

func newCategoryLinkCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		projectID int
		name      string
	)
	cmd := &cobra.Command{
		Use:     "link",
		Short:   "Attach an existing category to a project",
		Example: `  projects category link --project 3 --name Woodworking`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			sess, err := openSession(rootOpts, formatter)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.svc.AddCategoryToProject(cmd.Context(), projectID, name); err != nil {
				return fail(formatter, err)
			}
			return formatter.Result(LinkResult{ProjectID: projectID, CategoryName: name},
				fmt.Sprintf("Project %d is now in category %s.\n", projectID, name))
		},
	}
	cmd.Flags().IntVar(&projectID, "project", 0, "project ID")
	cmd.Flags().StringVar(&name, "name", "", "category name")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
