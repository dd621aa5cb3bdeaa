package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/projects/internal/entity"
)

// projectFlags holds the detail flags shared by add and update.
type projectFlags struct {
	name           string
	estimatedHours string
	actualHours    string
	difficulty     int
	notes          string
}

func (pf *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pf.name, "name", "", "project name")
	cmd.Flags().StringVar(&pf.estimatedHours, "estimated-hours", "", "estimated hours (decimal)")
	cmd.Flags().StringVar(&pf.actualHours, "actual-hours", "", "actual hours (decimal)")
	cmd.Flags().IntVar(&pf.difficulty, "difficulty", 0, "difficulty from 1 to 5")
	cmd.Flags().StringVar(&pf.notes, "notes", "", "free-form notes")
}

// apply copies the flags the user set onto p. Unset flags leave p alone.
func (pf *projectFlags) apply(cmd *cobra.Command, f *OutputFormatter, p *entity.Project) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		if pf.name == "" {
			return failInput(f, "--name must not be empty")
		}
		p.ProjectName = pf.name
	}
	if flags.Changed("estimated-hours") {
		d, err := parseDecimal(f, "estimated-hours", pf.estimatedHours)
		if err != nil {
			return err
		}
		p.EstimatedHours = d
	}
	if flags.Changed("actual-hours") {
		d, err := parseDecimal(f, "actual-hours", pf.actualHours)
		if err != nil {
			return err
		}
		p.ActualHours = d
	}
	if flags.Changed("difficulty") {
		if pf.difficulty < 1 || pf.difficulty > 5 {
			return failInput(f, fmt.Sprintf("--difficulty %d out of range: must be 1 to 5", pf.difficulty))
		}
		difficulty := pf.difficulty
		p.Difficulty = &difficulty
	}
	if flags.Changed("notes") {
		notes := pf.notes
		p.Notes = &notes
	}
	return nil
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	pf := &projectFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		Example: `  projects add --name "Build shed" --estimated-hours 40 --difficulty 3 \
    --notes "Pour the slab first"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, pf, cmd)
		},
	}
	pf.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func runAdd(opts *RootOptions, pf *projectFlags, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	project := &entity.Project{}
	if err := pf.apply(cmd, formatter, project); err != nil {
		return err
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	created, err := sess.svc.AddProject(cmd.Context(), project)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(created, "You have successfully created project: "+created.String())
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	projects, err := sess.svc.FetchAllProjects(cmd.Context())
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(projects, renderProjectList(projects))
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its materials, steps and categories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

func runShow(opts *RootOptions, idArg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	id, err := parseID(formatter, "project", idArg)
	if err != nil {
		return err
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	project, err := sess.svc.FetchProjectByID(cmd.Context(), id)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(project, "You are working with project: "+project.String())
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	pf := &projectFlags{}
	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Change project details",
		Long: `Change the details of an existing project. Only the flags given are
changed; the rest keep their stored values.`,
		Example: `  projects update 3 --actual-hours 52.5 --notes "Roof took longer"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(rootOpts, pf, args[0], cmd)
		},
	}
	pf.register(cmd)
	return cmd
}

func runUpdate(opts *RootOptions, pf *projectFlags, idArg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	id, err := parseID(formatter, "project", idArg)
	if err != nil {
		return err
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx := cmd.Context()
	project, err := sess.svc.FetchProjectByID(ctx, id)
	if err != nil {
		return fail(formatter, err)
	}
	if err := pf.apply(cmd, formatter, project); err != nil {
		return err
	}
	if err := sess.svc.ModifyProjectDetails(ctx, project); err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(project, fmt.Sprintf("Project %d was updated successfully.\n", id))
}

// DeleteResult reports a deleted project.
type DeleteResult struct {
	ProjectID int  `json:"project_id"`
	Deleted   bool `json:"deleted"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and its materials and steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, args[0], cmd)
		},
	}
}

func runDelete(opts *RootOptions, idArg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	id, err := parseID(formatter, "project", idArg)
	if err != nil {
		return err
	}

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.svc.DeleteProject(cmd.Context(), id); err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(DeleteResult{ProjectID: id, Deleted: true},
		fmt.Sprintf("Project %d was deleted successfully.\n", id))
}
