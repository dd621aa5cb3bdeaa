package cli

import (
	"github.com/spf13/cobra"
)

// InitDBResult reports the database the schema was applied to.
type InitDBResult struct {
	Driver string `json:"driver"`
}

// NewInitDBCommand creates the init-db command.
func NewInitDBCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the project tables",
		Long: `Create the project, material, step, category and project_category
tables if they do not exist. Running it again is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitDB(rootOpts, cmd)
		},
	}
	return cmd
}

func runInitDB(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, err := openSession(opts, formatter)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.store.ApplySchema(cmd.Context()); err != nil {
		return fail(formatter, err)
	}

	driver := sess.store.Dialect().Name
	return formatter.Result(InitDBResult{Driver: driver}, "Database tables are ready ("+driver+").\n")
}
