package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliResult is the captured outcome of one CLI invocation.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command against the SQLite database at dbPath.
func runCLI(t *testing.T, dbPath string, args ...string) cliResult {
	t.Helper()
	cmd := NewRootCommand()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{"--driver", "sqlite3", "--dsn", dbPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// mustRun runs the CLI and fails the test on error.
func mustRun(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	res := runCLI(t, dbPath, args...)
	require.NoError(t, res.err, "projects %v\nstderr: %s", args, res.stderr)
	return res.stdout
}

// newTestDB returns the path of a fresh database with the schema applied.
func newTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "projects.db")
	mustRun(t, dbPath, "init-db")
	return dbPath
}

func seedShed(t *testing.T, dbPath string) {
	t.Helper()
	mustRun(t, dbPath, "add", "--name", "Build shed", "--estimated-hours", "40",
		"--difficulty", "3", "--notes", "Pour the slab first")
	mustRun(t, dbPath, "material", "add", "--project", "1", "--name", "2x4 stud",
		"--num-required", "40", "--cost", "3.98")
	mustRun(t, dbPath, "material", "add", "--project", "1", "--name", "Concrete mix")
	mustRun(t, dbPath, "step", "add", "--project", "1", "--text", "Pour the slab")
	mustRun(t, dbPath, "step", "add", "--project", "1", "--text", "Frame the walls")
	mustRun(t, dbPath, "category", "add", "--name", "Woodworking")
	mustRun(t, dbPath, "category", "add", "--name", "Outdoor")
	mustRun(t, dbPath, "category", "link", "--project", "1", "--name", "Woodworking")
	mustRun(t, dbPath, "category", "link", "--project", "1", "--name", "Outdoor")
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestInitDB_Idempotent(t *testing.T) {
	dbPath := newTestDB(t)
	out := mustRun(t, dbPath, "init-db")
	assert.Equal(t, "Database tables are ready (sqlite3).\n", out)
}

func TestShow_Golden(t *testing.T) {
	dbPath := newTestDB(t)
	seedShed(t, dbPath)

	out := mustRun(t, dbPath, "show", "1")
	newGoldie(t).Assert(t, "show_project", []byte(out))
}

func TestList_Golden(t *testing.T) {
	dbPath := newTestDB(t)
	mustRun(t, dbPath, "add", "--name", "Build shed")
	mustRun(t, dbPath, "add", "--name", "Birdhouse")

	out := mustRun(t, dbPath, "list")
	newGoldie(t).Assert(t, "list_projects", []byte(out))
}

func TestList_Empty(t *testing.T) {
	dbPath := newTestDB(t)
	assert.Equal(t, "No projects.\n", mustRun(t, dbPath, "list"))
}

func TestAdd_TextOutput(t *testing.T) {
	dbPath := newTestDB(t)
	out := mustRun(t, dbPath, "add", "--name", "Birdhouse", "--difficulty", "1")
	assert.Contains(t, out, "You have successfully created project: ID=1\n")
	assert.Contains(t, out, "   name=Birdhouse\n")
	assert.Contains(t, out, "   difficulty=1\n")
}

func TestAdd_JSONOutput(t *testing.T) {
	dbPath := newTestDB(t)
	out := mustRun(t, dbPath, "--format", "json", "add", "--name", "Birdhouse", "--estimated-hours", "2.5")

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			ProjectID      int      `json:"project_id"`
			ProjectName    string   `json:"project_name"`
			EstimatedHours string   `json:"estimated_hours"`
			Difficulty     *int     `json:"difficulty"`
			Materials      []string `json:"materials"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.ProjectID)
	assert.Equal(t, "Birdhouse", resp.Data.ProjectName)
	assert.Equal(t, "2.5", resp.Data.EstimatedHours)
	assert.Nil(t, resp.Data.Difficulty)
}

func TestAdd_InvalidInput(t *testing.T) {
	dbPath := newTestDB(t)
	tests := []struct {
		name string
		args []string
	}{
		{"bad decimal", []string{"add", "--name", "x", "--estimated-hours", "lots"}},
		{"difficulty too high", []string{"add", "--name", "x", "--difficulty", "6"}},
		{"empty name", []string{"add", "--name", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, dbPath, tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, ExitCommandError, GetExitCode(res.err))
			assert.Contains(t, res.stderr, "Error [E002]")
		})
	}
	assert.Equal(t, "No projects.\n", mustRun(t, dbPath, "list"))
}

func TestAdd_MissingRequiredFlag(t *testing.T) {
	dbPath := newTestDB(t)
	res := runCLI(t, dbPath, "add")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "name")
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
}

func TestShow_NotFound(t *testing.T) {
	dbPath := newTestDB(t)
	res := runCLI(t, dbPath, "show", "42")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stderr, "Error [E001]: project with ID=42 does not exist")
	assert.Empty(t, res.stdout)
}

func TestShow_InvalidID(t *testing.T) {
	dbPath := newTestDB(t)
	for _, arg := range []string{"abc", "0", "-1"} {
		res := runCLI(t, dbPath, "show", "--", arg)
		require.Error(t, res.err, arg)
		assert.Equal(t, ExitCommandError, GetExitCode(res.err), arg)
		assert.Contains(t, res.stderr, "Error [E002]", arg)
	}
}

func TestShow_JSONNotFound(t *testing.T) {
	dbPath := newTestDB(t)
	res := runCLI(t, dbPath, "--format", "json", "show", "7")
	require.Error(t, res.err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestUpdate_ChangesOnlyGivenFlags(t *testing.T) {
	dbPath := newTestDB(t)
	seedShed(t, dbPath)

	out := mustRun(t, dbPath, "update", "1", "--actual-hours", "52.5", "--notes", "Roof took longer")
	assert.Equal(t, "Project 1 was updated successfully.\n", out)

	shown := mustRun(t, dbPath, "show", "1")
	assert.Contains(t, shown, "   name=Build shed\n")
	assert.Contains(t, shown, "   estimatedHours=40\n")
	assert.Contains(t, shown, "   actualHours=52.5\n")
	assert.Contains(t, shown, "   difficulty=3\n")
	assert.Contains(t, shown, "   notes=Roof took longer\n")
	assert.Contains(t, shown, "stepText=Frame the walls")
}

func TestUpdate_NotFound(t *testing.T) {
	dbPath := newTestDB(t)
	res := runCLI(t, dbPath, "update", "5", "--name", "Ghost")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
}

func TestDelete(t *testing.T) {
	dbPath := newTestDB(t)
	seedShed(t, dbPath)

	out := mustRun(t, dbPath, "delete", "1")
	assert.Equal(t, "Project 1 was deleted successfully.\n", out)

	res := runCLI(t, dbPath, "show", "1")
	assert.Equal(t, ExitFailure, GetExitCode(res.err))

	res = runCLI(t, dbPath, "delete", "1")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stderr, "project with ID=1 does not exist")

	// Categories outlive the projects that used them.
	assert.Contains(t, mustRun(t, dbPath, "category", "list"), "Woodworking")
}

func TestMaterialAdd_UnknownProject(t *testing.T) {
	dbPath := newTestDB(t)
	res := runCLI(t, dbPath, "material", "add", "--project", "3", "--name", "Nails")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stderr, "Error [E001]")
}

func TestStepAdd_NumbersSteps(t *testing.T) {
	dbPath := newTestDB(t)
	mustRun(t, dbPath, "add", "--name", "Birdhouse")

	assert.Equal(t, "Added step 1 to project 1: Cut the boards\n",
		mustRun(t, dbPath, "step", "add", "--project", "1", "--text", "Cut the boards"))
	assert.Equal(t, "Added step 2 to project 1: Glue the roof\n",
		mustRun(t, dbPath, "step", "add", "--project", "1", "--text", "Glue the roof"))
}

func TestCategory_ListAndLink(t *testing.T) {
	dbPath := newTestDB(t)
	assert.Equal(t, "No categories.\n", mustRun(t, dbPath, "category", "list"))

	mustRun(t, dbPath, "category", "add", "--name", "Woodworking")
	mustRun(t, dbPath, "category", "add", "--name", "Garden")
	assert.Equal(t, "Categories:\n   2: Garden\n   1: Woodworking\n", mustRun(t, dbPath, "category", "list"))

	mustRun(t, dbPath, "add", "--name", "Raised bed")
	assert.Equal(t, "Project 1 is now in category Garden.\n",
		mustRun(t, dbPath, "category", "link", "--project", "1", "--name", "Garden"))

	res := runCLI(t, dbPath, "category", "link", "--project", "1", "--name", "Plumbing")
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Contains(t, res.stderr, `category with name="Plumbing" does not exist`)
}

func TestCategoryAdd_Duplicate(t *testing.T) {
	dbPath := newTestDB(t)
	mustRun(t, dbPath, "category", "add", "--name", "Garden")

	res := runCLI(t, dbPath, "category", "add", "--name", "Garden")
	require.Error(t, res.err)
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
	assert.Contains(t, res.stderr, "Error [E003]")
}

func TestInvalidFormat(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "projects.db")
	res := runCLI(t, dbPath, "--format", "yaml", "list")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(res.err))
}

func TestUnknownDriver(t *testing.T) {
	cmd := NewRootCommand()
	stderr := &bytes.Buffer{}
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"--driver", "oracle", "list"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr.String(), "Error [E004]")
}
