package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/model"
	"github.com/existflow/taskboard/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Claim the global logger before any command tries to open a log file
	_ = logger.Init(logger.Config{Level: logger.ERROR})
	os.Exit(m.Run())
}

// setup starts a backend on a temporary database and points HOME at a
// temporary directory so sessions do not leak between tests
func setup(t *testing.T) {
	t.Helper()
	srv, err := server.New(config.ServerConfig{
		DBDriver: "sqlite",
		DBDSN:    filepath.Join(t.TempDir(), "backend.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("TASKBOARD_API_URL", ts.URL)
}

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(args...)
	require.NoError(t, err, out)
	return out
}

func TestBoardWorkflow(t *testing.T) {
	setup(t)

	out := run(t, "register", "--email", "ana@example.com", "--name", "Ana", "--password", "secret")
	assert.Contains(t, out, "Registered and logged in as Ana")

	out = run(t, "whoami")
	assert.Contains(t, out, "Ana <ana@example.com>")

	out = run(t, "project", "new", "Work", "--desc", "Day job")
	assert.Contains(t, out, "Created project: Work")

	out = run(t, "project", "ls")
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "1 project(s)")

	out = run(t, "project", "select", "work")
	assert.Contains(t, out, "Selected project: Work")

	out = run(t, "list", "ls")
	assert.Contains(t, out, "To Do")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, "Done")

	out = run(t, "task", "add", "Write", "report", "--list", "To Do", "-p", "1")
	assert.Contains(t, out, `Added to [To Do]: "Write report" (P1)`)

	out = run(t, "task", "ls")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "▲ P1")

	out = run(t, "task", "done", "write report")
	assert.Contains(t, out, `Completed: "Write report"`)

	out = run(t, "task", "mv", "Write report", "Done")
	assert.Contains(t, out, `Moved "Write report" to [Done]`)

	out = run(t, "task", "ls", "--list", "Done")
	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "Write report")

	out = run(t, "task", "mine")
	assert.Contains(t, out, "My tasks (0 pending)")

	out = run(t, "list", "new", "Later")
	assert.Contains(t, out, "Later (order 4)")

	out = run(t, "list", "swap", "Later", "To Do")
	assert.Contains(t, out, "Swapped Later and To Do")

	run(t, "logout")
	_, err := execute("whoami")
	assert.ErrorIs(t, err, errLoginRequired)
}

func TestInviteAndLogin(t *testing.T) {
	setup(t)

	run(t, "register", "--email", "bob@example.com", "--name", "Bob", "--password", "pw")
	run(t, "register", "--email", "ana@example.com", "--name", "Ana", "--password", "secret")
	run(t, "project", "new", "Shared")

	out := run(t, "project", "invite", "Shared", "bob@example.com")
	assert.Contains(t, out, "Shared now has 2 member(s)")

	run(t, "logout")
	out = run(t, "login", "--email", "bob@example.com", "--password", "pw")
	assert.Contains(t, out, "Logged in as Bob")

	out = run(t, "project", "ls")
	assert.Contains(t, out, "Shared")
}

func TestRegisterTakenEmail(t *testing.T) {
	setup(t)

	run(t, "register", "--email", "ana@example.com", "--name", "Ana", "--password", "secret")
	out, err := execute("register", "--email", "ana@example.com", "--name", "Ana", "--password", "secret")
	assert.Error(t, err)
	assert.Contains(t, out, "registration failed")
}

func TestTaskCommandsNeedProject(t *testing.T) {
	setup(t)

	run(t, "register", "--email", "ana@example.com", "--name", "Ana", "--password", "secret")
	_, err := execute("task", "ls")
	assert.ErrorContains(t, err, "no project selected")
}

func TestQuoteFromBackend(t *testing.T) {
	setup(t)

	out := run(t, "quote")
	assert.Contains(t, out, "💬")
	assert.Contains(t, out, "   - ")
}

func TestResolve(t *testing.T) {
	lists := []model.TaskList{
		{ID: "a1b2c3", Name: "To Do"},
		{ID: "a1ffff", Name: "Done"},
		{ID: "b00000", Name: "done"},
	}

	got, err := resolve(lists, taskListKey, "a1b2c3")
	require.NoError(t, err)
	assert.Equal(t, "To Do", got.Name)

	got, err = resolve(lists, taskListKey, "a1b")
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", got.ID)

	got, err = resolve(lists, taskListKey, "to do")
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", got.ID)

	_, err = resolve(lists, taskListKey, "a1")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolve(lists, taskListKey, "DONE")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolve(lists, taskListKey, "zzz")
	assert.ErrorContains(t, err, "not found")
}

func TestParseDue(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"today", "2024-03-10"},
		{"Tomorrow", "2024-03-11"},
		{"+3", "2024-03-13"},
		{"2024-12-25", "2024-12-25"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			due, err := parseDue(tt.in, now)
			require.NoError(t, err)
			require.NotNil(t, due)
			assert.Equal(t, tt.want, due.Format("2006-01-02"))
		})
	}

	due, err := parseDue("", now)
	assert.NoError(t, err)
	assert.Nil(t, due)

	_, err = parseDue("next week", now)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
