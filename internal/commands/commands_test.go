package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskmgr/internal/core/task"
)

type result struct {
	out    string
	errOut string
	err    error
}

// runApp runs the full CLI against a file backend in dataDir.
func runApp(t *testing.T, dataDir string, args ...string) result {
	t.Helper()

	app := NewApp(&Flags{}, "test")
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut

	full := append([]string{
		"taskmgr",
		"--data-dir", dataDir,
		"--config", filepath.Join(dataDir, "config.yaml"),
		"--storage", "file",
	}, args...)

	err := app.Run(context.Background(), full)
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func addTask(t *testing.T, dir, text string) string {
	t.Helper()
	r := runApp(t, dir, "add", text)
	require.NoError(t, r.err)
	return strings.TrimSpace(r.out)
}

func TestAdd_PrintsID(t *testing.T) {
	dir := t.TempDir()

	r := runApp(t, dir, "add", "Buy", "milk")
	require.NoError(t, r.err)

	id := strings.TrimSpace(r.out)
	assert.Len(t, id, 36)

	r = runApp(t, dir, "ls", "--json")
	require.NoError(t, r.err)

	var got task.Task
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(r.out)), &got))
	assert.Equal(t, task.ID(id), got.ID)
	assert.Equal(t, "Buy milk", got.Text)
	assert.False(t, got.Completed)
}

func TestAdd_EmptyText(t *testing.T) {
	dir := t.TempDir()

	r := runApp(t, dir, "add", "   ")
	require.ErrorIs(t, r.err, task.ErrEmptyText)
	assert.Contains(t, r.err.Error(), "Task cannot be empty")
}

func runAddCmd(t *testing.T, cmd *AddCmd, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := cmd.Register(&cli.Command{Name: "taskmgr", Writer: &out})
	err := root.Run(context.Background(), append([]string{"taskmgr", "add"}, args...))
	return out.String(), err
}

func TestAdd_PromptsOnTerminal(t *testing.T) {
	flags := &Flags{Storage: "memory"}
	cmd := NewAddCmd(flags)
	cmd.interactive = func() bool { return true }
	cmd.prompt = func(text *string) error {
		*text = "From prompt"
		return nil
	}

	_, err := runAddCmd(t, cmd)
	require.NoError(t, err)

	store, err := flags.Tasks(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	assert.Equal(t, "From prompt", store.Tasks()[0].Text)
}

func TestAdd_PromptAbortedExitsCleanly(t *testing.T) {
	flags := &Flags{Storage: "memory"}
	cmd := NewAddCmd(flags)
	cmd.interactive = func() bool { return true }
	cmd.prompt = func(*string) error { return huh.ErrUserAborted }

	out, err := runAddCmd(t, cmd)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Nil(t, flags.tasks, "store is never opened")
}

func TestAdd_NoPromptWhenArgsGiven(t *testing.T) {
	flags := &Flags{Storage: "memory"}
	cmd := NewAddCmd(flags)
	cmd.interactive = func() bool { return true }
	cmd.prompt = func(*string) error {
		t.Fatal("prompt should not run")
		return nil
	}

	_, err := runAddCmd(t, cmd, "Walk dog")
	require.NoError(t, err)
}

func TestLs_Empty(t *testing.T) {
	r := runApp(t, t.TempDir(), "ls")
	require.NoError(t, r.err)
	assert.Empty(t, r.out)
	assert.Contains(t, r.errOut, "No tasks yet. Add one above!")
}

func TestLs_Table(t *testing.T) {
	dir := t.TempDir()
	first := addTask(t, dir, "Task A")
	addTask(t, dir, "Task B")
	require.NoError(t, runApp(t, dir, "toggle", first).err)

	r := runApp(t, dir, "ls")
	require.NoError(t, r.err)

	lines := strings.Split(strings.TrimSpace(r.out), "\n")
	require.Len(t, lines, 4)
	assert.Regexp(t, `^ID\s+DONE\s+TEXT\s+CREATED$`, lines[0])
	assert.Contains(t, lines[1], first[:8])
	assert.Contains(t, lines[1], "[x]")
	assert.Contains(t, lines[1], "Task A")
	assert.Contains(t, lines[2], "[ ]")
	assert.Contains(t, lines[2], "Task B")
	assert.Equal(t, "1 of 2 tasks completed", lines[3])
}

func TestLs_CorruptFileBackend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("invalid json"), 0o644))

	r := runApp(t, dir, "ls")
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, "No tasks yet. Add one above!")

	addTask(t, dir, "Buy milk")
	r = runApp(t, dir, "ls")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "Buy milk")
}

func TestToggle_PrefixAndState(t *testing.T) {
	dir := t.TempDir()
	id := addTask(t, dir, "Walk dog")

	r := runApp(t, dir, "toggle", id[:8])
	require.NoError(t, r.err)
	assert.Equal(t, "[x] Walk dog\n", r.out)

	r = runApp(t, dir, "toggle", id)
	require.NoError(t, r.err)
	assert.Equal(t, "[ ] Walk dog\n", r.out)
}

func TestToggle_NotFound(t *testing.T) {
	dir := t.TempDir()
	addTask(t, dir, "one")

	r := runApp(t, dir, "toggle", "does-not-exist")
	require.ErrorIs(t, r.err, task.ErrNotFound)
	assert.Contains(t, r.err.Error(), "task not found")
}

func TestToggle_RequiresOneArg(t *testing.T) {
	r := runApp(t, t.TempDir(), "toggle")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "expected exactly one task id")
}

func TestRm_KeepsOthersInOrder(t *testing.T) {
	dir := t.TempDir()
	a := addTask(t, dir, "Task A")
	addTask(t, dir, "Task B")
	addTask(t, dir, "Task C")

	r := runApp(t, dir, "rm", a)
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "deleted "+a[:8]+" Task A")

	r = runApp(t, dir, "export", "--raw")
	require.NoError(t, r.err)
	assert.Equal(t, "# Task Manager\n\n- [ ] Task B\n- [ ] Task C\n\n_0 of 2 tasks completed_\n", r.out)
}

func TestRm_NotFound(t *testing.T) {
	r := runApp(t, t.TempDir(), "rm", "abc")
	require.ErrorIs(t, r.err, task.ErrNotFound)
}

func TestExport_Empty(t *testing.T) {
	r := runApp(t, t.TempDir(), "export")
	require.NoError(t, r.err)
	assert.Equal(t, "# Task Manager\n\nNo tasks yet. Add one above!\n", r.out)
}

func TestMarkdown(t *testing.T) {
	md := Markdown([]task.Task{
		{ID: "1", Text: "!@#$%^&*()", Completed: true},
		{ID: "2", Text: "Walk dog"},
	})

	assert.Equal(t, "# Task Manager\n\n- [x] !@#$%^&*()\n- [ ] Walk dog\n\n_1 of 2 tasks completed_\n", md)
}

func TestRenderMarkdown(t *testing.T) {
	out, err := renderMarkdown(Markdown([]task.Task{{ID: "1", Text: "Buy milk"}}), 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(input, []byte(`[{"text":"Buy milk"},{"text":"Walk dog","completed":true}]`), 0o644))

	r := runApp(t, dir, "import", "-f", input)
	require.NoError(t, r.err)
	assert.Equal(t, "imported 2 tasks\n", r.out)

	r = runApp(t, dir, "export", "--raw")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "- [ ] Buy milk\n- [x] Walk dog\n")
}

func TestImportInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     ImportInput
		wantErr    bool
		wantFields []string
	}{
		{"valid", ImportInput{{Text: "a"}, {Text: "b", Completed: true}}, false, nil},
		{"empty array", ImportInput{}, true, []string{"tasks"}},
		{"blank texts", ImportInput{{Text: " "}, {Text: "ok"}, {Text: ""}}, true, []string{"tasks[0].text", "tasks[2].text"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			fields := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, fe.Field)
				if fe.Field != "tasks" {
					assert.ErrorIs(t, fe.Err, task.ErrEmptyText, "field %s", fe.Field)
				}
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestImport_RejectsWholeInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(input, []byte(`[{"text":"good"},{"text":""}]`), 0o644))

	r := runApp(t, dir, "import", "-f", input)
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "tasks[1].text")

	r = runApp(t, dir, "ls")
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, "No tasks yet")
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()

	r := runApp(t, dir, "config", "validate")
	require.NoError(t, r.err)
	assert.Equal(t, "config ok\n", r.out)

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tui:\n  theme: neon\nstorage:\n  key: \" \"\n"), 0o644))

	r = runApp(t, dir, "config", "validate")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "2 error(s) found")
	assert.Contains(t, r.out, "storage.key: cannot be empty")
	assert.Contains(t, r.out, `tui.theme: unknown theme "neon"`)
}

func TestConfigValidate_JSON(t *testing.T) {
	r := runApp(t, t.TempDir(), "config", "validate", "--format", "json")
	require.NoError(t, r.err)

	var got struct {
		Valid bool `json:"valid"`
	}
	require.NoError(t, json.Unmarshal([]byte(r.out), &got))
	assert.True(t, got.Valid)
}

func TestStorageOverride_Invalid(t *testing.T) {
	dir := t.TempDir()
	app := NewApp(&Flags{}, "test")
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run(context.Background(), []string{
		"taskmgr", "--data-dir", dir, "--config", "", "--storage", "redis", "ls",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestFlags_LogFilePath(t *testing.T) {
	f := &Flags{DataDir: "/data"}
	assert.Equal(t, filepath.Join("/data", "taskmgr.log"), f.LogFilePath())

	f.LogFile = "/tmp/x.log"
	assert.Equal(t, "/tmp/x.log", f.LogFilePath())
}

func TestFlags_TasksOpenedOnce(t *testing.T) {
	flags := &Flags{Storage: "memory"}
	ctx := context.Background()

	a, err := flags.Tasks(ctx)
	require.NoError(t, err)
	b, err := flags.Tasks(ctx)
	require.NoError(t, err)
	assert.Same(t, a, b)

	require.NoError(t, flags.Close())
	require.NoError(t, flags.Close())
}
