package sqltask

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(*Context) (any, error) { return nil, nil }

func TestTaskRegistry_Register(t *testing.T) {
	tests := []struct {
		desc string
		def  TaskDef
		err  error
	}{
		{"empty name", TaskDef{Name: "", Handler: noop}, ErrEmptyTaskName},
		{"blank name", TaskDef{Name: "   ", Handler: noop}, ErrEmptyTaskName},
		{"nil handler", TaskDef{Name: "cleanup"}, ErrNilHandler},
		{"duplicate", TaskDef{Name: "existing", Handler: noop}, ErrTaskExists},
		{"valid", TaskDef{Name: "cleanup", Handler: noop}, nil},
	}

	for i, tc := range tests {
		reg := newTaskRegistry()
		require.NoError(t, reg.register(TaskDef{Name: "existing", Handler: noop}))

		err := reg.register(tc.def)

		if tc.err == nil {
			require.NoError(t, err, "TEST[%d], Failed.\n%s", i, tc.desc)
			continue
		}

		require.ErrorIs(t, err, tc.err, "TEST[%d], Failed.\n%s", i, tc.desc)
	}
}

func TestTaskRegistry_Sealed(t *testing.T) {
	reg := newTaskRegistry()
	require.NoError(t, reg.register(TaskDef{Name: "first", Handler: noop}))

	reg.seal()

	assert.True(t, reg.isSealed())
	require.ErrorIs(t, reg.register(TaskDef{Name: "second", Handler: noop}), ErrRegistrySealed)

	_, ok := reg.lookup("second")
	assert.False(t, ok)
}

func TestApp_AddTaskWithMetadata(t *testing.T) {
	app := newTestApp(t, nil)

	require.NoError(t, app.AddTask("report", noop,
		WithDescription("Nightly report."),
		WithTimeout(time.Minute),
		WithTags("reporting", "nightly"),
	))
	require.NoError(t, app.AddSQLTasks())

	tasks := app.Tasks()
	require.Len(t, tasks, 3)

	assert.Equal(t, "report", tasks[0].Name)
	assert.Equal(t, "Nightly report.", tasks[0].Description)
	assert.Equal(t, time.Minute, tasks[0].Timeout)
	assert.Equal(t, []string{"reporting", "nightly"}, tasks[0].Tags)

	assert.Equal(t, TaskExecute, tasks[1].Name)
	assert.Equal(t, TaskQuery, tasks[2].Name)
	assert.Equal(t, []string{"sql"}, tasks[2].Tags)
}

func TestApp_AddSQLTasksTwice(t *testing.T) {
	app := newTestApp(t, nil)

	require.NoError(t, app.AddSQLTasks())
	require.ErrorIs(t, app.AddSQLTasks(), ErrTaskExists)
}
