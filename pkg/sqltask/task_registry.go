package sqltask

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

var (
	ErrEmptyTaskName  = errors.New("task name cannot be empty")
	ErrNilHandler     = errors.New("task handler cannot be nil")
	ErrTaskExists     = errors.New("task already registered")
	ErrRegistrySealed = errors.New("task registry is sealed")
	ErrTaskNotFound   = errors.New("task not found")
)

// Handler runs a task. The returned value is the task's output.
type Handler func(c *Context) (any, error)

// TaskDef is a registered task together with its metadata.
type TaskDef struct {
	Name        string
	Description string
	Timeout     time.Duration
	Tags        []string
	Handler     Handler
}

// TaskOption sets metadata on a task at registration.
type TaskOption func(*TaskDef)

func WithDescription(desc string) TaskOption {
	return func(d *TaskDef) { d.Description = desc }
}

// WithTimeout bounds every run of the task. Zero falls back to TASK_TIMEOUT.
func WithTimeout(timeout time.Duration) TaskOption {
	return func(d *TaskDef) { d.Timeout = timeout }
}

func WithTags(tags ...string) TaskOption {
	return func(d *TaskDef) { d.Tags = append(d.Tags, tags...) }
}

// TaskRegistry maps task names to their definitions. It is filled at process start and sealed
// by the first run, after which registrations are rejected.
type TaskRegistry struct {
	mu     sync.RWMutex
	tasks  map[string]*TaskDef
	sealed bool
}

func newTaskRegistry() *TaskRegistry {
	return &TaskRegistry{tasks: make(map[string]*TaskDef)}
}

func (r *TaskRegistry) register(def TaskDef) error {
	def.Name = strings.TrimSpace(def.Name)

	if def.Name == "" {
		return ErrEmptyTaskName
	}

	if def.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, def.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, def.Name)
	}

	if _, ok := r.tasks[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrTaskExists, def.Name)
	}

	r.tasks[def.Name] = &def

	return nil
}

func (r *TaskRegistry) lookup(name string) (TaskDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.tasks[name]
	if !ok {
		return TaskDef{}, false
	}

	return *def, true
}

func (r *TaskRegistry) seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

func (r *TaskRegistry) isSealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sealed
}

// list returns the registered tasks ordered by name.
func (r *TaskRegistry) list() []TaskDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]TaskDef, 0, len(r.tasks))
	for _, def := range r.tasks {
		defs = append(defs, *def)
	}

	slices.SortFunc(defs, func(a, b TaskDef) int { return strings.Compare(a.Name, b.Name) })

	return defs
}

// AddTask registers a task under name.
func (a *App) AddTask(name string, h Handler, opts ...TaskOption) error {
	def := TaskDef{Name: name, Handler: h}

	for _, opt := range opts {
		opt(&def)
	}

	if err := a.registry.register(def); err != nil {
		a.container.Errorf("could not register task: %v", err)
		return err
	}

	a.container.Debugf("registered task %s", def.Name)
	a.container.Metrics().SetGauge("app_tasks_registered", float64(len(a.registry.list())))

	return nil
}

// Tasks lists the registered tasks ordered by name.
func (a *App) Tasks() []TaskDef {
	return a.registry.list()
}
