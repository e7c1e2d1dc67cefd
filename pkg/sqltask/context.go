package sqltask

import (
	"context"

	"github.com/google/uuid"

	"github.com/sllt/sqltask/pkg/sqltask/infra"
	"github.com/sllt/sqltask/pkg/sqltask/logging"
)

// Context is handed to a task handler for one run. It carries the run's context.Context, the
// shared container and a logger that stamps every line with the run's trace ID.
type Context struct {
	context.Context

	*infra.Container

	// promoted ahead of the container's logger
	*logging.ContextLogger

	RunID string
	Task  string

	input Input
}

func newContext(ctx context.Context, c *infra.Container, task string, in Input) *Context {
	return &Context{
		Context:       ctx,
		Container:     c,
		ContextLogger: logging.NewContextLogger(ctx, c.Logger),
		RunID:         uuid.NewString(),
		Task:          task,
		input:         in,
	}
}

// Input returns the input the task was invoked with.
func (c *Context) Input() Input {
	return c.input
}
