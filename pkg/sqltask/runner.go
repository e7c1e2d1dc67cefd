package sqltask

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrTaskPanicked = errors.New("task panicked")

// Run invokes the task registered under name with in. The first run seals the registry.
func (a *App) Run(ctx context.Context, name string, in Input) (any, error) {
	a.registry.seal()

	def, ok := a.registry.lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, name)
	}

	timeout := def.Timeout
	if timeout == 0 {
		timeout = a.defaultTimeout
	}

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx, span := a.tracer.Start(ctx, "task "+def.Name, trace.WithAttributes(attribute.String("sqltask.task", def.Name)))
	defer span.End()

	c := newContext(ctx, a.container, def.Name, in)
	span.SetAttributes(attribute.String("sqltask.run_id", c.RunID))

	c.Debugf("starting task %s, run %s", def.Name, c.RunID)

	start := time.Now()
	out, err := invoke(c, def.Handler)
	duration := time.Since(start)

	status := "success"

	if err != nil {
		status = "failure"

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.Errorf("task %s failed after %v, run %s: %v", def.Name, duration, c.RunID, err)
	} else {
		c.Infof("task %s completed in %v, run %s", def.Name, duration, c.RunID)
	}

	a.Metrics().RecordHistogram(ctx, "app_task_duration", duration.Seconds(), "task", def.Name)
	a.Metrics().IncrementCounter(ctx, "app_task_runs", "task", def.Name, "status", status)

	return out, err
}

func invoke(c *Context, h Handler) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	return h(c)
}
