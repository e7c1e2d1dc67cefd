package sqltask

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
)

var (
	ErrEmptyFlow       = errors.New("flow has no steps")
	ErrStepWithoutTask = errors.New("step does not name a task")
	ErrAmbiguousParams = errors.New("step sets both args and params")
)

// Flow is an ordered list of task invocations read from YAML:
//
//	name: nightly
//	steps:
//	  - name: create
//	    task: sql_execute
//	    query: CREATE TABLE IF NOT EXISTS events (id INTEGER, kind TEXT)
//	  - name: recent
//	    task: sql_query
//	    query: SELECT id, kind FROM events WHERE kind = :kind
//	    params: {kind: login}
//	    limit: 10
type Flow struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one task invocation of a flow. Args binds positional and Params named parameters.
type Step struct {
	Name   string         `yaml:"name"`
	Task   string         `yaml:"task"`
	Query  string         `yaml:"query"`
	Args   []any          `yaml:"args,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
	Limit  *int           `yaml:"limit,omitempty"`
}

// StepResult is the output of a completed step.
type StepResult struct {
	Step   string `json:"step" yaml:"step"`
	Task   string `json:"task" yaml:"task"`
	Output any    `json:"output,omitempty" yaml:"output,omitempty"`
}

// ParseFlow decodes and checks a YAML flow. Unknown keys are rejected and unnamed steps are
// named after their position.
func ParseFlow(data []byte) (*Flow, error) {
	var f Flow

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not parse flow: %w", err)
	}

	if len(f.Steps) == 0 {
		return nil, ErrEmptyFlow
	}

	for i := range f.Steps {
		s := &f.Steps[i]

		if s.Name == "" {
			s.Name = fmt.Sprintf("step-%d", i+1)
		}

		if s.Task == "" {
			return nil, fmt.Errorf("%w: %s", ErrStepWithoutTask, s.Name)
		}

		if s.Args != nil && s.Params != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousParams, s.Name)
		}
	}

	return &f, nil
}

// LoadFlow reads and parses the flow file at path.
func LoadFlow(path string) (*Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseFlow(data)
}

func (s *Step) input() Input {
	in := Input{Query: s.Query, Limit: s.Limit}

	switch {
	case s.Args != nil:
		in.Params = sql.Positional(s.Args)
	case s.Params != nil:
		in.Params = sql.Named(s.Params)
	}

	return in
}

// RunFlow runs the steps of f in order and stops at the first failing step. Results of the
// steps completed so far are returned along with the error.
func (a *App) RunFlow(ctx context.Context, f *Flow) ([]StepResult, error) {
	results := make([]StepResult, 0, len(f.Steps))

	a.Logger().Infof("running flow %s with %d steps", f.Name, len(f.Steps))

	for i := range f.Steps {
		s := &f.Steps[i]

		if err := ctx.Err(); err != nil {
			return results, fmt.Errorf("step %s: %w", s.Name, err)
		}

		out, err := a.Run(ctx, s.Task, s.input())
		if err != nil {
			return results, fmt.Errorf("step %s: %w", s.Name, err)
		}

		results = append(results, StepResult{Step: s.Name, Task: s.Task, Output: out})
	}

	return results, nil
}
