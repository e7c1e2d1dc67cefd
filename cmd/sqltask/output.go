package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sllt/sqltask/pkg/sqltask"
	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

type taskInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Timeout     string   `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func describeTasks(defs []sqltask.TaskDef) []taskInfo {
	infos := make([]taskInfo, 0, len(defs))

	for _, d := range defs {
		info := taskInfo{Name: d.Name, Description: d.Description, Tags: d.Tags}
		if d.Timeout > 0 {
			info.Timeout = d.Timeout.String()
		}

		infos = append(infos, info)
	}

	return infos
}

func write(w io.Writer, format string, v any) error {
	v = printable(v)

	switch strings.ToLower(format) {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q, expected json or yaml", format)
	}
}

// printable turns driver values that encode poorly, such as raw bytes, into text.
func printable(v any) any {
	switch val := v.(type) {
	case []sqltask.StepResult:
		out := make([]sqltask.StepResult, len(val))
		for i, r := range val {
			r.Output = printable(r.Output)
			out[i] = r
		}

		return out
	case []sql.Row:
		out := make([][]any, len(val))
		for i, row := range val {
			out[i] = make([]any, len(row))
			for j, cell := range row {
				out[i][j] = printableValue(cell)
			}
		}

		return out
	default:
		return v
	}
}

func printableValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return v
	}
}
