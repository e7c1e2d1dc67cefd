package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/sllt/sqltask/pkg/sqltask"
	"github.com/sllt/sqltask/pkg/sqltask/datasource/sql"
)

var errArgsAndParams = errors.New("--arg and --param cannot be combined")

// newApp builds the App commands run against; configuration comes from ./configs and the environment.
var newApp = func() (*sqltask.App, error) {
	app := sqltask.New()

	if err := app.AddSQLTasks(); err != nil {
		return nil, err
	}

	return app, nil
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	formatFlag := &cli.StringFlag{
		Name:  "format",
		Usage: "Output format, json or yaml",
		Value: formatJSON,
	}

	statementFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "query",
			Aliases:  []string{"q"},
			Usage:    "SQL statement to run",
			Required: true,
		},
		&cli.StringSliceFlag{
			Name:  "arg",
			Usage: "Positional parameter, repeat in placeholder order",
		},
		&cli.StringSliceFlag{
			Name:  "param",
			Usage: "Named parameter as name=value, repeatable",
		},
	}

	return &cli.Command{
		Name:    "sqltask",
		Usage:   "Run SQL tasks against the database configured in ./configs or the environment",
		Version: CLIVersion,
		Commands: []*cli.Command{
			{
				Name:  "execute",
				Usage: "Execute a statement that returns no rows and commit it",
				Flags: statementFlags,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					in, err := inputFromFlags(cmd)
					if err != nil {
						return err
					}

					return runTask(ctx, cmd, sqltask.TaskExecute, in)
				},
			},
			{
				Name:  "query",
				Usage: "Execute a query and print its rows",
				Flags: append(statementFlags,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of rows to fetch (default: all)",
					},
					formatFlag,
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					in, err := inputFromFlags(cmd)
					if err != nil {
						return err
					}

					if cmd.IsSet("limit") {
						in.Limit = sqltask.Limit(cmd.Int("limit"))
					}

					return runTask(ctx, cmd, sqltask.TaskQuery, in)
				},
			},
			{
				Name:  "run",
				Usage: "Run the steps of a YAML flow file in order",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "flow",
					},
				},
				Flags: []cli.Flag{formatFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.StringArg("flow")
					if path == "" {
						return fmt.Errorf("please provide a flow file, e.g.: sqltask run nightly.yaml")
					}

					flow, err := sqltask.LoadFlow(path)
					if err != nil {
						return err
					}

					return withApp(ctx, func(ctx context.Context, app *sqltask.App) error {
						results, err := app.RunFlow(ctx, flow)
						if len(results) > 0 {
							if werr := write(cmd.Root().Writer, cmd.String("format"), results); werr != nil {
								return errors.Join(err, werr)
							}
						}

						return err
					})
				},
			},
			{
				Name:  "tasks",
				Usage: "List registered tasks",
				Flags: []cli.Flag{formatFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					app, err := newApp()
					if err != nil {
						return err
					}

					defer app.Shutdown(context.WithoutCancel(ctx))

					return write(cmd.Root().Writer, cmd.String("format"), describeTasks(app.Tasks()))
				},
			},
		},
	}
}

func runTask(ctx context.Context, cmd *cli.Command, task string, in sqltask.Input) error {
	return withApp(ctx, func(ctx context.Context, app *sqltask.App) error {
		out, err := app.Run(ctx, task, in)
		if err != nil {
			return err
		}

		if out == nil {
			return nil
		}

		return write(cmd.Root().Writer, cmd.String("format"), out)
	})
}

// withApp runs fn with the metrics server serving alongside it and shuts the App down afterwards.
func withApp(ctx context.Context, fn func(ctx context.Context, app *sqltask.App) error) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	defer app.Shutdown(context.WithoutCancel(ctx))

	return app.Start(ctx, func(ctx context.Context) error {
		return fn(ctx, app)
	})
}

func inputFromFlags(cmd *cli.Command) (sqltask.Input, error) {
	in := sqltask.Input{Query: cmd.String("query")}

	args, params := cmd.StringSlice("arg"), cmd.StringSlice("param")

	switch {
	case len(args) > 0 && len(params) > 0:
		return in, errArgsAndParams
	case len(args) > 0:
		positional := make(sql.Positional, len(args))
		for i, a := range args {
			positional[i] = a
		}

		in.Params = positional
	case len(params) > 0:
		named := make(sql.Named, len(params))

		for _, p := range params {
			name, value, ok := strings.Cut(p, "=")
			if !ok || name == "" {
				return in, fmt.Errorf("invalid --param %q, expected name=value", p)
			}

			named[name] = value
		}

		in.Params = named
	}

	return in, nil
}
