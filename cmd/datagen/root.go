package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-datagen"
	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/orchestrator"
	"github.com/goliatone/go-datagen/pkg/prompt"
	"github.com/goliatone/go-datagen/pkg/schema"
	"github.com/goliatone/go-datagen/pkg/templates"
)

const usageText = `datagen generates realistic test data from templates or schemas.

Examples:
  datagen generate user -n 10
  datagen generate address -n 5 -f csv
  datagen generate order -n 20 -f sql --table orders --dialect mysql
  datagen generate --schema '{"id": "uuid", "score": {"type": "integer", "min": 0, "max": 100}}'
  datagen generate --openapi api.yaml --operation createUser -n 3
  datagen generate user -n 5 --seed 42`

const remoteTimeout = 30 * time.Second

// errReported marks failures whose message was already written to stderr.
var errReported = errors.New("datagen: error reported")

// app carries the process dependencies shared by every command.
type app struct {
	ctx       context.Context
	stderr    io.Writer
	lookupEnv func(string) (string, bool)
	newDriver func() prompt.PromptDriver
	now       func() time.Time
}

func newApp() *app {
	return &app{
		ctx:       context.Background(),
		stderr:    os.Stderr,
		lookupEnv: os.LookupEnv,
		newDriver: func() prompt.PromptDriver { return prompt.NewSurveyDriver(os.Stderr) },
	}
}

// Root returns the datagen command tree.
func Root() *cli.Command {
	a := newApp()
	return cli.NewCommand("datagen").
		WithSynopsis("datagen <command> [opts]").
		WithDescription(usageText).
		WithSubs(
			GenerateCommand(a),
			TemplatesCommand(a),
			FieldsCommand(a),
			SchemaCommand(a),
			ExampleCommand(a),
			BuildCommand(a),
		)
}

// report prints err and converts it into exit status 1. Usage errors are
// passed through so the command prints its usage.
func (a *app) report(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, cli.ErrUsage):
		return err
	case errors.Is(err, errReported):
	case errors.Is(err, schema.ErrMalformedSchema):
		fmt.Fprintf(a.stderr, "Error parsing schema: %v\n", err)
	default:
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return cli.ExitCodeErr(1)
}

func (a *app) orchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	loader := datagen.NewLoader(pkgopenapi.WithHTTPFallback(remoteTimeout))
	base := []orchestrator.Option{orchestrator.WithLoader(loader)}
	if a.now != nil {
		base = append(base, orchestrator.WithClock(a.now))
	}
	return orchestrator.New(append(base, options...)...)
}

// registry loads the built-in templates, layering dir on top when set.
func registry(dir string) (*templates.Registry, error) {
	if dir == "" {
		return templates.Default(), nil
	}
	return templates.LoadFS(templates.EmbeddedFS(), os.DirFS(dir))
}

// palette returns colour printers that are active only when w is a terminal.
type palette struct {
	title    func(a ...any) string
	category func(a ...any) string
	note     func(a ...any) string
}

func newPalette(w io.Writer) palette {
	enabled := false
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		title:    mk(color.FgGreen, color.Bold),
		category: mk(color.FgCyan, color.Bold),
		note:     mk(color.FgYellow, color.Bold),
	}
}

// optSet reports whether the named option was given on the command line.
func optSet(cmd *cli.Command, name string) bool {
	if cmd == nil {
		return false
	}
	for _, opt := range cmd.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}
