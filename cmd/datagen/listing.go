package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-datagen/pkg/format"
	"github.com/goliatone/go-datagen/pkg/orchestrator"
	"github.com/goliatone/go-datagen/pkg/provider"
)

const (
	exampleSeed  = 42
	exampleCount = 3
)

const specialSpecs = `
    integer:  {"type": "integer", "min": 0, "max": 100}
    decimal:  {"type": "decimal", "min": 0, "max": 100, "precision": 2}
    choice:   {"type": "choice", "values": ["a", "b", "c"]}
    pattern:  {"type": "pattern", "pattern": "ID-####"}
    list:     {"type": "list", "item": "email", "count": 3}
`

type listConfig struct {
	*cli.Command
	app *app

	TemplatesDir string `cli:"name=templates-dir desc='directory of extra template YAML files'"`
}

// TemplatesCommand returns the templates subcommand.
func TemplatesCommand(a *app) *cli.Command {
	cfg := &listConfig{app: a}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "templates").
		WithAliases("t").
		WithSynopsis("templates").
		WithDescription("List all available data templates.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			if _, err := cfg.Parse(cc, args); err != nil {
				return err
			}
			return a.report(a.listTemplates(cc.Out, cfg.TemplatesDir, newPalette(cc.Out)))
		})
}

func (a *app) listTemplates(out io.Writer, dir string, p palette) error {
	reg, err := registry(dir)
	if err != nil {
		return err
	}
	fmt.Fprint(out, "Available Templates:\n\n")
	for _, name := range reg.List() {
		s, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s\n", p.title(name))
		fmt.Fprintf(out, "    Fields: %s\n\n", strings.Join(s.Names(), ", "))
	}
	return nil
}

// FieldsCommand returns the fields subcommand.
func FieldsCommand(a *app) *cli.Command {
	var cmd *cli.Command
	cmd = cli.NewCommand("fields").
		WithAliases("f").
		WithSynopsis("fields").
		WithDescription("List all available field types.").
		WithRun(func(cc *cli.Context, args []string) error {
			if _, err := cmd.Parse(cc, args); err != nil {
				return err
			}
			return a.report(a.listFields(cc.Out, newPalette(cc.Out)))
		})
	return cmd
}

func (a *app) listFields(out io.Writer, p palette) error {
	fmt.Fprint(out, "Available Field Types:\n\n")
	for _, category := range provider.Categories() {
		fmt.Fprintf(out, "  %s\n", p.category(category.Name))
		fmt.Fprintf(out, "    %s\n\n", strings.Join(category.Kinds, ", "))
	}
	fmt.Fprintln(out, p.note("Special Field Specs (use in --schema):"))
	fmt.Fprintln(out, specialSpecs)
	return nil
}

// SchemaCommand returns the schema subcommand.
func SchemaCommand(a *app) *cli.Command {
	cfg := &listConfig{app: a}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "schema").
		WithSynopsis("schema <template>").
		WithDescription("Show the schema for a specific template.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Parse(cc, args)
			if err != nil {
				return err
			}
			if len(args) != 1 {
				return fmt.Errorf("%w: schema requires one template name", cli.ErrUsage)
			}
			return a.report(a.showSchema(cc.Out, cfg.TemplatesDir, args[0]))
		})
}

func (a *app) showSchema(out io.Writer, dir, name string) error {
	reg, err := registry(dir)
	if err != nil {
		return err
	}
	s, err := reg.Get(name)
	if err != nil {
		return err
	}
	compact, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := gojson.Indent(&buf, compact, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = out.Write(buf.Bytes())
	return err
}

type exampleConfig struct {
	*cli.Command
	app *app

	Count int `cli:"name=count aliases=n desc='number of example records (default 3)'"`
}

// ExampleCommand returns the example subcommand.
func ExampleCommand(a *app) *cli.Command {
	cfg := &exampleConfig{app: a, Count: exampleCount}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "example").
		WithSynopsis("example <template> [-n N]").
		WithDescription("Show example output for a template, seeded for consistency.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Parse(cc, args)
			if err != nil {
				return err
			}
			if len(args) != 1 {
				return fmt.Errorf("%w: example requires one template name", cli.ErrUsage)
			}
			return a.report(a.example(cc.Out, args[0], cfg.Count))
		})
}

func (a *app) example(out io.Writer, name string, count int) error {
	seed := int64(exampleSeed)
	opts := format.DefaultOptions()
	data, err := a.orchestrator().Generate(a.ctx, orchestrator.Request{
		Template:      name,
		Count:         count,
		Seed:          &seed,
		FormatOptions: &opts,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Example %s data:\n\n", name)
	if _, err := out.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}
