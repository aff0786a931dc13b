package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"

	"github.com/goliatone/go-datagen/pkg/prompt"
	"github.com/goliatone/go-datagen/pkg/provider"
)

type buildConfig struct {
	*cli.Command
	app *app

	Output string `cli:"name=output aliases=o desc='write the schema to a file (default stdout)'"`
}

// BuildCommand returns the interactive schema builder subcommand.
func BuildCommand(a *app) *cli.Command {
	cfg := &buildConfig{app: a}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "build").
		WithSynopsis("build [-o PATH]").
		WithDescription("Build a custom schema interactively, ready for --schema-file.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			if _, err := cfg.Parse(cc, args); err != nil {
				return err
			}
			return a.report(a.build(cc.Out, a.newDriver(), cfg.Output))
		})
}

func (a *app) build(out io.Writer, driver prompt.PromptDriver, output string) error {
	s, err := prompt.NewBuilder(driver, provider.KindNames()).Build(a.ctx)
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

	if output != "" {
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		fmt.Fprintf(a.stderr, "Schema with %d field(s) -> %s\n", s.Len(), output)
		return nil
	}
	_, err = out.Write(buf.Bytes())
	return err
}
