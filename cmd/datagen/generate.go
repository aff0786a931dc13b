package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/goliatone/go-datagen/internal/config"
	"github.com/goliatone/go-datagen/internal/logging"
	"github.com/goliatone/go-datagen/pkg/format"
	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/orchestrator"
)

type generateConfig struct {
	*cli.Command
	app *app

	Count        int    `cli:"name=count aliases=n desc='number of records to generate (default 1)'"`
	Format       string `cli:"name=format aliases=f desc='output format: json, csv, sql, yaml, html, template'"`
	Output       string `cli:"name=output aliases=o desc='output file (default stdout)'"`
	Schema       string `cli:"name=schema desc='custom schema as JSON or YAML text'"`
	SchemaFile   string `cli:"name=schema-file desc='custom schema from a JSON or YAML file'"`
	Seed         string `cli:"name=seed desc='random seed for reproducible data'"`
	Locale       string `cli:"name=locale desc='locale for generated data (default en_US)'"`
	Table        string `cli:"name=table desc='table name for SQL output (default test_data)'"`
	Dialect      string `cli:"name=dialect desc='SQL dialect: standard, mysql, postgresql'"`
	Compact      bool   `cli:"name=compact desc='compact JSON output (no indentation)'"`
	Delimiter    string `cli:"name=delimiter desc='CSV delimiter (default ,)'"`
	NoHeader     bool   `cli:"name=no-header desc='omit the CSV header row'"`
	TemplateFile string `cli:"name=template-file desc='pongo2 template for the template format'"`
	Escape       bool   `cli:"name=escape desc='HTML-escape values in the template format'"`
	OpenAPI      string `cli:"name=openapi desc='OpenAPI document path or URL'"`
	Operation    string `cli:"name=operation desc='OpenAPI operation id whose request body is the schema'"`
	TemplatesDir string `cli:"name=templates-dir desc='directory of extra template YAML files'"`
	Config       string `cli:"name=config desc='config file (default $DATAGEN_CONFIG)'"`
	Verbose      bool   `cli:"name=verbose aliases=v desc='debug logging on stderr'"`
}

// GenerateCommand returns the generate subcommand.
func GenerateCommand(a *app) *cli.Command {
	cfg := &generateConfig{app: a}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "generate").
		WithAliases("gen", "g").
		WithSynopsis("generate [template] [opts]").
		WithDescription("Generate test data using templates or custom schemas.").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *generateConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: generate takes at most one template name", cli.ErrUsage)
	}

	in := generateInput{
		Count:        cfg.Count,
		Format:       cfg.Format,
		Output:       cfg.Output,
		Schema:       cfg.Schema,
		SchemaFile:   cfg.SchemaFile,
		Seed:         cfg.Seed,
		Locale:       cfg.Locale,
		Table:        cfg.Table,
		Dialect:      cfg.Dialect,
		Compact:      cfg.Compact,
		Delimiter:    cfg.Delimiter,
		NoHeader:     cfg.NoHeader,
		TemplateFile: cfg.TemplateFile,
		Escape:       cfg.Escape,
		OpenAPI:      cfg.OpenAPI,
		Operation:    cfg.Operation,
		TemplatesDir: cfg.TemplatesDir,
		Config:       cfg.Config,
		Verbose:      cfg.Verbose,
		CountSet:     optSet(cfg.Command, "count"),
	}
	if len(args) == 1 {
		in.Template = args[0]
	}
	return cfg.app.report(cfg.app.generate(cc.Out, in))
}

// generateInput is the parsed generate invocation. String fields left empty
// fall back to the config file and environment.
type generateInput struct {
	Template     string
	Count        int
	CountSet     bool
	Format       string
	Output       string
	Schema       string
	SchemaFile   string
	Seed         string
	Locale       string
	Table        string
	Dialect      string
	Compact      bool
	Indent       int
	Delimiter    string
	NoHeader     bool
	TemplateFile string
	Escape       bool
	OpenAPI      string
	Operation    string
	TemplatesDir string
	Config       string
	Verbose      bool
}

// merge fills unset inputs from cfg.
func (in *generateInput) merge(cfg *config.Config) {
	if !in.CountSet {
		in.Count = cfg.Count
	}
	in.Indent = cfg.Indent
	fill := func(target *string, value string) {
		if *target == "" {
			*target = value
		}
	}
	fill(&in.Format, cfg.Format)
	fill(&in.Locale, cfg.Locale)
	fill(&in.Table, cfg.Table)
	fill(&in.Dialect, cfg.Dialect)
	fill(&in.Delimiter, cfg.Delimiter)
	fill(&in.TemplatesDir, cfg.TemplatesDir)
}

func (a *app) generate(out io.Writer, in generateInput) error {
	cfg, err := config.NewLoader().WithConfigPath(in.Config).WithLookupEnv(a.lookupEnv).Load()
	if err != nil {
		return err
	}
	in.merge(cfg)

	logger, err := logging.New(cfg.Log.Level, in.Verbose, a.stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg, err := registry(in.TemplatesDir)
	if err != nil {
		return err
	}

	req, err := a.request(in, reg.List())
	if err != nil {
		return err
	}
	logger.Debug("config resolved",
		zap.String("format", req.Format),
		zap.Int("count", req.Count),
		zap.String("locale", req.Locale),
	)

	orch := a.orchestrator(orchestrator.WithLogger(logger), orchestrator.WithTemplates(reg))
	data, err := orch.Generate(a.ctx, req)
	if err != nil {
		return err
	}

	if in.Output != "" {
		if err := os.WriteFile(in.Output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", in.Output, err)
		}
		fmt.Fprintf(a.stderr, "Generated %d record(s) -> %s\n", req.Count, in.Output)
		return nil
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}

// request builds the orchestrator request. Schema sources are taken in the
// order --schema-file, --schema, --openapi, template argument.
func (a *app) request(in generateInput, available []string) (orchestrator.Request, error) {
	req := orchestrator.Request{
		Count:  in.Count,
		Format: strings.ToLower(strings.TrimSpace(in.Format)),
		Locale: in.Locale,
	}

	switch {
	case in.SchemaFile != "":
		data, err := os.ReadFile(in.SchemaFile)
		if err != nil {
			return req, fmt.Errorf("read schema file: %w", err)
		}
		req.SchemaText = data
	case in.Schema != "":
		req.SchemaText = []byte(in.Schema)
	case in.OpenAPI != "":
		if in.Operation == "" {
			return req, fmt.Errorf("%w: --openapi requires --operation", cli.ErrUsage)
		}
		src, err := pkgopenapi.ParseSource(in.OpenAPI)
		if err != nil {
			return req, err
		}
		req.Source = src
		req.OperationID = in.Operation
	case in.Template != "":
		req.Template = in.Template
	default:
		fmt.Fprintln(a.stderr, "Error: Provide a template name or --schema/--schema-file")
		fmt.Fprintln(a.stderr, "\nAvailable templates:")
		for _, name := range available {
			fmt.Fprintf(a.stderr, "  - %s\n", name)
		}
		return req, errReported
	}

	if in.Seed != "" {
		seed, err := strconv.ParseInt(strings.TrimSpace(in.Seed), 10, 64)
		if err != nil {
			return req, fmt.Errorf("%w: --seed %q is not an integer", cli.ErrUsage, in.Seed)
		}
		req.Seed = &seed
	}

	opts, err := formatOptions(in)
	if err != nil {
		return req, err
	}
	req.FormatOptions = &opts
	return req, nil
}

func formatOptions(in generateInput) (format.Options, error) {
	opts := format.DefaultOptions()
	opts.JSON.Indent = in.Indent
	if in.Compact {
		opts.JSON.Indent = 0
	}
	opts.JSON.SingleObject = in.Count == 1

	delimiter := []rune(in.Delimiter)
	if len(delimiter) != 1 {
		return opts, fmt.Errorf("%w: --delimiter must be a single character", cli.ErrUsage)
	}
	opts.CSV.Delimiter = delimiter[0]
	opts.CSV.NoHeader = in.NoHeader

	opts.SQL.Table = in.Table
	opts.SQL.Dialect = in.Dialect

	if in.TemplateFile != "" {
		data, err := os.ReadFile(in.TemplateFile)
		if err != nil {
			return opts, fmt.Errorf("read template file: %w", err)
		}
		opts.Template.Source = string(data)
	}
	opts.Template.Escape = in.Escape
	return opts, nil
}
