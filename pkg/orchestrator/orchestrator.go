package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	internalLoader "github.com/goliatone/go-datagen/internal/openapi/loader"
	internalParser "github.com/goliatone/go-datagen/internal/openapi/parser"
	"github.com/goliatone/go-datagen/pkg/format"
	"github.com/goliatone/go-datagen/pkg/generator"
	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/provider"
	"github.com/goliatone/go-datagen/pkg/schema"
	"github.com/goliatone/go-datagen/pkg/templates"
)

const defaultFormatName = format.FormatJSON

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithFormats injects a formatter registry.
func WithFormats(registry *format.Registry) Option {
	return func(o *Orchestrator) {
		o.formats = registry
	}
}

// WithTemplates injects a template registry.
func WithTemplates(registry *templates.Registry) Option {
	return func(o *Orchestrator) {
		o.templates = registry
	}
}

// WithDefaultFormat overrides the format used when a request omits one.
func WithDefaultFormat(name string) Option {
	return func(o *Orchestrator) {
		o.defaultFormat = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock fixes the time source used by date and time kinds.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// Orchestrator coordinates schema resolution, record generation and
// formatting. Missing dependencies are initialised with the built-in
// implementations.
type Orchestrator struct {
	loader        pkgopenapi.Loader
	parser        pkgopenapi.Parser
	formats       *format.Registry
	templates     *templates.Registry
	defaultFormat string
	logger        *zap.Logger
	now           func() time.Time
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultFormat: defaultFormatName,
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one generation run. Exactly one schema source is used,
// picked in the order Schema, SchemaText, OpenAPI (Source or Document with
// OperationID), Template.
type Request struct {
	// Template names a built-in template.
	Template string

	// Schema supplies a prebuilt schema.
	Schema *schema.Schema

	// SchemaText holds JSON or YAML schema text.
	SchemaText []byte

	// Source and Document locate an OpenAPI document whose OperationID
	// request body becomes the schema.
	Source      pkgopenapi.Source
	Document    *pkgopenapi.Document
	OperationID string

	// Count is the number of records. Zero yields an empty dataset.
	Count int

	// Format names the output format. Empty selects the default format.
	Format string

	// FormatOptions overrides format.DefaultOptions when non-nil.
	FormatOptions *format.Options

	// Seed fixes the random stream. Nil seeds from the wall clock.
	Seed *int64

	// Locale selects the data locale. Unsupported values fall back to the
	// default with a warning.
	Locale string
}

// Generate resolves the schema, generates records and formats them.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	records, err := o.Records(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	formatter, err := o.formatterFor(req)
	if err != nil {
		return nil, err
	}
	output, err := formatter.Format(ctx, records)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: format %s: %w", formatter.Name(), err)
	}
	return output, nil
}

// Records resolves the schema and generates records without formatting them.
func (o *Orchestrator) Records(ctx context.Context, req Request) ([]schema.Record, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, source, err := o.Schema(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	count := req.Count
	genCtx, err := generator.NewContext(o.providerFor(req))
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("schema", source),
		zap.Int("fields", s.Len()),
		zap.Int("count", count),
		zap.String("format", o.formatName(req)),
	}
	if req.Seed != nil {
		fields = append(fields, zap.Int64("seed", *req.Seed))
	}
	o.logger.Debug("generating records", fields...)

	records, err := generator.Generate(genCtx, s, count)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return records, nil
}

// Schema resolves the request's schema source. The returned label describes
// the source for logging.
func (o *Orchestrator) Schema(ctx context.Context, req Request) (schema.Schema, string, error) {
	switch {
	case req.Schema != nil:
		return *req.Schema, "inline", nil
	case len(req.SchemaText) > 0:
		s, err := schema.Parse(req.SchemaText)
		if err != nil {
			return schema.Schema{}, "", err
		}
		return s, "schema text", nil
	case req.Document != nil || req.Source != nil:
		s, err := o.openAPISchema(ctx, req)
		if err != nil {
			return schema.Schema{}, "", err
		}
		return s, "openapi:" + req.OperationID, nil
	case req.Template != "":
		s, err := o.templates.Get(req.Template)
		if err != nil {
			return schema.Schema{}, "", fmt.Errorf("orchestrator: %w", err)
		}
		return s, "template:" + req.Template, nil
	default:
		return schema.Schema{}, "", errors.New("orchestrator: a template, schema, or OpenAPI operation is required")
	}
}

// Templates returns the template registry in use.
func (o *Orchestrator) Templates() *templates.Registry {
	return o.templates
}

// Formats returns the formatter registry in use.
func (o *Orchestrator) Formats() *format.Registry {
	return o.formats
}

func (o *Orchestrator) openAPISchema(ctx context.Context, req Request) (schema.Schema, error) {
	if req.OperationID == "" {
		return schema.Schema{}, errors.New("orchestrator: operation id is required")
	}
	adapter := pkgopenapi.NewAdapter(o.loader, o.parser)
	if req.Document != nil {
		return adapter.SchemaFromDocument(ctx, *req.Document, req.OperationID)
	}
	return adapter.Schema(ctx, req.Source, req.OperationID)
}

func (o *Orchestrator) providerFor(req Request) provider.Provider {
	var opts []provider.Option
	if req.Seed != nil {
		opts = append(opts, provider.WithSeed(*req.Seed))
	}
	if o.now != nil {
		opts = append(opts, provider.WithClock(o.now))
	}
	if req.Locale != "" {
		locale, ok := provider.NormalizeLocale(req.Locale)
		if !ok {
			o.logger.Warn("unsupported locale, falling back",
				zap.String("locale", req.Locale),
				zap.String("fallback", locale),
			)
		}
		opts = append(opts, provider.WithLocale(locale))
	}
	return provider.New(opts...)
}

func (o *Orchestrator) formatName(req Request) string {
	if req.Format != "" {
		return req.Format
	}
	return o.defaultFormat
}

func (o *Orchestrator) formatterFor(req Request) (format.Formatter, error) {
	opts := format.DefaultOptions()
	if req.FormatOptions != nil {
		opts = *req.FormatOptions
	}
	formatter, err := o.formats.New(o.formatName(req), opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return formatter, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.formats == nil {
		o.formats = format.Default()
	}
	if o.templates == nil {
		o.templates = templates.Default()
	}
	if o.defaultFormat == "" {
		o.defaultFormat = defaultFormatName
	}
}
