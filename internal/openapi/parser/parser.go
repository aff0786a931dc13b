package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) *Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId. Operations
// without an id are keyed "method:path".
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	if p.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		collectOperation(operations, "GET", path, item.Get)
		collectOperation(operations, "PUT", path, item.Put)
		collectOperation(operations, "POST", path, item.Post)
		collectOperation(operations, "DELETE", path, item.Delete)
		collectOperation(operations, "PATCH", path, item.Patch)
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func collectOperation(target map[string]pkgopenapi.Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}

	target[opID] = pkgopenapi.Operation{
		ID:          opID,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		RequestBody: extractRequestSchema(operation.RequestBody),
	}
}

func extractRequestSchema(requestBody *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if requestBody == nil {
		return pkgopenapi.Schema{}
	}
	if requestBody.Value == nil {
		return pkgopenapi.Schema{Ref: requestBody.Ref}
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	for _, mt := range content {
		if mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}
