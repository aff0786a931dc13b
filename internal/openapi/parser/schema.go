package parser

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
)

// convertSchema flattens a kin-openapi schema, merging allOf members into the
// result. Recursive references stop at the first repeat and keep their Ref.
func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	return convertSchemaVisited(ref, make(map[*openapi3.Schema]bool))
}

func convertSchemaVisited(ref *openapi3.SchemaRef, visiting map[*openapi3.Schema]bool) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	if visiting[src] {
		return pkgopenapi.Schema{Ref: ref.Ref, Type: firstSchemaType(src.Type)}
	}
	visiting[src] = true
	defer delete(visiting, src)

	out := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
	}
	if len(src.Required) > 0 {
		out.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		out.Enum = append([]any(nil), src.Enum...)
	}
	if src.Min != nil {
		value := *src.Min
		out.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		out.Maximum = &value
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			out.Properties[name] = convertSchemaVisited(property, visiting)
		}
	}
	if src.Items != nil {
		items := convertSchemaVisited(src.Items, visiting)
		out.Items = &items
	}

	for _, member := range src.AllOf {
		mergeSchema(&out, convertSchemaVisited(member, visiting))
	}
	return out
}

// mergeSchema folds an allOf member into target. Properties already present on
// target win.
func mergeSchema(target *pkgopenapi.Schema, member pkgopenapi.Schema) {
	if target.Type == "" {
		target.Type = member.Type
	}
	if target.Format == "" {
		target.Format = member.Format
	}
	if target.Minimum == nil {
		target.Minimum = member.Minimum
	}
	if target.Maximum == nil {
		target.Maximum = member.Maximum
	}
	if len(target.Enum) == 0 && len(member.Enum) > 0 {
		target.Enum = member.Enum
	}
	if target.Items == nil {
		target.Items = member.Items
	}
	if len(member.Properties) > 0 {
		if target.Properties == nil {
			target.Properties = make(map[string]pkgopenapi.Schema, len(member.Properties))
		}
		for name, property := range member.Properties {
			if _, exists := target.Properties[name]; !exists {
				target.Properties[name] = property
			}
		}
	}
	for _, name := range member.Required {
		if !contains(target.Required, name) {
			target.Required = append(target.Required, name)
		}
	}
}

func contains(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
