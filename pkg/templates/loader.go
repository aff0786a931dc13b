package templates

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagen/pkg/schema"
)

// LoadFS walks the provided filesystems in order and parses every YAML file
// into templates. Files are visited in lexical order and templates keep their
// order within a file. A template name may only be defined once.
func LoadFS(filesystems ...fs.FS) (*Registry, error) {
	reg := NewRegistry()
	for _, fsys := range filesystems {
		if fsys == nil {
			continue
		}
		err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || !isTemplateFile(path) {
				return nil
			}

			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("templates: read %s: %w", path, err)
			}
			parsed, err := parseFile(data, path)
			if err != nil {
				return err
			}
			for _, tpl := range parsed {
				if err := reg.Register(tpl); err != nil {
					return fmt.Errorf("templates: file %s: %w", path, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Default loads the built-in templates. It panics if the embedded data is
// invalid, which would be a build defect.
func Default() *Registry {
	reg, err := LoadFS(EmbeddedFS())
	if err != nil {
		panic(err)
	}
	return reg
}

type templateFile struct {
	Templates []templateEntry `yaml:"templates"`
}

type templateEntry struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Fields      yaml.Node `yaml:"fields"`
}

func parseFile(data []byte, source string) ([]Template, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("templates: file %s is empty", source)
	}

	var doc templateFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("templates: parse %s: %w", source, err)
	}

	out := make([]Template, 0, len(doc.Templates))
	for i, entry := range doc.Templates {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("templates: file %s entry %d has no name", source, i)
		}
		s, err := schema.FromYAMLNode(&entry.Fields)
		if err != nil {
			return nil, fmt.Errorf("templates: template %q (%s): %w", name, source, err)
		}
		out = append(out, Template{
			Name:        name,
			Description: strings.TrimSpace(entry.Description),
			Schema:      s,
			Source:      source,
		})
	}
	return out, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
