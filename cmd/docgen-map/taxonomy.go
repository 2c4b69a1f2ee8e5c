package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/legal-intake-api/pkg/docgen"
)

// taxonomyFile is the on-disk taxonomy fixture format:
//
//	categories:
//	  - code: vermin
//	    options:
//	      - {code: RatsMice, name: Rats/Mice}
type taxonomyFile struct {
	Categories []struct {
		Code    string          `yaml:"code"`
		Active  *bool           `yaml:"active"`
		Options []docgen.Option `yaml:"options"`
	} `yaml:"categories"`
}

// loadTaxonomy reads active categories from path. An empty path falls back
// to the protected schema, using option codes as names.
func loadTaxonomy(path string) (map[string][]docgen.Option, error) {
	if path == "" {
		return schemaTaxonomy(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	var file taxonomyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", path, err)
	}

	out := make(map[string][]docgen.Option, len(file.Categories))
	for _, cat := range file.Categories {
		if cat.Code == "" {
			return nil, fmt.Errorf("parse taxonomy %s: category without code", path)
		}
		if cat.Active != nil && !*cat.Active {
			continue
		}
		if _, dup := out[cat.Code]; dup {
			return nil, fmt.Errorf("parse taxonomy %s: duplicate category %q", path, cat.Code)
		}
		options := make([]docgen.Option, 0, len(cat.Options))
		for _, option := range cat.Options {
			if option.Name == "" {
				option.Name = option.Code
			}
			options = append(options, option)
		}
		out[cat.Code] = options
	}
	return out, nil
}

func schemaTaxonomy() map[string][]docgen.Option {
	schema := docgen.ProtectedSchema()
	out := make(map[string][]docgen.Option, len(schema))
	for _, cat := range schema {
		options := make([]docgen.Option, len(cat.Options))
		for i, code := range cat.Options {
			options[i] = docgen.Option{Code: code, Name: code}
		}
		out[cat.Code] = options
	}
	return out
}
