package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/legal-intake-api/pkg/docgen"
)

type report struct {
	SchemaVersion string              `json:"schema_version"`
	Output        docgen.Output       `json:"output"`
	Resolutions   []docgen.Resolution `json:"resolutions"`
	Warnings      []docgen.Warning    `json:"warnings"`
}

type mapInput struct {
	taxonomyPath  string
	intakePath    string
	schemaVersion string
}

// intakeFile accepts either a full submission ({"schema_version", "issues"})
// or a bare category -> field bag object.
type intakeFile struct {
	SchemaVersion string        `json:"schema_version"`
	Issues        docgen.Intake `json:"issues"`
}

func runMapping(in mapInput, logger *zap.Logger) (*report, error) {
	taxonomy, err := loadTaxonomy(in.taxonomyPath)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(in.intakePath)
	if err != nil {
		return nil, fmt.Errorf("read intake: %w", err)
	}
	var file intakeFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse intake %s: %w", in.intakePath, err)
	}
	intake := file.Issues
	if intake == nil {
		if err := json.Unmarshal(raw, &intake); err != nil {
			return nil, fmt.Errorf("parse intake %s: %w", in.intakePath, err)
		}
	}

	versionName := in.schemaVersion
	if versionName == "" {
		versionName = file.SchemaVersion
	}
	version, err := docgen.ParseSchemaVersion(versionName)
	if err != nil {
		return nil, err
	}

	resolutions := docgen.NewResolver(nil).ResolveAll(version, intake, taxonomy)
	for _, res := range resolutions {
		for _, entry := range res.Unmatched {
			logger.Warn("intake entry matched no option", zap.String("category", res.Category), zap.String("entry", entry))
		}
	}
	result := docgen.NewMapper(logger).Map(resolutions, taxonomy)
	return &report{
		SchemaVersion: version.String(),
		Output:        result.Output,
		Resolutions:   resolutions,
		Warnings:      result.Warnings,
	}, nil
}
