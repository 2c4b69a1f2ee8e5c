package docgen

import (
	"encoding/json"
	"sort"

	"go.uber.org/zap"
)

// Output is the flat document-generation input. Values are bool for toggle
// and option keys and string for metadata keys.
type Output map[string]interface{}

// JSON encodes the output with keys in lexical order, so equal outputs are
// byte-identical.
func (o Output) JSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}(o))
}

// Keys returns the output keys in lexical order.
func (o Output) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Warning reasons.
const (
	ReasonUnknownCategory     = "category_not_in_protected_schema"
	ReasonUnknownOption       = "option_not_in_protected_schema"
	ReasonInvalidSeverity     = "invalid_severity"
	ReasonDuplicateResolution = "duplicate_resolution"
)

// Warning describes input the mapper dropped instead of failing.
type Warning struct {
	Category string `json:"category"`
	Option   string `json:"option,omitempty"`
	Value    string `json:"value,omitempty"`
	Reason   string `json:"reason"`
}

// Result bundles the output with the warnings raised while building it.
type Result struct {
	Output   Output    `json:"output"`
	Warnings []Warning `json:"warnings"`
}

// Mapper renders resolutions into the protected key set.
type Mapper struct {
	schema Schema
	logger *zap.Logger
}

// NewMapper constructs a mapper over the protected schema.
func NewMapper(logger *zap.Logger) *Mapper {
	return NewMapperWithSchema(ProtectedSchema(), logger)
}

// NewMapperWithSchema is used by tests and tooling that pin a schema snapshot.
func NewMapperWithSchema(schema Schema, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{schema: schema, logger: logger}
}

// Map builds the output. Every protected key is always present; categories
// and options outside the schema are dropped with a warning. taxonomy lists
// the option codes currently enumerated per category and is only used to
// report options the protected schema does not know yet.
func (m *Mapper) Map(resolutions []Resolution, taxonomy map[string][]Option) Result {
	result := Result{Output: make(Output, len(m.schema)*8), Warnings: []Warning{}}

	byCategory := make(map[string]Resolution, len(resolutions))
	for _, res := range resolutions {
		if _, ok := m.schema.Category(res.Category); !ok {
			result.warn(m.logger, Warning{Category: res.Category, Reason: ReasonUnknownCategory})
			continue
		}
		if _, dup := byCategory[res.Category]; dup {
			result.warn(m.logger, Warning{Category: res.Category, Reason: ReasonDuplicateResolution})
			continue
		}
		byCategory[res.Category] = res
	}

	for _, code := range sortedOptionCategories(taxonomy) {
		cat, ok := m.schema.Category(code)
		if !ok {
			continue
		}
		for _, option := range taxonomy[code] {
			if !cat.HasOption(option.Code) {
				result.warn(m.logger, Warning{Category: code, Option: option.Code, Reason: ReasonUnknownOption})
			}
		}
	}

	for _, cat := range m.schema {
		res := byCategory[cat.Code]
		result.Output[ToggleKey(cat.Code)] = res.HasIssue
		for _, option := range cat.Options {
			result.Output[OptionKey(cat.Code, option)] = res.Matched(option)
		}
		for _, option := range res.MatchedOptions {
			if !cat.HasOption(option) {
				result.warn(m.logger, Warning{Category: cat.Code, Option: option, Reason: ReasonUnknownOption})
			}
		}

		meta := Metadata{}
		if res.Metadata != nil {
			meta = *res.Metadata
		}
		severity, ok := NormalizeSeverity(meta.Severity)
		if !ok {
			result.warn(m.logger, Warning{Category: cat.Code, Value: meta.Severity, Reason: ReasonInvalidSeverity})
		}
		result.Output[MetadataKey(cat.Code, FieldDetails)] = meta.Details
		result.Output[MetadataKey(cat.Code, FieldFirstNoticed)] = meta.FirstNoticed
		result.Output[MetadataKey(cat.Code, FieldSeverity)] = severity
		result.Output[MetadataKey(cat.Code, FieldRepairHistory)] = meta.RepairHistory
	}
	return result
}

func (r *Result) warn(logger *zap.Logger, w Warning) {
	for _, existing := range r.Warnings {
		if existing == w {
			return
		}
	}
	r.Warnings = append(r.Warnings, w)
	logger.Warn("docgen mapping dropped input",
		zap.String("category", w.Category),
		zap.String("option", w.Option),
		zap.String("value", w.Value),
		zap.String("reason", w.Reason),
	)
}

func sortedOptionCategories(taxonomy map[string][]Option) []string {
	codes := make([]string, 0, len(taxonomy))
	for code := range taxonomy {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
