package docgen

import "sort"

// FieldBag is the schemaless field map stored for one category of an intake.
type FieldBag map[string]interface{}

// Intake is a whole intake payload keyed by category code.
type Intake map[string]FieldBag

// Option is the read view of a taxonomy option used for fuzzy matching.
type Option struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// Signals records which independent checks fired for a category.
type Signals struct {
	Flag    bool   `json:"flag"`
	Array   bool   `json:"array"`
	Details bool   `json:"details"`
	FlagBy  string `json:"flagBy,omitempty"`
}

// Metadata is the free-text portion of a category, read through its aliases.
type Metadata struct {
	Details       string   `json:"details"`
	FirstNoticed  string   `json:"firstNoticed"`
	Severity      string   `json:"severity"`
	RepairHistory string   `json:"repairHistory"`
	Photos        []string `json:"photos"`
}

// Resolution is the resolver output for one category.
type Resolution struct {
	Category       string    `json:"category"`
	HasIssue       bool      `json:"hasIssue"`
	MatchedOptions []string  `json:"matchedOptions"`
	Unmatched      []string  `json:"unmatched,omitempty"`
	Signals        Signals   `json:"signals"`
	Metadata       *Metadata `json:"metadata,omitempty"`
}

// Matched reports whether option was matched.
func (r Resolution) Matched(option string) bool {
	for _, code := range r.MatchedOptions {
		if code == option {
			return true
		}
	}
	return false
}

// Resolver detects issue signals in intake field bags.
type Resolver struct {
	aliases AliasTable
}

// NewResolver constructs a resolver over the given alias table; nil selects DefaultAliases.
func NewResolver(aliases AliasTable) *Resolver {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Resolver{aliases: aliases}
}

// Resolve evaluates one category. A nil bag means the category is absent
// from the intake: no issue and no metadata.
func (r *Resolver) Resolve(version SchemaVersion, category string, bag FieldBag, options []Option) Resolution {
	res := Resolution{Category: category, MatchedOptions: []string{}}
	if bag == nil {
		return res
	}
	aliases := r.aliases.For(category)
	matched := make(map[string]struct{})

	for _, alias := range aliases.MasterFlags {
		if version.Includes(alias.Versions) && truthy(bag[alias.Name]) {
			res.Signals.Flag = true
			res.Signals.FlagBy = alias.Name
			break
		}
	}
	for _, item := range aliases.ItemFlags {
		if version.Includes(item.Versions) && truthy(bag[item.Name]) {
			if !res.Signals.Flag {
				res.Signals.Flag = true
				res.Signals.FlagBy = item.Name
			}
			matched[item.Option] = struct{}{}
		}
	}

	entries := firstList(bag, aliases.Options, version)
	if len(entries) > 0 {
		normalized := make([]string, len(options))
		for i, option := range options {
			normalized[i] = NormalizeName(option.Name)
		}
		for _, entry := range entries {
			key := NormalizeName(entry)
			hit := false
			for i, option := range options {
				if namesMatch(key, normalized[i]) {
					matched[option.Code] = struct{}{}
					hit = true
				}
			}
			if hit {
				res.Signals.Array = true
			} else {
				res.Unmatched = append(res.Unmatched, entry)
			}
		}
	}

	meta := &Metadata{
		Details:       firstText(bag, aliases.Details, version),
		FirstNoticed:  firstText(bag, aliases.FirstNoticed, version),
		Severity:      firstText(bag, aliases.Severity, version),
		RepairHistory: firstText(bag, aliases.RepairHistory, version),
		Photos:        firstList(bag, aliases.Photos, version),
	}
	if meta.Photos == nil {
		meta.Photos = []string{}
	}
	res.Signals.Details = meta.Details != ""
	res.Metadata = meta

	res.HasIssue = res.Signals.Flag || res.Signals.Array || res.Signals.Details
	for code := range matched {
		res.MatchedOptions = append(res.MatchedOptions, code)
	}
	sort.Strings(res.MatchedOptions)
	return res
}

// ResolveAll resolves every category of the taxonomy against intake and
// returns the resolutions ordered by category code.
func (r *Resolver) ResolveAll(version SchemaVersion, intake Intake, taxonomy map[string][]Option) []Resolution {
	codes := make([]string, 0, len(taxonomy))
	for code := range taxonomy {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	out := make([]Resolution, 0, len(codes))
	for _, code := range codes {
		out = append(out, r.Resolve(version, code, intake[code], taxonomy[code]))
	}
	return out
}

func firstText(bag FieldBag, aliases []Alias, version SchemaVersion) string {
	for _, alias := range aliases {
		if !version.Includes(alias.Versions) {
			continue
		}
		if value := text(bag[alias.Name]); value != "" {
			return value
		}
	}
	return ""
}

func firstList(bag FieldBag, aliases []Alias, version SchemaVersion) []string {
	for _, alias := range aliases {
		if !version.Includes(alias.Versions) {
			continue
		}
		if values := list(bag[alias.Name]); len(values) > 0 {
			return append([]string(nil), values...)
		}
	}
	return nil
}
