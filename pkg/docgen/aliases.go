package docgen

// Alias is one recognised field name and the schema versions that used it.
type Alias struct {
	Name     string
	Versions SchemaVersion
}

// ItemFlag is a legacy per-item checkbox that stands for one option.
type ItemFlag struct {
	Alias
	Option string
}

// FieldAliases lists, per field kind, the names a category's data may be
// stored under. Order matters: the first alias holding a usable value wins.
type FieldAliases struct {
	MasterFlags   []Alias
	ItemFlags     []ItemFlag
	Options       []Alias
	Details       []Alias
	FirstNoticed  []Alias
	Severity      []Alias
	RepairHistory []Alias
	Photos        []Alias
}

// AliasTable maps category codes to their field aliases.
type AliasTable map[string]FieldAliases

// For returns the aliases of category. Categories without an entry (added to
// the taxonomy after the legacy form was retired) use the generic names.
func (t AliasTable) For(category string) FieldAliases {
	if aliases, ok := t[category]; ok {
		return aliases
	}
	return legacy{}.build()
}

// legacy holds the v1 field names of one category; build prepends the
// generic v2 names so the current form always wins under SchemaCompat.
type legacy struct {
	flags         []string
	items         map[string]string
	options       []string
	details       []string
	firstNoticed  []string
	severity      []string
	repairHistory []string
	photos        []string
}

func (l legacy) build() FieldAliases {
	items := make([]ItemFlag, 0, len(l.items))
	for _, name := range sortedKeys(l.items) {
		items = append(items, ItemFlag{Alias: Alias{Name: name, Versions: SchemaV1}, Option: l.items[name]})
	}
	return FieldAliases{
		MasterFlags:   withGeneric("hasIssue", l.flags),
		ItemFlags:     items,
		Options:       withGeneric("selectedOptions", l.options),
		Details:       withGeneric("details", l.details),
		FirstNoticed:  withGeneric("firstNoticed", l.firstNoticed),
		Severity:      withGeneric("severity", l.severity),
		RepairHistory: withGeneric("repairHistory", l.repairHistory),
		Photos:        withGeneric("photos", l.photos),
	}
}

func withGeneric(generic string, v1 []string) []Alias {
	out := make([]Alias, 0, len(v1)+1)
	out = append(out, Alias{Name: generic, Versions: SchemaV2})
	for _, name := range v1 {
		out = append(out, Alias{Name: name, Versions: SchemaV1})
	}
	return out
}

// DefaultAliases returns the alias table for every protected category.
func DefaultAliases() AliasTable {
	return AliasTable{
		"vermin": legacy{
			flags:   []string{"hasVermin", "verminIssue"},
			items:   map[string]string{"hasRats": "RatsMice", "hasMice": "RatsMice", "hasPigeons": "Pigeons", "hasBats": "Bats"},
			options: []string{"verminTypes", "vermin"},
			details: []string{"verminDetails", "verminDescription"},

			firstNoticed:  []string{"verminFirstNoticed"},
			severity:      []string{"verminSeverity"},
			repairHistory: []string{"verminRepairHistory"},
			photos:        []string{"verminPhotos"},
		}.build(),
		"insects": legacy{
			flags:   []string{"hasInsects", "insectIssue"},
			items:   map[string]string{"hasRoaches": "Roaches", "hasBedbugs": "Bedbugs", "hasAnts": "Ants"},
			options: []string{"insectTypes", "insects"},
			details: []string{"insectDetails", "insectsDetails"},

			firstNoticed:  []string{"insectFirstNoticed"},
			severity:      []string{"insectSeverity"},
			repairHistory: []string{"insectRepairHistory"},
			photos:        []string{"insectPhotos"},
		}.build(),
		"plumbing": legacy{
			flags:   []string{"hasPlumbing", "plumbingIssue"},
			items:   map[string]string{"noHotWater": "NoHotWater", "hasLeaks": "Leaks", "sewageBackup": "SewageBackup"},
			options: []string{"plumbingIssues", "plumbing"},
			details: []string{"plumbingDetails"},

			firstNoticed:  []string{"plumbingFirstNoticed"},
			severity:      []string{"plumbingSeverity"},
			repairHistory: []string{"plumbingRepairHistory"},
			photos:        []string{"plumbingPhotos"},
		}.build(),
		"hvac": legacy{
			flags:   []string{"hasHvac", "hasHeatingIssue"},
			items:   map[string]string{"noHeat": "Heater", "noAirConditioning": "AirConditioner"},
			options: []string{"hvacIssues", "heatingIssues"},
			details: []string{"hvacDetails", "heatingDetails"},

			firstNoticed:  []string{"hvacFirstNoticed"},
			severity:      []string{"hvacSeverity"},
			repairHistory: []string{"hvacRepairHistory"},
			photos:        []string{"hvacPhotos"},
		}.build(),
		"electrical": legacy{
			flags:   []string{"hasElectrical", "electricalIssue"},
			items:   map[string]string{"brokenOutlets": "Outlets"},
			options: []string{"electricalIssues", "electrical"},
			details: []string{"electricalDetails"},

			firstNoticed:  []string{"electricalFirstNoticed"},
			severity:      []string{"electricalSeverity"},
			repairHistory: []string{"electricalRepairHistory"},
			photos:        []string{"electricalPhotos"},
		}.build(),
		"fireHazard": legacy{
			flags:   []string{"hasFireHazard", "fireHazardIssue"},
			items:   map[string]string{"noSmokeAlarms": "SmokeAlarms", "noCarbonMonoxideDetector": "CarbonMonoxideDetectors"},
			options: []string{"fireHazardIssues", "fireHazards"},
			details: []string{"fireHazardDetails"},

			firstNoticed:  []string{"fireHazardFirstNoticed"},
			severity:      []string{"fireHazardSeverity"},
			repairHistory: []string{"fireHazardRepairHistory"},
			photos:        []string{"fireHazardPhotos"},
		}.build(),
		"government": legacy{
			flags:   []string{"hasGovernmentContact", "contactedGovernment"},
			options: []string{"governmentEntities", "governmentAgencies"},
			details: []string{"governmentEntitiesDetails", "governmentDetails"},

			firstNoticed:  []string{"governmentFirstContacted"},
			severity:      []string{"governmentSeverity"},
			repairHistory: []string{"governmentOutcome"},
			photos:        []string{"governmentDocuments"},
		}.build(),
		"appliances": legacy{
			flags:   []string{"hasAppliances", "applianceIssue"},
			items:   map[string]string{"brokenStove": "Stove", "brokenRefrigerator": "Refrigerator"},
			options: []string{"applianceIssues", "appliances"},
			details: []string{"applianceDetails", "appliancesDetails"},

			firstNoticed:  []string{"applianceFirstNoticed"},
			severity:      []string{"applianceSeverity"},
			repairHistory: []string{"applianceRepairHistory"},
			photos:        []string{"appliancePhotos"},
		}.build(),
		"structure": legacy{
			flags:   []string{"hasStructural", "structuralIssue"},
			options: []string{"structuralIssues", "structure"},
			details: []string{"structuralDetails", "structureDetails"},

			firstNoticed:  []string{"structuralFirstNoticed"},
			severity:      []string{"structuralSeverity"},
			repairHistory: []string{"structuralRepairHistory"},
			photos:        []string{"structuralPhotos"},
		}.build(),
		"mold": legacy{
			flags:   []string{"hasMold", "moldIssue"},
			details: []string{"moldDetails", "moldDescription"},

			firstNoticed:  []string{"moldFirstNoticed"},
			severity:      []string{"moldSeverity"},
			repairHistory: []string{"moldRepairHistory"},
			photos:        []string{"moldPhotos"},
		}.build(),
		"nuisance": legacy{
			flags:   []string{"hasNuisance", "nuisanceIssue"},
			options: []string{"nuisanceIssues", "nuisance"},
			details: []string{"nuisanceDetails"},

			firstNoticed:  []string{"nuisanceFirstNoticed"},
			severity:      []string{"nuisanceSeverity"},
			repairHistory: []string{"nuisanceReportHistory"},
			photos:        []string{"nuisancePhotos"},
		}.build(),
		"trash": legacy{
			flags:   []string{"hasTrash", "trashIssue"},
			options: []string{"trashIssues", "trash"},
			details: []string{"trashDetails"},

			firstNoticed:  []string{"trashFirstNoticed"},
			severity:      []string{"trashSeverity"},
			repairHistory: []string{"trashRepairHistory"},
			photos:        []string{"trashPhotos"},
		}.build(),
	}
}
