package docgen

import (
	"fmt"
	"sort"
)

// slot is the party index baked into every protected key. Documents are
// generated for a single plaintiff household, so it is always 1.
const slot = 1

// Metadata field names used in protected keys.
const (
	FieldDetails       = "details"
	FieldFirstNoticed  = "firstNoticed"
	FieldSeverity      = "severity"
	FieldRepairHistory = "repairHistory"
)

var metadataFields = []string{FieldDetails, FieldFirstNoticed, FieldSeverity, FieldRepairHistory}

// CategorySchema lists the option codes of one protected category.
type CategorySchema struct {
	Code    string
	Options []string
}

// Schema is the ordered, append-only set of categories the document
// generator understands. Existing entries must never be renamed or removed.
type Schema []CategorySchema

var protectedSchema = Schema{
	{Code: "vermin", Options: []string{"RatsMice", "Skunks", "Bats", "Raccoons", "Pigeons", "Opossums"}},
	{Code: "insects", Options: []string{"Ants", "Roaches", "Flies", "Bedbugs", "Wasps", "Hornets", "Spiders", "Termites", "Mosquitos", "Bees"}},
	{Code: "plumbing", Options: []string{"Toilet", "Shower", "Bath", "FixturesLeaking", "NoHotWater", "NoColdWater", "LowWaterPressure", "SewageBackup", "CloggedDrains", "Leaks"}},
	{Code: "hvac", Options: []string{"Heater", "AirConditioner", "Ventilation"}},
	{Code: "electrical", Options: []string{"Outlets", "Panel", "WallSwitches", "ExteriorLighting", "InteriorLighting", "LightFixtures", "Fans"}},
	{Code: "fireHazard", Options: []string{"SmokeAlarms", "FireExtinguisher", "NonCompliantElectricity", "CarbonMonoxideDetectors"}},
	{Code: "government", Options: []string{"HealthDepartment", "HousingAuthority", "CodeEnforcement", "FireDepartment", "PoliceDepartment"}},
	{Code: "appliances", Options: []string{"Stove", "Dishwasher", "WasherDryer", "Oven", "Microwave", "GarbageDisposal", "Refrigerator"}},
	{Code: "structure", Options: []string{"HoleInCeiling", "BumpsInCeiling", "WaterStainsOnCeiling", "HoleInWall", "WaterStainsOnWall", "CrackedFloor"}},
	{Code: "mold", Options: nil},
	{Code: "nuisance", Options: []string{"Drugs", "Smoking", "NoisyNeighbors", "Gangs"}},
	{Code: "trash", Options: []string{"InadequateReceptacles", "ImproperServicing"}},
}

// ProtectedSchema returns a copy of the protected document schema.
func ProtectedSchema() Schema {
	out := make(Schema, len(protectedSchema))
	for i, cat := range protectedSchema {
		out[i] = CategorySchema{Code: cat.Code, Options: append([]string(nil), cat.Options...)}
	}
	return out
}

// Category looks up a protected category by code.
func (s Schema) Category(code string) (CategorySchema, bool) {
	for _, cat := range s {
		if cat.Code == code {
			return cat, true
		}
	}
	return CategorySchema{}, false
}

// HasOption reports whether option is part of the category's protected keys.
func (c CategorySchema) HasOption(option string) bool {
	for _, code := range c.Options {
		if code == option {
			return true
		}
	}
	return false
}

// Keys returns every protected key in lexical order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s)*8)
	for _, cat := range s {
		keys = append(keys, ToggleKey(cat.Code))
		for _, option := range cat.Options {
			keys = append(keys, OptionKey(cat.Code, option))
		}
		for _, field := range metadataFields {
			keys = append(keys, MetadataKey(cat.Code, field))
		}
	}
	sort.Strings(keys)
	return keys
}

// ToggleKey is the master checkbox key of a category, e.g. "vermin-toggle-1".
func ToggleKey(category string) string {
	return fmt.Sprintf("%s-toggle-%d", category, slot)
}

// OptionKey is the checkbox key of one option, e.g. "vermin-RatsMice-1".
func OptionKey(category, option string) string {
	return fmt.Sprintf("%s-%s-%d", category, option, slot)
}

// MetadataKey is the pass-through text key of a metadata field, e.g. "vermin-details-1".
func MetadataKey(category, field string) string {
	return fmt.Sprintf("%s-%s-%d", category, field, slot)
}
