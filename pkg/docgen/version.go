package docgen

import (
	"fmt"
	"strings"
)

// SchemaVersion selects which historical field names the resolver probes.
// Values are bit flags so an alias can belong to several versions.
type SchemaVersion uint8

const (
	// SchemaV1 is the original intake form: category specific field names
	// and per-item boolean checkboxes.
	SchemaV1 SchemaVersion = 1 << iota
	// SchemaV2 is the current form with generic field names per category.
	SchemaV2
	// SchemaCompat probes every known alias, newest first.
	SchemaCompat = SchemaV1 | SchemaV2
)

// ParseSchemaVersion accepts "v1", "v2" or "compat" (case-insensitive).
func ParseSchemaVersion(raw string) (SchemaVersion, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "v1", "1":
		return SchemaV1, nil
	case "v2", "2":
		return SchemaV2, nil
	case "compat", "":
		return SchemaCompat, nil
	default:
		return 0, fmt.Errorf("unknown intake schema version %q", raw)
	}
}

// Includes reports whether an alias tagged with tag is probed under v.
func (v SchemaVersion) Includes(tag SchemaVersion) bool {
	return v&tag != 0
}

func (v SchemaVersion) String() string {
	switch v {
	case SchemaV1:
		return "v1"
	case SchemaV2:
		return "v2"
	case SchemaCompat:
		return "compat"
	default:
		return fmt.Sprintf("SchemaVersion(%d)", uint8(v))
	}
}
