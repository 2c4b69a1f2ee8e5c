package docgen

// taxonomyFixture mirrors the seeded taxonomy names for the categories used in tests.
func taxonomyFixture() map[string][]Option {
	return map[string][]Option{
		"vermin": {
			{Code: "RatsMice", Name: "Rats/Mice"},
			{Code: "Skunks", Name: "Skunks"},
			{Code: "Bats", Name: "Bats"},
			{Code: "Raccoons", Name: "Raccoons"},
			{Code: "Pigeons", Name: "Pigeons"},
			{Code: "Opossums", Name: "Opossums"},
		},
		"insects": {
			{Code: "Ants", Name: "Ants"},
			{Code: "Roaches", Name: "Roaches"},
			{Code: "Bedbugs", Name: "Bed Bugs"},
			{Code: "Wasps", Name: "Wasps"},
			{Code: "Hornets", Name: "Hornets"},
		},
		"government": {
			{Code: "HealthDepartment", Name: "Health Department"},
			{Code: "HousingAuthority", Name: "Housing Authority"},
			{Code: "CodeEnforcement", Name: "Code Enforcement"},
		},
		"mold": {},
	}
}
