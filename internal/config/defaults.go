package config

// Default values applied before any config file or environment override.
const (
	DefaultBranch            = "main"
	DefaultReadme            = "README.md"
	DefaultGraphHeading      = "Release Graph"
	DefaultSubjectLimit      = 30
	DefaultMaxReleases       = 10
	DefaultChangelogPath     = "CHANGELOG.md"
	DefaultMaxHistoryEntries = 500
)

// Default returns a Configuration populated with the built-in defaults.
// Load starts from this value, so any key absent from every source keeps
// its default.
func Default() *Configuration {
	return &Configuration{
		DefaultBranch: DefaultBranch,
		Graph: GraphConfig{
			Readme:       DefaultReadme,
			Heading:      DefaultGraphHeading,
			SubjectLimit: DefaultSubjectLimit,
			MaxReleases:  DefaultMaxReleases,
		},
		Changelog: ChangelogConfig{
			Path: DefaultChangelogPath,
		},
		MaxHistoryEntries: DefaultMaxHistoryEntries,
	}
}
