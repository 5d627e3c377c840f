package loam

// ScenarioMetadata is the frontmatter of a scenario document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type ScenarioMetadata struct {
	ID          string   `json:"id" mapstructure:"id"`
	Description string   `json:"description" mapstructure:"description"`
	Tags        []string `json:"tags" mapstructure:"tags"`

	// Parameters holds overrides applied on top of the loader's base
	// parameter set. Keys follow the parameter file format.
	Parameters map[string]any `json:"parameters" mapstructure:"parameters"`
}
