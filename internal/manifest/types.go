package manifest

// ModuleManifest is the content of a module.yaml file.
type ModuleManifest struct {
	Name        string   `yaml:"name" json:"name"`
	Version     string   `yaml:"version" json:"version"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string   `yaml:"author,omitempty" json:"author,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	// Host is an optional semver constraint the host version must satisfy
	// for this module to be enabled against it (e.g., ">= 2.0, < 3").
	Host  string `yaml:"host,omitempty" json:"host,omitempty"`
	Entry string `yaml:"entry,omitempty" json:"entry,omitempty"`
}
