package config

// DefaultFilename is the workspace configuration file looked up in the workspace root.
const DefaultFilename = "wsdeps.yaml"

// SupportedVersion is the only configuration schema version understood by this loader.
const SupportedVersion = "1"

// File represents the structure of the wsdeps.yaml configuration file.
type File struct {
	Version           string   `yaml:"version"`
	SkipKeys          []string `yaml:"skip_keys"`
	Cleanup           []string `yaml:"cleanup"`
	Graph             string   `yaml:"graph"`
	IncludeEOLDistros bool     `yaml:"include_eol_distros"`
	Marker            string   `yaml:"marker"`
	LockFile          *string  `yaml:"lock_file"`
}
