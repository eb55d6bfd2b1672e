package manifest

import (
	"github.com/sdkgen-dev/smithybuild/domain/entities"
)

// PluginConfig holds the per-run constants written into every projection.
type PluginConfig struct {
	Generator     string
	ModulePrefix  string
	ModuleVersion string
}

// PluginConfigFrom extracts the plugin settings of cfg.
func PluginConfigFrom(cfg entities.GeneratorConfig) PluginConfig {
	return PluginConfig{
		Generator:     cfg.Generator,
		ModulePrefix:  cfg.ModulePrefix,
		ModuleVersion: cfg.ModuleVersion,
	}
}

// NewProjectionEntry builds the projection of the model file at path, which
// declares the service serviceID.
func NewProjectionEntry(path, serviceID string, key entities.ProjectionKey, p PluginConfig) entities.ProjectionEntry {
	return entities.ProjectionEntry{
		Imports: []string{path},
		Plugins: map[string]entities.PluginSettings{
			p.Generator: {
				Service:       serviceID,
				Module:        p.ModulePrefix + key.SdkID,
				ModuleVersion: p.ModuleVersion,
			},
		},
	}
}
