package entities

// ProjectionKey identifies one projection in the manifest.
type ProjectionKey struct {
	// SdkID is the lowercase, hyphen-free leading segment of the file name.
	SdkID string

	// Version is the lowercase second segment of the file name.
	Version string
}

// String returns the manifest key, "<sdkId>.<version>".
func (k ProjectionKey) String() string {
	return k.SdkID + "." + k.Version
}

// ProjectionEntry describes how one model document is fed to the generator.
type ProjectionEntry struct {
	// Imports lists the absolute paths of the model files of the projection.
	Imports []string `json:"imports" validate:"required,min=1,dive,required"`

	// Plugins maps a generator plugin name to its settings.
	Plugins map[string]PluginSettings `json:"plugins" validate:"required,min=1,dive,keys,required,endkeys"`
}

// PluginSettings are the settings handed to the code generator plugin.
type PluginSettings struct {
	// Service is the shape id of the service, e.g. "com.example#MQ".
	Service string `json:"service" validate:"required"`

	// Module is the Go module path of the generated client.
	Module string `json:"module" validate:"required"`

	// ModuleVersion is the version string of the generated module.
	ModuleVersion string `json:"moduleVersion" validate:"required"`
}
