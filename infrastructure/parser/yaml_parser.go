package parser

import (
	"bytes"
	stdErrors "errors"
	"io"

	"github.com/sdkgen-dev/smithybuild/domain/entities"
	"gopkg.in/yaml.v3"
)

// YamlConfigParser implements ports.ConfigParser for YAML.
type YamlConfigParser struct{}

// NewYamlConfigParser creates a new YamlConfigParser.
func NewYamlConfigParser() *YamlConfigParser {
	return &YamlConfigParser{}
}

// Parse unmarshals YAML bytes over cfg. Unknown keys are rejected and an
// empty document leaves cfg unchanged.
func (p *YamlConfigParser) Parse(data []byte, cfg *entities.GeneratorConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stdErrors.Is(err, io.EOF) {
		return err
	}
	return nil
}
