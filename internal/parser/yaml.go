package parser

import (
	"gopkg.in/yaml.v3"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// YAMLDecoder decodes YAML spec documents.
type YAMLDecoder struct{}

// NewYAMLDecoder creates a new YAMLDecoder.
func NewYAMLDecoder() *YAMLDecoder {
	return &YAMLDecoder{}
}

// SupportedExtensions returns the file extensions this decoder handles.
func (d *YAMLDecoder) SupportedExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Decode parses content as YAML. An empty document has no tests.
func (d *YAMLDecoder) Decode(filePath string, content []byte) (*domain.RawDocument, error) {
	table, err := decodeYAML(content)
	if err != nil {
		return nil, domain.NewSpecParseError(filePath, 0, err)
	}

	doc := &domain.RawDocument{FilePath: filePath, Format: "yaml"}
	if err := appendRecords(doc, table); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeYAML(content []byte) (map[string]any, error) {
	var table map[string]any
	if err := yaml.Unmarshal(content, &table); err != nil {
		return nil, err
	}
	return table, nil
}
