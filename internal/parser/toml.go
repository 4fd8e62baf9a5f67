package parser

import (
	"errors"

	"github.com/BurntSushi/toml"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// TOMLDecoder decodes TOML spec documents ([[test]] arrays of tables).
type TOMLDecoder struct{}

// NewTOMLDecoder creates a new TOMLDecoder.
func NewTOMLDecoder() *TOMLDecoder {
	return &TOMLDecoder{}
}

// SupportedExtensions returns the file extensions this decoder handles.
func (d *TOMLDecoder) SupportedExtensions() []string {
	return []string{".toml"}
}

// Decode parses content as TOML.
func (d *TOMLDecoder) Decode(filePath string, content []byte) (*domain.RawDocument, error) {
	table, err := decodeTOML(content)
	if err != nil {
		return nil, domain.NewSpecParseError(filePath, tomlErrorLine(err), err)
	}

	doc := &domain.RawDocument{FilePath: filePath, Format: "toml"}
	if err := appendRecords(doc, table); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeTOML(content []byte) (map[string]any, error) {
	table := make(map[string]any)
	if _, err := toml.Decode(string(content), &table); err != nil {
		return nil, err
	}
	return table, nil
}

// tomlErrorLine returns the 1-based line reported by the TOML parser, or 0.
func tomlErrorLine(err error) int {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		return perr.Position.Line
	}
	return 0
}
