package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// Decoder turns the bytes of one spec document into its raw test records.
type Decoder interface {
	Decode(filePath string, content []byte) (*domain.RawDocument, error)
	SupportedExtensions() []string
}

// DecoderRegistry maps file extensions to decoders.
type DecoderRegistry interface {
	Register(decoder Decoder)
	DecoderFor(extension string) (Decoder, error)
}

// DefaultRegistry is a thread-safe decoder registry.
type DefaultRegistry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

// NewRegistry creates a new DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		decoders: make(map[string]Decoder),
	}
}

// NewDefaultRegistry returns a registry with the TOML, YAML and Markdown
// decoders registered. markdownTags selects the fenced blocks read from
// Markdown documents.
func NewDefaultRegistry(markdownTags []string) *DefaultRegistry {
	r := NewRegistry()
	r.Register(NewTOMLDecoder())
	r.Register(NewYAMLDecoder())
	r.Register(NewMarkdownDecoder(markdownTags))
	return r
}

// Register adds a decoder to the registry for each of its supported extensions.
func (r *DefaultRegistry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range d.SupportedExtensions() {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		r.decoders[ext] = d
	}
}

// DecoderFor returns the decoder registered for the given file extension.
func (r *DefaultRegistry) DecoderFor(extension string) (Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(strings.TrimPrefix(extension, "."))
	if d, ok := r.decoders[ext]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("no decoder registered for extension %q", extension)
}
