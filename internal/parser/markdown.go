package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// MarkdownDecoder reads spec blocks embedded in Markdown documents.
//
// A spec block is a fenced code block whose info string starts with one of
// the configured tags, for example:
//
//	```fragment-spec format=yaml
//	test:
//	  - name: basic
//	    ...
//	```
//
// The format attribute selects TOML (the default) or YAML. The test
// sequences of all spec blocks are concatenated in document order.
type MarkdownDecoder struct {
	tags map[string]bool
}

// NewMarkdownDecoder creates a new MarkdownDecoder.
func NewMarkdownDecoder(tags []string) *MarkdownDecoder {
	tagSet := make(map[string]bool)
	for _, t := range tags {
		tagSet[t] = true
	}
	return &MarkdownDecoder{tags: tagSet}
}

// SupportedExtensions returns the file extensions this decoder handles.
func (d *MarkdownDecoder) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Decode parses a Markdown document and decodes each tagged spec block.
func (d *MarkdownDecoder) Decode(filePath string, content []byte) (*domain.RawDocument, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(content))

	doc := &domain.RawDocument{FilePath: filePath, Format: "markdown"}

	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		node, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var info string
		if node.Info != nil {
			info = string(node.Info.Segment.Value(content))
		}
		parts := parseInfoString(info)
		if !d.tags[parts["_tag"]] {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(content))
		}
		startLine := lineNumber(content, node.Info.Segment.Stop) + 1

		if err := d.decodeBlock(doc, buf.Bytes(), parts["format"], startLine); err != nil {
			return ast.WalkStop, err
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// decodeBlock decodes one spec block. startLine is the document line of the
// block's first content line.
func (d *MarkdownDecoder) decodeBlock(doc *domain.RawDocument, block []byte, format string, startLine int) error {
	var (
		table map[string]any
		err   error
		line  int
	)
	switch strings.ToLower(format) {
	case "", "toml":
		table, err = decodeTOML(block)
		if err != nil {
			if l := tomlErrorLine(err); l > 0 {
				line = startLine + l - 1
			}
		}
	case "yaml", "yml":
		table, err = decodeYAML(block)
	default:
		return domain.NewSpecParseError(doc.FilePath, startLine,
			fmt.Errorf("unsupported spec block format %q", format))
	}
	if err != nil {
		if line == 0 {
			line = startLine
		}
		return domain.NewSpecParseError(doc.FilePath, line, err)
	}
	return appendRecords(doc, table)
}

// parseInfoString parses a fenced code block info string like:
//
//	"fragment-spec format=\"yaml\""
//
// Returns map with _tag for the language tag and other key-value pairs.
func parseInfoString(info string) map[string]string {
	result := make(map[string]string)
	info = strings.TrimSpace(info)
	if info == "" {
		return result
	}

	parts := strings.Fields(info)
	result["_tag"] = parts[0]

	for _, part := range parts[1:] {
		if key, val, ok := strings.Cut(part, "="); ok && key != "" {
			result[key] = strings.Trim(val, "\"'")
		}
	}

	return result
}

// lineNumber calculates the 1-based line number for a byte offset.
func lineNumber(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}
