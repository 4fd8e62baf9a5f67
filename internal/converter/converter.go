package converter

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/frherrer/fragmentgen/internal/domain"
	"github.com/frherrer/fragmentgen/internal/parser"
)

// Converter validates raw spec records and turns them into test cases.
type Converter interface {
	Convert(doc *domain.RawDocument) (*domain.SpecDocument, error)
}

// DefaultConverter implements Converter.
type DefaultConverter struct{}

// NewConverter creates a new DefaultConverter.
func NewConverter() *DefaultConverter {
	return &DefaultConverter{}
}

// Convert validates every record of doc. Validation is all-or-nothing: the
// first malformed record aborts the whole document.
func (c *DefaultConverter) Convert(doc *domain.RawDocument) (*domain.SpecDocument, error) {
	spec := &domain.SpecDocument{
		FilePath: doc.FilePath,
		Format:   doc.Format,
		Cases:    make([]domain.TestCase, 0, len(doc.Records)),
	}
	for i, rec := range doc.Records {
		tc, err := ConvertRecord(doc.FilePath, i, rec)
		if err != nil {
			return nil, err
		}
		spec.Cases = append(spec.Cases, tc)
	}
	return spec, nil
}

// ConvertRecord validates a single raw record. index is the record's position
// in its document and is only used for reporting.
func ConvertRecord(file string, index int, raw any) (domain.TestCase, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return domain.TestCase{}, domain.NewMalformedSpec(file, index, "",
			fmt.Sprintf("test entry must be a table, got %T", raw))
	}

	malformed := func(name, format string, args ...any) error {
		return domain.NewMalformedSpec(file, index, name, fmt.Sprintf(format, args...))
	}

	name, err := requireString(rec, "name")
	if err != nil {
		return domain.TestCase{}, malformed("", "%v", err)
	}
	if name == "" {
		return domain.TestCase{}, malformed("", `"name" must not be empty`)
	}
	if !token.IsIdentifier(FuncName(name)) {
		return domain.TestCase{}, malformed(name, "name does not form a valid Go identifier (%q)", FuncName(name))
	}

	source, err := requireString(rec, "source")
	if err != nil {
		return domain.TestCase{}, malformed(name, "%v", err)
	}

	isError := false
	if v, ok := rec["error"]; ok {
		b, ok := v.(bool)
		if !ok {
			return domain.TestCase{}, malformed(name, `"error" must be a boolean, got %T`, v)
		}
		isError = b
	}

	rawFragments, ok := rec["fragment"]
	if !ok {
		return domain.TestCase{}, malformed(name, `missing required field "fragment"`)
	}
	seq, ok := parser.AsSequence(rawFragments)
	if !ok {
		return domain.TestCase{}, malformed(name, `"fragment" must be a sequence of tables, got %T`, rawFragments)
	}
	if len(seq) == 0 {
		return domain.TestCase{}, malformed(name, `"fragment" must not be empty`)
	}

	fragments := make([]domain.Fragment, 0, len(seq))
	seen := make(map[string]bool)
	for j, rawFrag := range seq {
		frag, err := convertFragment(rawFrag)
		if err != nil {
			return domain.TestCase{}, malformed(name, "fragment #%d: %v", j, err)
		}
		if !isError {
			if frag.Expected == nil {
				return domain.TestCase{}, malformed(name, "fragment #%d (%q): missing \"expected\" (required unless error = true)", j, frag.Name)
			}
			if seen[frag.Name] {
				return domain.TestCase{}, malformed(name, "fragment #%d: duplicate fragment name %q", j, frag.Name)
			}
			seen[frag.Name] = true
		}
		fragments = append(fragments, frag)
	}

	return domain.TestCase{
		Name:       name,
		Source:     source,
		Fragments:  fragments,
		Error:      isError,
		SourceFile: file,
		Index:      index,
	}, nil
}

func convertFragment(raw any) (domain.Fragment, error) {
	rec, ok := raw.(map[string]any)
	if !ok {
		return domain.Fragment{}, fmt.Errorf("must be a table, got %T", raw)
	}
	name, err := requireString(rec, "name")
	if err != nil {
		return domain.Fragment{}, err
	}
	frag := domain.Fragment{Name: name}
	if v, ok := rec["expected"]; ok {
		s, ok := v.(string)
		if !ok {
			return domain.Fragment{}, fmt.Errorf(`"expected" must be a string, got %T`, v)
		}
		frag.Expected = &s
	}
	return frag, nil
}

func requireString(rec map[string]any, key string) (string, error) {
	v, ok := rec[key]
	if !ok {
		return "", fmt.Errorf("missing required field %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T", key, v)
	}
	return s, nil
}

// FuncName returns the name of the generated test function for a test case.
// Spaces become underscores; no other character is rewritten.
func FuncName(caseName string) string {
	return "Test_" + strings.ReplaceAll(caseName, " ", "_")
}

// CheckCollisions reports the first pair of test cases, across all documents,
// whose generated function names are equal.
func CheckCollisions(docs []domain.SpecDocument) error {
	type origin struct {
		file  string
		index int
		name  string
	}
	seen := make(map[string]origin)
	for _, doc := range docs {
		for _, tc := range doc.Cases {
			fn := FuncName(tc.Name)
			if prev, ok := seen[fn]; ok {
				return domain.NewMalformedSpec(tc.SourceFile, tc.Index, tc.Name,
					fmt.Sprintf("generated function %s collides with test #%d (%q) in %s",
						fn, prev.index, prev.name, prev.file))
			}
			seen[fn] = origin{file: tc.SourceFile, index: tc.Index, name: tc.Name}
		}
	}
	return nil
}
