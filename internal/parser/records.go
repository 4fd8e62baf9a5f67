package parser

import (
	"fmt"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// testsKey is the top-level key holding the sequence of test cases.
const testsKey = "test"

// appendRecords pulls the test sequence out of a decoded top-level table and
// appends it to doc.
func appendRecords(doc *domain.RawDocument, table map[string]any) error {
	raw, ok := table[testsKey]
	if !ok {
		return nil
	}
	doc.HasTests = true

	records, ok := AsSequence(raw)
	if !ok {
		return domain.NewMalformedSpec(doc.FilePath, -1, "",
			fmt.Sprintf("top-level %q must be a sequence of tables, got %T", testsKey, raw))
	}
	doc.Records = append(doc.Records, records...)
	return nil
}

// AsSequence reports whether v is a sequence as produced by any of the
// decoders and returns its elements.
func AsSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}
