// Package assertion decides which checks a generated test function makes.
package assertion

import (
	"github.com/frherrer/fragmentgen/internal/converter"
	"github.com/frherrer/fragmentgen/internal/domain"
	"github.com/frherrer/fragmentgen/internal/literal"
)

// Build derives the test unit for one validated test case.
//
// A regular case gets one FragmentEquals per fragment, in declaration order,
// and a final SplitEquals against the full expected map. An error case gets
// FragmentFails per fragment and a final SplitFails, and no expected map.
func Build(tc domain.TestCase) domain.TestUnit {
	unit := domain.TestUnit{
		FuncName:   converter.FuncName(tc.Name),
		CaseName:   tc.Name,
		SourceFile: tc.SourceFile,
		Index:      tc.Index,
		Source:     literal.Tokens(tc.Source),
		Assertions: make([]domain.Assertion, 0, len(tc.Fragments)+1),
	}

	if tc.Error {
		for _, f := range tc.Fragments {
			unit.Assertions = append(unit.Assertions, domain.Assertion{Kind: domain.FragmentFails, Fragment: f.Name})
		}
		unit.Assertions = append(unit.Assertions, domain.Assertion{Kind: domain.SplitFails})
		return unit
	}

	unit.Expected = make([]domain.ExpectedEntry, 0, len(tc.Fragments))
	for _, f := range tc.Fragments {
		var expected string
		if f.Expected != nil {
			expected = *f.Expected
		}
		unit.Expected = append(unit.Expected, domain.ExpectedEntry{
			Name:  f.Name,
			Value: literal.Tokens(expected),
		})
		unit.Assertions = append(unit.Assertions, domain.Assertion{Kind: domain.FragmentEquals, Fragment: f.Name})
	}
	unit.Assertions = append(unit.Assertions, domain.Assertion{Kind: domain.SplitEquals})
	return unit
}

// BuildAll derives the units for every case of every document, in order.
func BuildAll(docs []domain.SpecDocument) []domain.TestUnit {
	var units []domain.TestUnit
	for _, doc := range docs {
		for _, tc := range doc.Cases {
			units = append(units, Build(tc))
		}
	}
	return units
}
