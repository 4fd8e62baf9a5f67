package domain

// RawDocument holds the decoded, not yet validated content of one spec file.
type RawDocument struct {
	FilePath string
	Format   string // "toml", "yaml", "markdown"
	Records  []any  // Entries of the top-level "test" sequence, not yet checked to be tables
	HasTests bool   // Whether a "test" key was present at all
}

// SpecDocument is the ordered list of test cases loaded from one spec file.
type SpecDocument struct {
	FilePath string
	Format   string
	Cases    []TestCase
}

// TestCase is one declarative scenario: a template source plus the fragments
// expected from it, or the expectation that processing fails.
type TestCase struct {
	Name       string
	Source     string
	Fragments  []Fragment
	Error      bool
	SourceFile string
	Index      int
}

// Fragment is a named region of a template. Expected is nil when the spec
// did not give an expected value.
type Fragment struct {
	Name     string
	Expected *string
}

// AssertionKind selects which engine entry point is called and what outcome
// is asserted.
type AssertionKind int

const (
	// FragmentEquals asserts single-fragment extraction succeeds with the expected text.
	FragmentEquals AssertionKind = iota
	// SplitEquals asserts the full split succeeds with the complete expected mapping.
	SplitEquals
	// FragmentFails asserts single-fragment extraction fails.
	FragmentFails
	// SplitFails asserts the full split fails.
	SplitFails
)

func (k AssertionKind) String() string {
	switch k {
	case FragmentEquals:
		return "FragmentEquals"
	case SplitEquals:
		return "SplitEquals"
	case FragmentFails:
		return "FragmentFails"
	case SplitFails:
		return "SplitFails"
	}
	return "Unknown"
}

// Assertion is a single generated check. Fragment is empty for split assertions.
type Assertion struct {
	Kind     AssertionKind
	Fragment string
}

// IsAggregate reports whether the assertion targets the full-split entry point.
func (a Assertion) IsAggregate() bool {
	return a.Kind == SplitEquals || a.Kind == SplitFails
}

// ExpectsFailure reports whether the assertion expects the engine to fail.
func (a Assertion) ExpectsFailure() bool {
	return a.Kind == FragmentFails || a.Kind == SplitFails
}

// ExpectedEntry is one fragment of the expected-value map. Value holds the
// quoted Go literal tokens of the normalized text.
type ExpectedEntry struct {
	Name  string
	Value []string
}

// TestUnit is everything the emitter needs to write one test function.
type TestUnit struct {
	FuncName   string
	CaseName   string
	SourceFile string
	Index      int
	Source     []string        // quoted Go literal tokens, one per line
	Expected   []ExpectedEntry // nil for error cases
	Assertions []Assertion
}
