package parser_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/fragmentgen/internal/converter"
	"github.com/frherrer/fragmentgen/internal/domain"
	"github.com/frherrer/fragmentgen/internal/parser"
)

func readSpec(elem ...string) (string, []byte) {
	path := filepath.Join(append([]string{"..", "..", "testdata"}, elem...)...)
	content, err := os.ReadFile(path)
	Expect(err).ToNot(HaveOccurred())
	return path, content
}

func recordName(rec any) any {
	m, ok := rec.(map[string]any)
	Expect(ok).To(BeTrue(), "record is %T", rec)
	return m["name"]
}

// markdownAsYAML reads .md files as plain YAML documents.
type markdownAsYAML struct{ *parser.YAMLDecoder }

func (markdownAsYAML) SupportedExtensions() []string { return []string{".md"} }

var _ = Describe("Registry", func() {
	var registry *parser.DefaultRegistry

	BeforeEach(func() {
		registry = parser.NewDefaultRegistry([]string{"fragment-spec"})
	})

	It("should resolve decoders by extension with or without the dot", func() {
		d, err := registry.DecoderFor(".toml")
		Expect(err).ToNot(HaveOccurred())
		Expect(d).To(BeAssignableToTypeOf(&parser.TOMLDecoder{}))

		d, err = registry.DecoderFor("yml")
		Expect(err).ToNot(HaveOccurred())
		Expect(d).To(BeAssignableToTypeOf(&parser.YAMLDecoder{}))

		d, err = registry.DecoderFor(".MD")
		Expect(err).ToNot(HaveOccurred())
		Expect(d).To(BeAssignableToTypeOf(&parser.MarkdownDecoder{}))
	})

	It("should fail for unknown extensions", func() {
		_, err := registry.DecoderFor(".json")
		Expect(err).To(HaveOccurred())
	})

	It("should let a later registration replace a decoder", func() {
		registry.Register(markdownAsYAML{parser.NewYAMLDecoder()})
		d, err := registry.DecoderFor(".md")
		Expect(err).ToNot(HaveOccurred())
		Expect(d).To(BeAssignableToTypeOf(markdownAsYAML{}))

		d, err = registry.DecoderFor(".yaml")
		Expect(err).ToNot(HaveOccurred())
		Expect(d).To(BeAssignableToTypeOf(&parser.YAMLDecoder{}))
	})
})

var _ = Describe("TOMLDecoder", func() {
	d := parser.NewTOMLDecoder()

	It("should decode inline fragment arrays", func() {
		path, content := readSpec("specs", "errors.toml")
		doc, err := d.Decode(path, content)
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Format).To(Equal("toml"))
		Expect(doc.HasTests).To(BeTrue())
		Expect(doc.Records).To(HaveLen(6))
		Expect(recordName(doc.Records[0])).To(Equal("reentrant fragment"))
		Expect(recordName(doc.Records[5])).To(Equal("trailing content"))
	})

	It("should decode arrays of fragment tables in order", func() {
		path, content := readSpec("specs", "examples.toml")
		doc, err := d.Decode(path, content)
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Records).To(HaveLen(3))

		first := doc.Records[0].(map[string]any)
		fragments, ok := parser.AsSequence(first["fragment"])
		Expect(ok).To(BeTrue())
		Expect(fragments).To(HaveLen(4))
		Expect(recordName(fragments[3])).To(Equal("content-item"))
	})

	It("should report syntax errors as SpecParseError with a line", func() {
		path, content := readSpec("malformed", "broken.toml")
		_, err := d.Decode(path, content)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, domain.ErrSpecParse)).To(BeTrue())

		var genErr *domain.GenError
		Expect(errors.As(err, &genErr)).To(BeTrue())
		Expect(genErr.File).To(Equal(path))
		Expect(genErr.Line).To(BeNumerically(">", 0))
	})

	It("should return an empty document without a test key", func() {
		doc, err := d.Decode("empty.toml", []byte("title = \"nothing here\"\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.HasTests).To(BeFalse())
		Expect(doc.Records).To(BeEmpty())
	})

	It("should reject a test key that is not a sequence", func() {
		_, err := d.Decode("scalar.toml", []byte("test = \"oops\"\n"))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, domain.ErrMalformedSpec)).To(BeTrue())
	})
})

var _ = Describe("YAMLDecoder", func() {
	d := parser.NewYAMLDecoder()

	It("should decode a test sequence", func() {
		path, content := readSpec("specs", "blocks.yaml")
		doc, err := d.Decode(path, content)
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Format).To(Equal("yaml"))
		Expect(doc.Records).To(HaveLen(2))
		Expect(recordName(doc.Records[1])).To(Equal("nested block fragments"))
	})

	It("should keep entries that are not tables for the converter to reject", func() {
		doc, err := d.Decode("scalars.yaml", []byte("test:\n  - 42\n  - name: fine\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Records).To(HaveLen(2))
		Expect(doc.Records[0]).To(Equal(42))

		_, err = converter.NewConverter().Convert(doc)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, domain.ErrMalformedSpec)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("test #0"))
	})

	It("should treat an empty document as having no tests", func() {
		doc, err := d.Decode("empty.yaml", nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.HasTests).To(BeFalse())
	})

	It("should report syntax errors as SpecParseError", func() {
		_, err := d.Decode("bad.yaml", []byte("test: [unclosed\n"))
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, domain.ErrSpecParse)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("bad.yaml"))
	})
})

var _ = Describe("MarkdownDecoder", func() {
	d := parser.NewMarkdownDecoder([]string{"fragment-spec"})

	It("should decode tagged blocks of both formats in document order", func() {
		path, content := readSpec("specs", "basics.md")
		doc, err := d.Decode(path, content)
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.Format).To(Equal("markdown"))
		Expect(doc.HasTests).To(BeTrue())
		Expect(doc.Records).To(HaveLen(2))
		Expect(recordName(doc.Records[0])).To(Equal("basic"))
		Expect(recordName(doc.Records[1])).To(Equal("bad template"))
	})

	It("should ignore blocks without a configured tag", func() {
		doc, err := d.Decode("plain.md", []byte("# Title\n\n```toml\n[[test]]\nname = \"x\"\n```\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(doc.HasTests).To(BeFalse())
		Expect(doc.Records).To(BeEmpty())
	})

	It("should report the document line of a broken block", func() {
		content := []byte("# Title\n\n```fragment-spec\n[[test]]\nname = \"broken\n```\n")
		_, err := d.Decode("broken.md", content)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, domain.ErrSpecParse)).To(BeTrue())

		var genErr *domain.GenError
		Expect(errors.As(err, &genErr)).To(BeTrue())
		Expect(genErr.Line).To(BeNumerically(">=", 4))
	})

	It("should reject unknown block formats", func() {
		content := []byte("```fragment-spec format=json\n{}\n```\n")
		_, err := d.Decode("json.md", content)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unsupported spec block format"))
	})
})
