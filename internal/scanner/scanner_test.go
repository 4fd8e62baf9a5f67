package scanner_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frherrer/fragmentgen/internal/scanner"
)

var _ = Describe("Scanner", func() {
	var (
		s    *scanner.FileScanner
		root string
	)

	touch := func(rel string) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		Expect(os.MkdirAll(filepath.Dir(p), 0755)).To(Succeed())
		Expect(os.WriteFile(p, []byte("test = []\n"), 0644)).To(Succeed())
	}

	BeforeEach(func() {
		s = scanner.NewScanner(true)
		root = GinkgoT().TempDir()
		touch("basic.toml")
		touch("errors.toml")
		touch("notes.txt")
		touch("nested/blocks.yaml")
		touch("vendor/dep/skip.toml")
	})

	It("should find spec files in testdata", func() {
		files, err := s.Scan(filepath.Join("..", "..", "testdata", "specs"), []string{"*.toml"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).ToNot(BeEmpty())
	})

	It("should return sorted file paths", func() {
		files, err := s.Scan(root, []string{"*.toml"}, []string{"vendor/**"})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{
			filepath.Join(root, "basic.toml"),
			filepath.Join(root, "errors.toml"),
		}))
	})

	It("should descend into subdirectories when recursive", func() {
		files, err := s.Scan(root, []string{"*.yaml"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{filepath.Join(root, "nested", "blocks.yaml")}))
	})

	It("should respect exclude patterns", func() {
		files, err := s.Scan(root, []string{"*.toml"}, []string{"basic.toml", "vendor/**"})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{filepath.Join(root, "errors.toml")}))
	})

	It("should match ** patterns at any depth", func() {
		files, err := s.Scan(root, []string{"**/*.toml"}, []string{"vendor/**"})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))

		files, err = s.Scan(root, []string{"vendor/**"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{filepath.Join(root, "vendor", "dep", "skip.toml")}))
	})

	It("should handle non-recursive mode", func() {
		s = scanner.NewScanner(false)
		files, err := s.Scan(root, []string{"*.toml", "*.yaml"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
	})

	It("should return error for nonexistent directory", func() {
		_, err := s.Scan("nonexistent_dir", []string{"*.toml"}, nil)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to scan directory"))
	})

	Describe("ScanAll", func() {
		It("should keep directory order and drop duplicates", func() {
			files, missing, err := scanner.ScanAll(s, []string{filepath.Join(root, "nested"), root}, []string{"*.yaml", "*.toml"}, []string{"vendor/**"})
			Expect(err).ToNot(HaveOccurred())
			Expect(missing).To(BeEmpty())
			Expect(files).To(Equal([]string{
				filepath.Join(root, "nested", "blocks.yaml"),
				filepath.Join(root, "basic.toml"),
				filepath.Join(root, "errors.toml"),
			}))
		})

		It("should skip and report missing directories", func() {
			files, missing, err := scanner.ScanAll(s, []string{"nonexistent_dir", root}, []string{"*.toml"}, []string{"vendor/**"})
			Expect(err).ToNot(HaveOccurred())
			Expect(missing).To(Equal([]string{"nonexistent_dir"}))
			Expect(files).To(HaveLen(2))
		})
	})
})
