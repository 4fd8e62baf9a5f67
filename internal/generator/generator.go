package generator

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/frherrer/fragmentgen/internal/assertion"
	"github.com/frherrer/fragmentgen/internal/config"
	"github.com/frherrer/fragmentgen/internal/converter"
	"github.com/frherrer/fragmentgen/internal/domain"
	"github.com/frherrer/fragmentgen/internal/parser"
	"github.com/frherrer/fragmentgen/internal/scanner"
	tmpl "github.com/frherrer/fragmentgen/internal/template"
)

// Generator is the top-level orchestrator.
type Generator interface {
	Generate(cfg *config.Config) error
}

// Artifact is a fully rendered output file that has not been written yet.
type Artifact struct {
	Path      string
	Content   []byte
	Documents int
	Units     int
}

// DefaultGenerator implements Generator by wiring all components together.
type DefaultGenerator struct {
	scanner   scanner.Scanner
	registry  parser.DecoderRegistry
	converter converter.Converter
	engine    tmpl.TemplateEngine
	log       *logrus.Logger
}

// NewGenerator creates a new DefaultGenerator with all dependencies.
func NewGenerator(
	s scanner.Scanner,
	r parser.DecoderRegistry,
	c converter.Converter,
	e tmpl.TemplateEngine,
	log *logrus.Logger,
) *DefaultGenerator {
	return &DefaultGenerator{
		scanner:   s,
		registry:  r,
		converter: c,
		engine:    e,
		log:       log,
	}
}

// Generate runs the full pipeline: load → build → commit. Nothing is written
// unless every document loaded and the whole output rendered.
func (g *DefaultGenerator) Generate(cfg *config.Config) error {
	artifact, err := g.Build(cfg)
	if err != nil {
		return err
	}

	switch {
	case cfg.DryRun:
		g.log.Infof("[DRY-RUN] Would write %d test(s) to %s", artifact.Units, artifact.Path)
		g.log.Debugf("[DRY-RUN] Content:\n%s", artifact.Content)
		return nil
	case cfg.Check:
		if err := Check(artifact, g.log); err != nil {
			return err
		}
		g.log.Infof("%s is up to date", artifact.Path)
		return nil
	}

	if err := Commit(artifact); err != nil {
		return err
	}
	g.log.WithFields(logrus.Fields{
		"documents": artifact.Documents,
		"tests":     artifact.Units,
	}).Infof("Wrote %s", artifact.Path)
	return nil
}

// Build loads every spec document and renders the output artifact in memory.
func (g *DefaultGenerator) Build(cfg *config.Config) (*Artifact, error) {
	docs, err := g.Load(cfg)
	if err != nil {
		return nil, err
	}

	units := assertion.BuildAll(docs)
	g.log.Debugf("Built %d test unit(s)", len(units))

	rendered, err := g.engine.Render(units, cfg.Output.PackageName, cfg.Engine)
	if err != nil {
		return nil, err
	}

	return &Artifact{
		Path:      cfg.Output.File,
		Content:   []byte(rendered),
		Documents: len(docs),
		Units:     len(units),
	}, nil
}

// Load discovers, decodes and validates all spec documents, preserving
// document order and the order of cases within each document.
func (g *DefaultGenerator) Load(cfg *config.Config) ([]domain.SpecDocument, error) {
	files, missing, err := scanner.ScanAll(g.scanner, cfg.Input.Directories, cfg.Input.Include, cfg.Input.Exclude)
	if err != nil {
		return nil, err
	}
	for _, dir := range missing {
		g.log.Warnf("Spec directory %s does not exist, skipping", dir)
	}

	if len(files) == 0 {
		g.log.Warn("No spec documents found")
	} else {
		g.log.Infof("Found %d spec document(s)", len(files))
	}

	var docs []domain.SpecDocument
	for _, filePath := range files {
		doc, err := g.loadDocument(filePath)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		docs = append(docs, *doc)
	}

	if err := converter.CheckCollisions(docs); err != nil {
		return nil, err
	}

	return docs, nil
}

// loadDocument returns nil, nil for files no decoder handles.
func (g *DefaultGenerator) loadDocument(filePath string) (*domain.SpecDocument, error) {
	log := g.log.WithField("file", filePath)

	d, err := g.registry.DecoderFor(filepath.Ext(filePath))
	if err != nil {
		log.Warnf("No decoder for %s, skipping", filepath.Ext(filePath))
		return nil, nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("parse", filePath, 0,
			"failed to read file",
			"check that the file exists and has read permissions",
			err)
	}

	raw, err := d.Decode(filePath, content)
	if err != nil {
		return nil, err
	}
	if !raw.HasTests {
		log.Warn("Document has no \"test\" entries")
	}

	doc, err := g.converter.Convert(raw)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loaded %d test case(s)", len(doc.Cases))
	return doc, nil
}
