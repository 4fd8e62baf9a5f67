package template

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/frherrer/fragmentgen/internal/config"
	"github.com/frherrer/fragmentgen/internal/domain"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplateEngine renders test units into Go source code.
type TemplateEngine interface {
	Render(units []domain.TestUnit, packageName string, target config.EngineConfig) (string, error)
	ListTemplates() []string
}

// templateData is the struct passed to templates.
type templateData struct {
	PackageName string
	BuildTag    string
	ImportPath  string
	Alias       string
	Filter      string // qualified single-fragment entry point
	Split       string // qualified full-split entry point
	Units       []domain.TestUnit
}

// DefaultEngine implements TemplateEngine.
type DefaultEngine struct {
	templates   map[string]*template.Template
	defaultName string
	templateDir string
	buildTag    string
}

// NewEngine creates a new template engine. The embedded templates are always
// available; .tmpl files in templateDir add to or replace them by name. A
// missing templateDir is not an error.
func NewEngine(templateDir string, defaultTemplate string, buildTag string) (*DefaultEngine, error) {
	engine := &DefaultEngine{
		templates:   make(map[string]*template.Template),
		defaultName: defaultTemplate,
		templateDir: templateDir,
		buildTag:    buildTag,
	}

	if err := engine.loadFS(embeddedTemplates, "templates", "embedded:templates"); err != nil {
		return nil, err
	}
	if templateDir != "" {
		if info, err := os.Stat(templateDir); err == nil && info.IsDir() {
			if err := engine.loadFS(os.DirFS(templateDir), ".", templateDir); err != nil {
				return nil, err
			}
		}
	}

	if _, ok := engine.templates[defaultTemplate]; !ok {
		return nil, domain.NewErrorWithSuggestion("template", templateDir, 0,
			fmt.Sprintf("template %q not found (available: %s)", defaultTemplate, strings.Join(engine.ListTemplates(), ", ")),
			"set output.template to one of the available templates", nil)
	}

	return engine, nil
}

// loadFS parses every .tmpl file in dir of fsys. origin names the source in errors.
func (e *DefaultEngine) loadFS(fsys fs.FS, dir, origin string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return domain.NewError("template", origin, 0, "failed to read template directory", err)
	}

	funcMap := CustomFuncMap()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tmpl") {
			continue
		}

		origPath := filepath.Join(origin, entry.Name())
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return domain.NewError("template", origPath, 0, "failed to read template file", err)
		}

		name := strings.TrimSuffix(entry.Name(), ".tmpl")
		tmpl, err := template.New(name).Funcs(funcMap).Parse(string(content))
		if err != nil {
			return domain.NewError("template", origPath, 0, "failed to parse template", err)
		}

		e.templates[name] = tmpl
	}

	return nil
}

// Render renders all units, in order, into one formatted Go source file.
func (e *DefaultEngine) Render(units []domain.TestUnit, packageName string, target config.EngineConfig) (string, error) {
	tmpl, ok := e.templates[e.defaultName]
	if !ok {
		return "", domain.NewError("template", "", 0,
			fmt.Sprintf("template %q not found (available: %s)", e.defaultName, strings.Join(e.ListTemplates(), ", ")), nil)
	}

	data := templateData{
		PackageName: packageName,
		BuildTag:    e.buildTag,
		ImportPath:  target.ImportPath,
		Alias:       target.EngineAlias(),
		Filter:      qualify(target.EngineAlias(), target.FilterFunc),
		Split:       qualify(target.EngineAlias(), target.SplitFunc),
		Units:       make([]domain.TestUnit, len(units)),
	}
	for i, u := range units {
		u.SourceFile = commentSafe(filepath.ToSlash(u.SourceFile))
		data.Units[i] = u
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", domain.NewError("template", e.defaultName, 0, "failed to execute template", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Return unformatted output alongside the error for debugging
		return buf.String(), domain.NewError("template", e.defaultName, 0,
			"generated code failed go/format validation", err)
	}

	return string(formatted), nil
}

// ListTemplates returns the sorted names of all loaded templates.
func (e *DefaultEngine) ListTemplates() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func qualify(alias, name string) string {
	if alias == "" {
		return name
	}
	return alias + "." + name
}

// commentSafe keeps s on a single comment line.
func commentSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
