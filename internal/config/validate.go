package config

import (
	"fmt"
	"go/token"
	"path"
	"strings"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// Validate checks the Config for required fields and valid values.
func Validate(cfg *Config) error {
	var errs []string

	// Input validation
	if len(cfg.Input.Directories) == 0 {
		errs = append(errs, "input.directories must not be empty")
	}
	if len(cfg.Input.Include) == 0 {
		errs = append(errs, "input.include must not be empty")
	}

	// Output validation
	if cfg.Output.File == "" {
		errs = append(errs, "output.file must not be empty")
	} else if !strings.HasSuffix(cfg.Output.File, "_test.go") {
		errs = append(errs, "output.file must end with _test.go")
	}
	if !token.IsIdentifier(cfg.Output.PackageName) {
		errs = append(errs, fmt.Sprintf("output.package_name must be a Go identifier (got %q)", cfg.Output.PackageName))
	}
	if cfg.Output.Template == "" {
		errs = append(errs, "output.template must not be empty")
	}

	// Engine validation
	if !token.IsExported(cfg.Engine.FilterFunc) && cfg.Engine.ImportPath != "" {
		errs = append(errs, fmt.Sprintf("engine.filter_func must be exported when engine.import_path is set (got %q)", cfg.Engine.FilterFunc))
	}
	if !token.IsExported(cfg.Engine.SplitFunc) && cfg.Engine.ImportPath != "" {
		errs = append(errs, fmt.Sprintf("engine.split_func must be exported when engine.import_path is set (got %q)", cfg.Engine.SplitFunc))
	}
	if !token.IsIdentifier(cfg.Engine.FilterFunc) {
		errs = append(errs, fmt.Sprintf("engine.filter_func must be a Go identifier (got %q)", cfg.Engine.FilterFunc))
	}
	if !token.IsIdentifier(cfg.Engine.SplitFunc) {
		errs = append(errs, fmt.Sprintf("engine.split_func must be a Go identifier (got %q)", cfg.Engine.SplitFunc))
	}
	if cfg.Engine.PackageAlias != "" && !token.IsIdentifier(cfg.Engine.PackageAlias) {
		errs = append(errs, fmt.Sprintf("engine.package_alias must be a Go identifier (got %q)", cfg.Engine.PackageAlias))
	}
	if cfg.Engine.ImportPath != "" && cfg.Engine.PackageAlias == "" && !token.IsIdentifier(cfg.Engine.EngineAlias()) {
		errs = append(errs, fmt.Sprintf("engine.package_alias is required for import path %q", cfg.Engine.ImportPath))
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError("config", "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}

// EngineAlias returns the package qualifier used for engine calls in
// generated code, or "" when the engine lives in the generated package.
func (c EngineConfig) EngineAlias() string {
	if c.ImportPath == "" {
		return ""
	}
	if c.PackageAlias != "" {
		return c.PackageAlias
	}
	return importPathName(c.ImportPath)
}

// importPathName guesses the package name of an import path the way goimports
// does: the last element, skipping a major version suffix such as /v2 or the
// .v3 of gopkg.in paths.
func importPathName(importPath string) string {
	name := path.Base(importPath)
	if isMajorVersion(name) {
		if dir := path.Dir(importPath); dir != "." {
			name = path.Base(dir)
		}
	}
	if i := strings.LastIndex(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
