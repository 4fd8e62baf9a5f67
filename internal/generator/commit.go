package generator

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"

	"github.com/frherrer/fragmentgen/internal/domain"
)

// Commit replaces the artifact's destination in one atomic step. The content
// goes to a temporary file in the same directory, which is then renamed over
// the destination, so readers never observe a partial file.
func Commit(a *Artifact) error {
	if dir := filepath.Dir(a.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.NewErrorWithSuggestion("write", dir, 0,
				"failed to create output directory",
				"check that the parent directory exists and has write permissions",
				err)
		}
	}

	if err := renameio.WriteFile(a.Path, a.Content, 0644); err != nil {
		return domain.NewErrorWithSuggestion("write", a.Path, 0,
			"failed to write output file",
			"check disk space and write permissions for the output directory",
			err)
	}
	return nil
}

// Check verifies that the destination already holds exactly the artifact's
// content. The difference is logged at debug level.
func Check(a *Artifact, log *logrus.Logger) error {
	existing, err := os.ReadFile(a.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewErrorWithSuggestion("check", a.Path, 0,
			"generated file does not exist",
			"run fragmentgen generate", nil)
	}
	if err != nil {
		return domain.NewError("check", a.Path, 0, "failed to read generated file", err)
	}

	if bytes.Equal(existing, a.Content) {
		return nil
	}
	log.Debugf("Diff (-existing +generated):\n%s", cmp.Diff(string(existing), string(a.Content)))
	return domain.NewErrorWithSuggestion("check", a.Path, 0,
		"generated file is out of date",
		"run fragmentgen generate", nil)
}
