package output

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog/log"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

var stdout io.Writer = os.Stdout

// Write stores content at path, or prints it when path is empty.
func Write(path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "creating output directory"), "path", path)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "writing output"), "path", path)
	}

	log.Info().Str("path", path).Int("bytes", len(content)).Msg("Declarations written")
	return nil
}

// Check compares content with what is already at path and returns a unified
// diff. An empty diff means the file is up to date; a missing file diffs
// against nothing.
func Check(path, content string) (string, error) {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return "", errors.Attr(errors.Wrap(err, errors.KindInternal, "reading existing output"), "path", path)
	}

	return Diff(path, string(existing), content)
}

// Diff renders a unified diff from before to after, labelled with name.
func Diff(name, before, after string) (string, error) {
	if before == after {
		return "", nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: name,
		ToFile:   name + " (generated)",
		Context:  3,
	})
	if err != nil {
		return "", errors.Wrap(err, errors.KindInternal, "computing diff")
	}
	return diff, nil
}
