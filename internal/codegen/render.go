package codegen

import (
	"strings"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

type target string
type targetOptions []target

func (option target) Match(input string) bool {
	return strings.ToUpper(input) == string(option)
}

func (options targetOptions) Includes(input string) bool {
	for _, t := range options {
		if t.Match(input) {
			return true
		}
	}
	return false
}

const (
	RUST       target = "RUST"
	GO         target = "GO"
	JSONSCHEMA target = "JSONSCHEMA"
)

var ValidTargets targetOptions = targetOptions{
	"RUST",       // structs and enums with constructors and accessors
	"GO",         // gofmt'ed package with json tags
	"JSONSCHEMA", // one $defs entry per declaration
}

// Renderer formats a Plan as source text for one target language. Render must
// be deterministic: the same Plan always yields the same bytes.
type Renderer interface {
	Name() string
	FileExtension() string
	Render(p Plan) (string, error)
}

type RenderOptions struct {
	// GoPackage is the package clause of Go output.
	GoPackage string
	// SchemaID and Title are set on the JSON Schema root.
	SchemaID string
	Title    string
}

func NewRenderer(name string, opts RenderOptions) (Renderer, error) {
	switch {
	case RUST.Match(name):
		return RustRenderer{}, nil
	case GO.Match(name):
		pkg := opts.GoPackage
		if pkg == "" {
			pkg = "api"
		}
		return GoRenderer{Package: pkg}, nil
	case JSONSCHEMA.Match(name):
		return JSONSchemaRenderer{ID: opts.SchemaID, Title: opts.Title}, nil
	}
	err := errors.Errorf(errors.KindInput, "unknown target %q", name)
	return nil, errors.Attr(err, "target", name)
}
