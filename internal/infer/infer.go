// Package infer turns the natural-language type column of a documentation
// table ("Array of String", "Integer or String", ...) into a Descriptor.
package infer

import (
	"regexp"
	"strings"

	"github.com/ricardonunez-io/apigen/internal/schema"
)

const (
	Bool    = "bool"
	Integer = "integer"

	arrayPrefix = "Array of"
)

var alternativeSeparator = regexp.MustCompile(`,| and | or `)

type Shape interface {
	isShape()
}

// Scalar is a single named type. Bool and Integer are canonical; any other
// name is carried through exactly as documented.
type Scalar struct {
	Name string
}

// Alternative is a union of documented type names, in documented order.
type Alternative struct {
	Names []string
}

func (Scalar) isShape()      {}
func (Alternative) isShape() {}

// Descriptor is recomputed from a Field on demand and never stored on it.
type Descriptor struct {
	ArrayDepth int
	Optional   bool
	Shape      Shape
}

func (d Descriptor) IsArray() bool {
	return d.ArrayDepth > 0
}

func (d Descriptor) IsAlternative() bool {
	_, ok := d.Shape.(Alternative)
	return ok
}

func Describe(f schema.Field) Descriptor {
	depth, rest := stripArrays(f.Type)

	return Descriptor{
		ArrayDepth: depth,
		Optional:   !f.Required,
		Shape:      shapeOf(rest),
	}
}

// stripArrays peels one array level per leading "Array of".
func stripArrays(text string) (int, string) {
	depth := 0
	for strings.HasPrefix(text, arrayPrefix) {
		text = strings.TrimSpace(strings.TrimPrefix(text, arrayPrefix))
		depth++
	}
	return depth, text
}

func shapeOf(text string) Shape {
	switch text {
	case "Boolean", "True", "False":
		return Scalar{Name: Bool}
	case "Integer":
		return Scalar{Name: Integer}
	}

	tokens := Split(text)
	switch len(tokens) {
	case 0:
		return Scalar{Name: strings.TrimSpace(text)}
	case 1:
		return Scalar{Name: tokens[0]}
	default:
		return Alternative{Names: tokens}
	}
}

// Split cuts a type phrase on commas, " and " and " or ". Tokens are trimmed,
// empty ones (from "A, B, and C") dropped, duplicates kept.
func Split(text string) []string {
	var tokens []string
	for _, part := range alternativeSeparator.Split(text, -1) {
		if token := strings.TrimSpace(part); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
