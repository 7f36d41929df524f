package codegen

import (
	"github.com/ricardonunez-io/apigen/internal/fuzzy"
	"github.com/ricardonunez-io/apigen/internal/schema"
)

// Unresolved is a named type that no entity on the page declares. Field is
// the variant name when Record is an enum.
type Unresolved struct {
	Record     string
	Field      string
	Type       string
	Suggestion string
}

// CheckReferences lists the Named references in p that s does not declare.
// Pages reference some types (InputFile, for example) only in prose, so these
// are warnings rather than errors.
func CheckReferences(s schema.Schema, p Plan) []Unresolved {
	known := s.EntityNames()

	var out []Unresolved
	check := func(record, field string, t TypeRef) {
		walkNamed(t, func(n Named) {
			if s.HasEntity(n.Name) {
				return
			}
			u := Unresolved{Record: record, Field: field, Type: n.Name}
			if suggestion, ok := fuzzy.Suggest(n.Name, known, fuzzy.DefaultSimilarityThreshold); ok {
				u.Suggestion = suggestion
			}
			out = append(out, u)
		})
	}

	for _, r := range p.Records {
		for _, f := range r.Fields {
			check(r.Name, f.Name, f.Type)
		}
	}
	for _, e := range p.Enums {
		for _, v := range e.Variants {
			check(e.Name, v.Name, v.Type)
		}
	}

	return out
}
