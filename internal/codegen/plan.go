package codegen

import (
	"slices"

	"github.com/ricardonunez-io/apigen/internal/errors"
	"github.com/ricardonunez-io/apigen/internal/infer"
	"github.com/ricardonunez-io/apigen/internal/schema"
)

type RecordKind int

const (
	EntityRecord RecordKind = iota
	ParamsRecord
)

type Variant struct {
	Name string
	Type TypeRef
}

type Enum struct {
	Name     string
	Variants []Variant
}

type RecordField struct {
	Name        string
	Type        TypeRef
	Required    bool
	Description string
}

type Record struct {
	Name        string
	Description string
	Kind        RecordKind
	Fields      []RecordField
}

// Plan is everything one generation run declares, in emission order: enums
// first, then entity records, then parameter records.
type Plan struct {
	Enums   []Enum
	Records []Record
}

// Build plans the declarations for s. The plan is threaded through each pass
// by value; declaring a name twice with identical content is a no-op, with
// different content an AmbiguousNameError.
func Build(s schema.Schema) (Plan, error) {
	var (
		p   Plan
		err error
	)

	for _, e := range s.Entities {
		if p, err = p.withFieldEnums(e.Fields); err != nil {
			return Plan{}, errors.Attr(err, "entity", e.Name)
		}
	}
	for _, op := range s.Operations {
		if p, err = p.withFieldEnums(op.Params); err != nil {
			return Plan{}, errors.Attr(err, "operation", op.Name)
		}
	}
	for _, e := range s.Entities {
		if p, err = p.withRecord(EntityRecordOf(e)); err != nil {
			return Plan{}, errors.Attr(err, "entity", e.Name)
		}
	}
	for _, op := range s.Operations {
		if p, err = p.withRecord(ParamsRecordOf(op)); err != nil {
			return Plan{}, errors.Attr(err, "operation", op.Name)
		}
	}

	return p, nil
}

// EnumOf returns the union declared for f, if its type is an alternative.
func EnumOf(f schema.Field) (Enum, bool) {
	alt, ok := infer.Describe(f).Shape.(infer.Alternative)
	if !ok {
		return Enum{}, false
	}

	e := Enum{Name: EnumName(f.Name)}
	seen := make(map[string]bool)
	for _, token := range alt.Names {
		v := variantOf(token)
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		e.Variants = append(e.Variants, v)
	}

	return e, true
}

func variantOf(token string) Variant {
	if kind, ok := primitiveOf(token); ok {
		return Variant{Name: UpperCamel(token) + "Variant", Type: Primitive{Kind: kind}}
	}
	return Variant{Name: token, Type: Named{Name: token}}
}

func EntityRecordOf(e schema.Entity) Record {
	return Record{
		Name:        e.Name,
		Description: e.Description,
		Kind:        EntityRecord,
		Fields:      recordFields(e.Fields, e.Name),
	}
}

func ParamsRecordOf(op schema.Operation) Record {
	return Record{
		Name:        ParamsName(op.Name),
		Description: op.Description,
		Kind:        ParamsRecord,
		Fields:      recordFields(op.Params, ""),
	}
}

func recordFields(fields []schema.Field, owner string) []RecordField {
	out := make([]RecordField, len(fields))
	for i, f := range fields {
		out[i] = RecordField{
			Name:        f.Name,
			Type:        Resolve(infer.Describe(f), EnumName(f.Name), owner),
			Required:    f.Required,
			Description: f.Description,
		}
	}
	return out
}

// withFieldEnums also rejects fields whose type column names no type, so
// nothing is rendered for them later.
func (p Plan) withFieldEnums(fields []schema.Field) (Plan, error) {
	var err error
	for _, f := range fields {
		if s, ok := infer.Describe(f).Shape.(infer.Scalar); ok && s.Name == "" {
			err := errors.Errorf(errors.KindStructural, "field %q has no type", f.Name)
			return p, errors.Attr(err, "field", f.Name)
		}
		e, ok := EnumOf(f)
		if !ok {
			continue
		}
		if p, err = p.withEnum(e); err != nil {
			return p, errors.Attr(err, "field", f.Name)
		}
	}
	return p, nil
}

func (p Plan) withEnum(e Enum) (Plan, error) {
	for _, existing := range p.Enums {
		if existing.Name != e.Name {
			continue
		}
		if slices.Equal(existing.Variants, e.Variants) {
			return p, nil
		}
		return p, ambiguous(e.Name, "enum declared with different variants")
	}
	if _, ok := p.Record(e.Name); ok {
		return p, ambiguous(e.Name, "enum name already used by a record")
	}

	p.Enums = append(p.Enums, e)
	return p, nil
}

func (p Plan) withRecord(r Record) (Plan, error) {
	if existing, ok := p.Record(r.Name); ok {
		if existing.Kind == r.Kind && sameShape(existing.Fields, r.Fields) {
			return p, nil
		}
		return p, ambiguous(r.Name, "record declared with different fields")
	}
	if _, ok := p.Enum(r.Name); ok {
		return p, ambiguous(r.Name, "record name already used by an enum")
	}

	p.Records = append(p.Records, r)
	return p, nil
}

func (p Plan) Enum(name string) (Enum, bool) {
	for _, e := range p.Enums {
		if e.Name == name {
			return e, true
		}
	}
	return Enum{}, false
}

func (p Plan) Record(name string) (Record, bool) {
	for _, r := range p.Records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// sameShape compares fields by name, type and requirement; descriptions may
// differ between two copies of the same record.
func sameShape(a, b []RecordField) bool {
	return slices.EqualFunc(a, b, func(x, y RecordField) bool {
		return x.Name == y.Name && x.Type == y.Type && x.Required == y.Required
	})
}

func ambiguous(name, reason string) error {
	err := errors.Errorf(errors.KindAmbiguousName, "%s: %q", reason, name)
	return errors.Attr(err, "name", name)
}
