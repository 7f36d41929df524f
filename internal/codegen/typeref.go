package codegen

import "github.com/ricardonunez-io/apigen/internal/infer"

type PrimitiveKind int

const (
	Bool PrimitiveKind = iota
	Integer
	Float
	String
)

func (k PrimitiveKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return "string"
	}
}

// TypeRef is the resolved type of a record field or enum variant. Wrappers
// nest in a fixed order, innermost first: Boxed, Array, Optional.
type TypeRef interface {
	isTypeRef()
}

type Primitive struct {
	Kind PrimitiveKind
}

// Named refers to a record documented elsewhere on the page.
type Named struct {
	Name string
}

// EnumRef refers to a generated union.
type EnumRef struct {
	Name string
}

type Array struct {
	Elem TypeRef
}

type Optional struct {
	Elem TypeRef
}

// Boxed is an indirect reference, used where a record would otherwise
// contain itself by value.
type Boxed struct {
	Elem TypeRef
}

func (Primitive) isTypeRef() {}
func (Named) isTypeRef()     {}
func (EnumRef) isTypeRef()   {}
func (Array) isTypeRef()     {}
func (Optional) isTypeRef()  {}
func (Boxed) isTypeRef()     {}

var primitives = map[string]PrimitiveKind{
	infer.Bool:     Bool,
	"Boolean":      Bool,
	"True":         Bool,
	"False":        Bool,
	infer.Integer:  Integer,
	"Integer":      Integer,
	"Float":        Float,
	"Float number": Float,
	"String":       String,
}

func primitiveOf(name string) (PrimitiveKind, bool) {
	kind, ok := primitives[name]
	return kind, ok
}

func scalarRef(name string) TypeRef {
	if kind, ok := primitiveOf(name); ok {
		return Primitive{Kind: kind}
	}
	return Named{Name: name}
}

// Resolve builds the TypeRef of a field. enumName names the union used when d
// is an Alternative; owner is the enclosing record, or "" when the record
// cannot be self-referential.
func Resolve(d infer.Descriptor, enumName, owner string) TypeRef {
	var t TypeRef
	switch s := d.Shape.(type) {
	case infer.Alternative:
		t = EnumRef{Name: enumName}
	case infer.Scalar:
		t = scalarRef(s.Name)
	default:
		t = Named{}
	}

	if owner != "" && refName(t) == owner {
		t = Boxed{Elem: t}
	}
	for i := 0; i < d.ArrayDepth; i++ {
		t = Array{Elem: t}
	}
	if d.Optional {
		t = Optional{Elem: t}
	}

	return t
}

func refName(t TypeRef) string {
	switch t := t.(type) {
	case Named:
		return t.Name
	case EnumRef:
		return t.Name
	default:
		return ""
	}
}

// walkNamed calls fn for every Named reference inside t.
func walkNamed(t TypeRef, fn func(Named)) {
	switch t := t.(type) {
	case Named:
		fn(t)
	case Array:
		walkNamed(t.Elem, fn)
	case Optional:
		walkNamed(t.Elem, fn)
	case Boxed:
		walkNamed(t.Elem, fn)
	}
}
