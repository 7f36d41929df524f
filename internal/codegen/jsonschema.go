package codegen

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

// JSONSchemaRenderer emits a single document with one $defs entry per enum
// and record. $defs marshal in name order, not declaration order.
type JSONSchemaRenderer struct {
	ID    string
	Title string
}

func (JSONSchemaRenderer) Name() string          { return "jsonschema" }
func (JSONSchemaRenderer) FileExtension() string { return ".json" }

func (r JSONSchemaRenderer) Render(p Plan) (string, error) {
	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		ID:          jsonschema.ID(r.ID),
		Title:       r.Title,
		Definitions: jsonschema.Definitions{},
	}

	for _, e := range p.Enums {
		def := &jsonschema.Schema{Title: e.Name}
		for _, v := range e.Variants {
			variant := schemaOf(v.Type)
			variant.Title = v.Name
			def.OneOf = append(def.OneOf, variant)
		}
		root.Definitions[e.Name] = def
	}

	for _, rec := range p.Records {
		def := &jsonschema.Schema{
			Type:                 "object",
			Title:                rec.Name,
			Description:          rec.Description,
			Properties:           jsonschema.NewProperties(),
			AdditionalProperties: jsonschema.FalseSchema,
		}
		for _, f := range rec.Fields {
			prop := schemaOf(f.Type)
			prop.Description = f.Description
			def.Properties.Set(f.Name, prop)
			if f.Required {
				def.Required = append(def.Required, f.Name)
			}
		}
		root.Definitions[rec.Name] = def
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.KindInternal, "marshalling json schema")
	}
	return string(out) + "\n", nil
}

func schemaOf(t TypeRef) *jsonschema.Schema {
	switch t := t.(type) {
	case Primitive:
		switch t.Kind {
		case Bool:
			return &jsonschema.Schema{Type: "boolean"}
		case Integer:
			return &jsonschema.Schema{Type: "integer"}
		case Float:
			return &jsonschema.Schema{Type: "number"}
		default:
			return &jsonschema.Schema{Type: "string"}
		}
	case Named:
		return &jsonschema.Schema{Ref: "#/$defs/" + t.Name}
	case EnumRef:
		return &jsonschema.Schema{Ref: "#/$defs/" + t.Name}
	case Array:
		return &jsonschema.Schema{Type: "array", Items: schemaOf(t.Elem)}
	case Optional:
		return schemaOf(t.Elem)
	case Boxed:
		return schemaOf(t.Elem)
	}
	return &jsonschema.Schema{}
}
