package codegen

import (
	"fmt"
	"strings"
)

// RustRenderer emits plain structs and enums with an impl block per struct.
type RustRenderer struct{}

func (RustRenderer) Name() string          { return "rust" }
func (RustRenderer) FileExtension() string { return ".rs" }

func (r RustRenderer) Render(p Plan) (string, error) {
	var blocks []string
	for _, e := range p.Enums {
		blocks = append(blocks, r.enum(e))
	}
	for _, rec := range p.Records {
		blocks = append(blocks, r.record(rec), r.impl(rec))
	}
	if len(blocks) == 0 {
		return "", nil
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

func (RustRenderer) enum(e Enum) string {
	var sb strings.Builder
	sb.WriteString("#[derive(Debug, Clone, PartialEq)]\n")
	fmt.Fprintf(&sb, "pub enum %s {\n", e.Name)
	for _, v := range e.Variants {
		fmt.Fprintf(&sb, "    %s(%s),\n", v.Name, rustType(v.Type))
	}
	sb.WriteString("}")
	return sb.String()
}

func (RustRenderer) record(rec Record) string {
	var sb strings.Builder
	writeRustDoc(&sb, "", rec.Description)
	sb.WriteString("#[derive(Debug, Clone, PartialEq)]\n")
	fmt.Fprintf(&sb, "pub struct %s {\n", rec.Name)
	for _, f := range rec.Fields {
		writeRustDoc(&sb, "    ", f.Description)
		fmt.Fprintf(&sb, "    pub %s: %s,\n", rustIdent(f.Name), rustType(f.Type))
	}
	sb.WriteString("}")
	return sb.String()
}

func (RustRenderer) impl(rec Record) string {
	var (
		params []string
		inits  []string
	)
	for _, f := range rec.Fields {
		ident := rustIdent(f.Name)
		if f.Required {
			params = append(params, fmt.Sprintf("%s: %s", ident, rustType(f.Type)))
			inits = append(inits, ident)
		} else {
			inits = append(inits, ident+": None")
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "impl %s {\n", rec.Name)
	fmt.Fprintf(&sb, "    pub fn new(%s) -> Self {\n", strings.Join(params, ", "))
	sb.WriteString("        Self {\n")
	for _, init := range inits {
		fmt.Fprintf(&sb, "            %s,\n", init)
	}
	sb.WriteString("        }\n")
	sb.WriteString("    }\n")

	for _, f := range rec.Fields {
		ident, typ := rustIdent(f.Name), rustType(f.Type)
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "    pub fn set_%s(&mut self, %s: %s) -> &mut Self {\n", strings.TrimPrefix(ident, "r#"), ident, typ)
		fmt.Fprintf(&sb, "        self.%s = %s;\n", ident, ident)
		sb.WriteString("        self\n")
		sb.WriteString("    }\n")
	}

	for _, f := range rec.Fields {
		ident, typ := rustIdent(f.Name), rustType(f.Type)
		getter := ident
		if getter == "new" {
			getter = "get_new"
		}
		value := "self." + ident
		if !rustCopy(f.Type) {
			value += ".clone()"
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "    pub fn %s(&self) -> %s {\n", getter, typ)
		fmt.Fprintf(&sb, "        %s\n", value)
		sb.WriteString("    }\n")
	}

	sb.WriteString("}")
	return sb.String()
}

func rustType(t TypeRef) string {
	switch t := t.(type) {
	case Primitive:
		switch t.Kind {
		case Bool:
			return "bool"
		case Integer:
			return "isize"
		case Float:
			return "f64"
		default:
			return "String"
		}
	case Named:
		return t.Name
	case EnumRef:
		return t.Name
	case Array:
		return "Vec<" + rustType(t.Elem) + ">"
	case Optional:
		return "Option<" + rustType(t.Elem) + ">"
	case Boxed:
		return "Box<" + rustType(t.Elem) + ">"
	}
	return "()"
}

// rustCopy reports whether values of t are Copy, so getters can return them
// without cloning.
func rustCopy(t TypeRef) bool {
	switch t := t.(type) {
	case Primitive:
		return t.Kind != String
	case Optional:
		return rustCopy(t.Elem)
	}
	return false
}

var rustKeywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true, "become": true, "box": true,
	"break": true, "const": true, "continue": true, "do": true, "dyn": true, "else": true,
	"enum": true, "extern": true, "false": true, "final": true, "fn": true, "for": true,
	"if": true, "impl": true, "in": true, "let": true, "loop": true, "macro": true,
	"match": true, "mod": true, "move": true, "mut": true, "override": true, "priv": true,
	"pub": true, "ref": true, "return": true, "static": true, "struct": true, "trait": true,
	"true": true, "try": true, "type": true, "typeof": true, "unsafe": true, "unsized": true,
	"use": true, "virtual": true, "where": true, "while": true, "yield": true,
}

// Keywords that cannot be raw identifiers.
var rustReserved = map[string]bool{"crate": true, "self": true, "Self": true, "super": true}

func rustIdent(name string) string {
	switch {
	case rustReserved[name]:
		return name + "_"
	case rustKeywords[name]:
		return "r#" + name
	}
	return name
}

func writeRustDoc(sb *strings.Builder, indent, text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fmt.Fprintf(sb, "%s/// %s\n", indent, line)
	}
}
