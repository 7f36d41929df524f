package codegen

import (
	"fmt"
	"go/format"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

// GoRenderer emits one gofmt'ed Go file. Unions become sealed interfaces
// implemented by the variant types.
type GoRenderer struct {
	Package string
}

func (GoRenderer) Name() string          { return "go" }
func (GoRenderer) FileExtension() string { return ".go" }

func (g GoRenderer) Render(p Plan) (string, error) {
	var body strings.Builder
	usesSlices := false

	for _, e := range p.Enums {
		body.WriteString("\n")
		g.enum(&body, e)
	}
	for _, rec := range p.Records {
		body.WriteString("\n")
		if g.record(&body, rec) {
			usesSlices = true
		}
	}

	var src strings.Builder
	src.WriteString("// Code generated by apigen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&src, "package %s\n", g.Package)
	if usesSlices {
		src.WriteString("\nimport \"slices\"\n")
	}
	src.WriteString(body.String())

	out, err := format.Source([]byte(src.String()))
	if err != nil {
		return "", errors.Wrap(err, errors.KindInternal, "generated go source does not format")
	}
	return string(out), nil
}

func (GoRenderer) enum(sb *strings.Builder, e Enum) {
	members := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		members[i] = goVariantType(e, v)
	}
	fmt.Fprintf(sb, "// %s is one of %s.\n", e.Name, strings.Join(members, ", "))
	fmt.Fprintf(sb, "type %s interface {\n\tis%s()\n}\n", e.Name, e.Name)

	for _, v := range e.Variants {
		if p, ok := v.Type.(Primitive); ok {
			fmt.Fprintf(sb, "\ntype %s %s\n", goVariantType(e, v), goType(p))
		}
	}
	sb.WriteString("\n")
	for _, v := range e.Variants {
		fmt.Fprintf(sb, "func (%s) is%s() {}\n", goVariantType(e, v), e.Name)
	}
}

// goVariantType names the Go type implementing a variant. Primitive variants
// get a defined type of their own; named variants use the record directly.
func goVariantType(e Enum, v Variant) string {
	if _, ok := v.Type.(Primitive); ok {
		return e.Name + v.Name
	}
	return goType(v.Type)
}

// record writes the struct and its methods. It reports whether any getter
// needs the slices package.
func (GoRenderer) record(sb *strings.Builder, rec Record) bool {
	writeGoDoc(sb, "", rec.Description)
	fmt.Fprintf(sb, "type %s struct {\n", rec.Name)
	for _, f := range rec.Fields {
		writeGoDoc(sb, "\t", f.Description)
		tag := f.Name
		if !f.Required {
			tag += ",omitempty"
		}
		fmt.Fprintf(sb, "\t%s %s `json:%q`\n", goName(f.Name), goFieldType(f.Type), tag)
	}
	sb.WriteString("}\n")

	recv := goReceiver(rec.Name)
	var (
		params []string
		inits  []string
	)
	for _, f := range rec.Fields {
		if !f.Required {
			continue
		}
		param := goParam(f.Name, "")
		params = append(params, param+" "+goFieldType(f.Type))
		inits = append(inits, fmt.Sprintf("%s: %s,", goName(f.Name), param))
	}
	fmt.Fprintf(sb, "\nfunc New%s(%s) *%s {\n", rec.Name, strings.Join(params, ", "), rec.Name)
	fmt.Fprintf(sb, "\treturn &%s{\n", rec.Name)
	for _, init := range inits {
		fmt.Fprintf(sb, "\t\t%s\n", init)
	}
	sb.WriteString("\t}\n}\n")

	for _, f := range rec.Fields {
		name, param := goName(f.Name), goParam(f.Name, recv)
		fmt.Fprintf(sb, "\nfunc (%s *%s) Set%s(%s %s) *%s {\n", recv, rec.Name, name, param, goFieldType(f.Type), rec.Name)
		fmt.Fprintf(sb, "\t%s.%s = %s\n\treturn %s\n}\n", recv, name, param, recv)
	}

	usesSlices := false
	for _, f := range rec.Fields {
		name := goName(f.Name)
		value := recv + "." + name
		if strings.HasPrefix(goFieldType(f.Type), "[]") {
			value = "slices.Clone(" + value + ")"
			usesSlices = true
		}
		fmt.Fprintf(sb, "\nfunc (%s *%s) Get%s() %s {\n\treturn %s\n}\n", recv, rec.Name, name, goFieldType(f.Type), value)
	}

	return usesSlices
}

func goType(t TypeRef) string {
	switch t := t.(type) {
	case Primitive:
		switch t.Kind {
		case Bool:
			return "bool"
		case Integer:
			return "int64"
		case Float:
			return "float64"
		default:
			return "string"
		}
	case Named:
		return t.Name
	case EnumRef:
		return t.Name
	case Array:
		return "[]" + goType(t.Elem)
	case Optional:
		return goFieldType(t)
	case Boxed:
		return "*" + goType(t.Elem)
	}
	return "any"
}

// goFieldType renders t, adding a pointer for optional values unless the
// type already has a zero value meaning absent.
func goFieldType(t TypeRef) string {
	opt, ok := t.(Optional)
	if !ok {
		return goType(t)
	}
	switch opt.Elem.(type) {
	case Array, EnumRef, Boxed:
		return goType(opt.Elem)
	}
	return "*" + goType(opt.Elem)
}

var goInitialisms = map[string]bool{
	"API": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
	"IP": true, "JSON": true, "URI": true, "URL": true,
}

// goName exports a documented field name: "chat_id" -> "ChatID".
func goName(name string) string {
	var sb strings.Builder
	for _, word := range splitWords(name) {
		if upper := strings.ToUpper(word); goInitialisms[upper] {
			sb.WriteString(upper)
			continue
		}
		sb.WriteString(UpperCamel(word))
	}
	return sb.String()
}

// goParam is the parameter name for field name, renamed when it would clash
// with a keyword or the receiver.
func goParam(name, recv string) string {
	words := splitWords(name)
	if len(words) == 0 {
		return "value"
	}
	param := strings.ToLower(words[0])
	if !goInitialisms[strings.ToUpper(words[0])] {
		param = LowerCamel(words[0])
	}
	param += goName(strings.Join(words[1:], "_"))

	if token.IsKeyword(param) || param == recv {
		param += "Value"
	}
	return param
}

func goReceiver(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if !unicode.IsLetter(r) {
		return "r"
	}
	return string(unicode.ToLower(r))
}

func writeGoDoc(sb *strings.Builder, indent, text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fmt.Fprintf(sb, "%s// %s\n", indent, line)
	}
}
