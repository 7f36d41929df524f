package codegen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UpperCamel turns snake_case, spaced or lowerCamel names into UpperCamel:
// "chat_id" -> "ChatId", "sendMediaGroup" -> "SendMediaGroup".
func UpperCamel(name string) string {
	title := cases.Title(language.Und, cases.NoLower)

	var sb strings.Builder
	for _, part := range splitWords(name) {
		sb.WriteString(title.String(part))
	}
	return sb.String()
}

func LowerCamel(name string) string {
	return lowerFirst(UpperCamel(name))
}

// EnumName is the declaration name for the union type of a field.
func EnumName(field string) string {
	return UpperCamel(field) + "Enum"
}

// ParamsName is the declaration name for an operation's parameter record.
func ParamsName(operation string) string {
	return UpperCamel(operation) + "Params"
}

func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
