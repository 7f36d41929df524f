package schema

import (
	"strings"

	"github.com/ricardonunez-io/apigen/internal/errors"
)

type Kind int

const (
	KindEntity Kind = iota
	KindOperation
)

func (k Kind) String() string {
	if k == KindOperation {
		return "operation"
	}
	return "entity"
}

const (
	entityColumns    = 3
	operationColumns = 4

	optionalMarker = "Optional"
	requiredFlag   = "Yes"
)

// Classify decides once, from row shape, what a table documents. Tables whose
// rows disagree on column count, or whose column count is neither 3 nor 4, are
// rejected rather than guessed at.
func Classify(t Table) (Kind, error) {
	if len(t.Rows) == 0 {
		return 0, errors.Attr(
			errors.Errorf(errors.KindStructural, "table %q has no rows", t.Name),
			"name", t.Name,
		)
	}

	columns := len(t.Rows[0])
	for i, row := range t.Rows[1:] {
		if len(row) != columns {
			err := errors.Errorf(errors.KindStructural,
				"table %q row %d has %d columns, expected %d", t.Name, i+1, len(row), columns)
			err = errors.Attr(err, "name", t.Name)
			return 0, errors.Attr(err, "row", i+1)
		}
	}

	switch columns {
	case entityColumns:
		return KindEntity, nil
	case operationColumns:
		return KindOperation, nil
	default:
		err := errors.Errorf(errors.KindStructural,
			"table %q has %d columns, expected %d or %d", t.Name, columns, entityColumns, operationColumns)
		err = errors.Attr(err, "name", t.Name)
		return 0, errors.Attr(err, "columns", columns)
	}
}

// NewEntity reads name, type and description columns. Optionality comes from
// the prose: descriptions starting with "Optional" mark the field not required.
func NewEntity(t Table) Entity {
	fields := make([]Field, len(t.Rows))
	for i, row := range t.Rows {
		fields[i] = Field{
			Name:        row[0],
			Type:        row[1],
			Description: row[2],
			Required:    !strings.HasPrefix(row[2], optionalMarker),
		}
	}

	return Entity{
		Name:        t.Name,
		Description: t.Description,
		Fields:      fields,
	}
}

// NewOperation reads name, type, required flag and description columns. Only
// the exact flag "Yes" makes a parameter required.
func NewOperation(t Table) Operation {
	params := make([]Field, len(t.Rows))
	for i, row := range t.Rows {
		params[i] = Field{
			Name:        row[0],
			Type:        row[1],
			Description: row[3],
			Required:    row[2] == requiredFlag,
		}
	}

	return Operation{
		Name:        t.Name,
		Description: t.Description,
		Params:      params,
	}
}

// Build classifies every table and splits them into entities and operations,
// keeping document order within each list. Any structural problem fails the
// whole build.
func Build(tables []Table) (Schema, error) {
	var s Schema

	for i, t := range tables {
		kind, err := Classify(t)
		if err != nil {
			return Schema{}, errors.Attr(err, "table", i)
		}

		switch kind {
		case KindEntity:
			s.Entities = append(s.Entities, NewEntity(t))
		case KindOperation:
			s.Operations = append(s.Operations, NewOperation(t))
		}
	}

	return s, nil
}
