package schema

// Table is one documentation table as found on the page: the heading text, the
// prose between heading and table, and the body cells row by row.
type Table struct {
	Name        string
	Description string
	Rows        [][]string
}

type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required"`
}

type Entity struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Fields      []Field `yaml:"fields"`
}

type Operation struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Params      []Field `yaml:"params"`
}

type Schema struct {
	Entities   []Entity    `yaml:"entities"`
	Operations []Operation `yaml:"operations"`
}

func (s Schema) EntityNames() []string {
	names := make([]string, len(s.Entities))
	for i, e := range s.Entities {
		names[i] = e.Name
	}
	return names
}

func (s Schema) HasEntity(name string) bool {
	for _, e := range s.Entities {
		if e.Name == name {
			return true
		}
	}
	return false
}

func (s Schema) Entity(name string) (Entity, bool) {
	for _, e := range s.Entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

func (s Schema) Operation(name string) (Operation, bool) {
	for _, op := range s.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// FieldCount counts entity fields and operation parameters together.
func (s Schema) FieldCount() int {
	n := 0
	for _, e := range s.Entities {
		n += len(e.Fields)
	}
	for _, op := range s.Operations {
		n += len(op.Params)
	}
	return n
}
