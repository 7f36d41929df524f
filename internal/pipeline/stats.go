package pipeline

import (
	"github.com/ricardonunez-io/apigen/internal/codegen"
	"github.com/ricardonunez-io/apigen/internal/infer"
	"github.com/ricardonunez-io/apigen/internal/schema"
)

type Stats struct {
	Entities     int `json:"entities"`
	Operations   int `json:"operations"`
	Fields       int `json:"fields"`
	Optional     int `json:"optional"`
	Arrays       int `json:"arrays"`
	Alternatives int `json:"alternatives"`
	Enums        int `json:"enums"`
	Records      int `json:"records"`
}

func Collect(s schema.Schema, p codegen.Plan) Stats {
	st := Stats{
		Entities:   len(s.Entities),
		Operations: len(s.Operations),
		Fields:     s.FieldCount(),
		Enums:      len(p.Enums),
		Records:    len(p.Records),
	}

	count := func(fields []schema.Field) {
		for _, f := range fields {
			d := infer.Describe(f)
			if d.Optional {
				st.Optional++
			}
			if d.IsArray() {
				st.Arrays++
			}
			if d.IsAlternative() {
				st.Alternatives++
			}
		}
	}
	for _, e := range s.Entities {
		count(e.Fields)
	}
	for _, op := range s.Operations {
		count(op.Params)
	}

	return st
}
