// Package drift tracks how a documented API changes between runs.
package drift

import (
	"fmt"
	"strings"

	"github.com/ricardonunez-io/apigen/internal/schema"
)

type ChangeKind string

const (
	EntityAdded        ChangeKind = "entity_added"
	EntityRemoved      ChangeKind = "entity_removed"
	OperationAdded     ChangeKind = "operation_added"
	OperationRemoved   ChangeKind = "operation_removed"
	FieldAdded         ChangeKind = "field_added"
	FieldRemoved       ChangeKind = "field_removed"
	TypeChanged        ChangeKind = "type_changed"
	RequirementChanged ChangeKind = "requirement_changed"
)

// Change is one difference between two schemas. Entity names the entity or
// operation; Field is empty for whole-declaration changes.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	Entity   string     `json:"entity"`
	Field    string     `json:"field,omitempty"`
	Before   string     `json:"before,omitempty"`
	After    string     `json:"after,omitempty"`
	Required bool       `json:"required,omitempty"`
}

func (c Change) Severity() Severity {
	switch c.Kind {
	case EntityAdded, OperationAdded:
		return ADDITIVE
	case FieldAdded:
		if c.Required {
			return BREAKING
		}
		return ADDITIVE
	}
	return BREAKING
}

func (c Change) String() string {
	target := c.Entity
	if c.Field != "" {
		target += "." + c.Field
	}

	switch c.Kind {
	case EntityAdded:
		return "new entity " + target
	case EntityRemoved:
		return "removed entity " + target
	case OperationAdded:
		return "new operation " + target
	case OperationRemoved:
		return "removed operation " + target
	case FieldAdded:
		if c.Required {
			return fmt.Sprintf("new required field %s (%s)", target, c.After)
		}
		return fmt.Sprintf("new field %s (%s)", target, c.After)
	case FieldRemoved:
		return fmt.Sprintf("removed field %s (%s)", target, c.Before)
	case TypeChanged:
		return fmt.Sprintf("type of %s changed from %s to %s", target, c.Before, c.After)
	case RequirementChanged:
		return fmt.Sprintf("%s changed from %s to %s", target, c.Before, c.After)
	}
	return string(c.Kind) + " " + target
}

type Report struct {
	Changes []Change `json:"changes"`
}

func (r Report) Empty() bool {
	return len(r.Changes) == 0
}

func (r Report) Breaking() []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Severity() == BREAKING {
			out = append(out, c)
		}
	}
	return out
}

func (r Report) Summary() string {
	if r.Empty() {
		return "no changes"
	}
	breaking := len(r.Breaking())
	return fmt.Sprintf("%d changes (%d breaking, %d additive)", len(r.Changes), breaking, len(r.Changes)-breaking)
}

// Lines renders every change on its own line, breaking ones marked with "!".
func (r Report) Lines() []string {
	lines := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		mark := "+"
		if c.Severity() == BREAKING {
			mark = "!"
		}
		lines[i] = mark + " " + c.String()
	}
	return lines
}

func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

// Compare lists the changes from prev to cur. Removals and edits come first
// in prev's order, then additions in cur's order.
func Compare(prev, cur schema.Schema) Report {
	var r Report

	for _, e := range prev.Entities {
		next, ok := cur.Entity(e.Name)
		if !ok {
			r.Changes = append(r.Changes, Change{Kind: EntityRemoved, Entity: e.Name})
			continue
		}
		r.Changes = append(r.Changes, compareFields(e.Name, e.Fields, next.Fields)...)
	}
	for _, e := range cur.Entities {
		if _, ok := prev.Entity(e.Name); !ok {
			r.Changes = append(r.Changes, Change{Kind: EntityAdded, Entity: e.Name})
		}
	}

	for _, op := range prev.Operations {
		next, ok := cur.Operation(op.Name)
		if !ok {
			r.Changes = append(r.Changes, Change{Kind: OperationRemoved, Entity: op.Name})
			continue
		}
		r.Changes = append(r.Changes, compareFields(op.Name, op.Params, next.Params)...)
	}
	for _, op := range cur.Operations {
		if _, ok := prev.Operation(op.Name); !ok {
			r.Changes = append(r.Changes, Change{Kind: OperationAdded, Entity: op.Name})
		}
	}

	return r
}

func compareFields(owner string, prev, cur []schema.Field) []Change {
	var changes []Change

	curFields := make(map[string]schema.Field, len(cur))
	for _, f := range cur {
		curFields[f.Name] = f
	}
	prevFields := make(map[string]bool, len(prev))
	for _, f := range prev {
		prevFields[f.Name] = true
		next, ok := curFields[f.Name]
		if !ok {
			changes = append(changes, Change{Kind: FieldRemoved, Entity: owner, Field: f.Name, Before: f.Type})
			continue
		}
		if f.Type != next.Type {
			changes = append(changes, Change{Kind: TypeChanged, Entity: owner, Field: f.Name, Before: f.Type, After: next.Type})
		}
		if f.Required != next.Required {
			changes = append(changes, Change{
				Kind:   RequirementChanged,
				Entity: owner,
				Field:  f.Name,
				Before: requirement(f.Required),
				After:  requirement(next.Required),
			})
		}
	}
	for _, f := range cur {
		if !prevFields[f.Name] {
			changes = append(changes, Change{Kind: FieldAdded, Entity: owner, Field: f.Name, After: f.Type, Required: f.Required})
		}
	}

	return changes
}

func requirement(required bool) string {
	if required {
		return "required"
	}
	return "optional"
}
