package luceneql

import (
	"strconv"
	"strings"
)

// CoerceFunc rewrites the text of a single-word term into a typed leaf.
// It returns the replacement node and true to keep it, or nil and false
// to drop the node from the compiled tree. Phrases and structural nodes
// are never passed through a CoerceFunc.
type CoerceFunc func(word string) (*TermNode, bool)

// Rule binds a set of field names to a coercion behavior. Each field name
// gets its own CoerceFunc closed over that name, so lookup during
// compilation is purely by field.
type Rule struct {
	Fields []string
	Bind   func(field string) CoerceFunc
}

// Default coercion field sets, used when a parser is built without
// explicit field lists.
var (
	defaultIntFields   = []string{"count", "number"}
	defaultYesNoFields = []string{"is_active", "is_ready"}
)

// IntRule coerces words under the given fields into integer leaves.
// Words that do not parse as base-10 integers are dropped.
func IntRule(fields ...string) Rule {
	return Rule{
		Fields: fields,
		Bind: func(field string) CoerceFunc {
			return func(word string) (*TermNode, bool) {
				node, err := newIntTerm(field, word)
				if err != nil {
					return nil, false
				}
				return node, true
			}
		},
	}
}

// YesNoRule coerces words under the given fields into 0/1 integer leaves.
// "yes", "y" and "1" (exact match) map to 1, everything else to 0. The
// rule is total: it never drops a node.
func YesNoRule(fields ...string) Rule {
	return Rule{
		Fields: fields,
		Bind: func(field string) CoerceFunc {
			return func(word string) (*TermNode, bool) {
				value := 0
				switch word {
				case "yes", "y", "1":
					value = 1
				}
				return &TermNode{
					Field:    field,
					Words:    []string{strconv.Itoa(value)},
					IntField: true,
				}, true
			}
		},
	}
}

// newIntTerm builds a typed integer leaf from the word's text. The value
// is stored in canonical decimal form ("007" becomes "7").
func newIntTerm(field, text string) (*TermNode, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil, err
	}
	return &TermNode{
		Field:    field,
		Words:    []string{strconv.Itoa(n)},
		IntField: true,
	}, nil
}

// coercionFields derives extra coercion field names from a schema.
// Fields typed "int" or "integer" join the integer set; fields typed
// "yesno" or "bool" join the yes/no set. Other types are left to the
// default quoted rendering.
func coercionFields(schema *Schema) (intFields, yesnoFields []string) {
	if schema == nil {
		return nil, nil
	}
	for _, f := range schema.Fields {
		switch strings.ToLower(f.Type) {
		case "int", "integer":
			intFields = append(intFields, f.Name)
		case "yesno", "bool", "boolean":
			yesnoFields = append(yesnoFields, f.Name)
		}
	}
	return intFields, yesnoFields
}
