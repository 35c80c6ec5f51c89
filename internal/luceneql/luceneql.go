package luceneql

import (
	"errors"
	"strings"
)

// defaultRenderer is the process-wide dispatch table. Building it fails
// only on a duplicate registration, which is a programming error, so it
// is fatal at startup.
var defaultRenderer = func() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}()

// Translate parses a Lucene query and renders its CloudSearch form.
// This is the main entry point for one-shot translation; callers doing
// many translations with the same configuration can hold a Parser and
// Renderer themselves.
func Translate(query string, opts ...Option) *TranslateResult {
	result := &TranslateResult{
		FieldsUsed: []string{},
	}

	if strings.TrimSpace(query) == "" {
		result.Valid = true
		return result
	}

	parser := NewParser(DefaultField, opts...)
	tree, err := parser.Parse(query)
	if err != nil {
		result.Error = asParseError(err)
		return result
	}

	rendered, err := defaultRenderer.Render(tree)
	if err != nil {
		result.Error = asParseError(err)
		return result
	}

	result.Valid = true
	result.CloudSearch = rendered
	if tree != nil {
		result.LuceneForm = tree.String()
		result.FieldsUsed = fieldsUsed(tree)
	}
	return result
}

// Validate checks that a query parses and renders without error, without
// returning the translation itself.
func Validate(query string, opts ...Option) *ValidateResult {
	result := &ValidateResult{}

	if strings.TrimSpace(query) == "" {
		result.Valid = true
		return result
	}

	parser := NewParser(DefaultField, opts...)
	tree, err := parser.Parse(query)
	if err != nil {
		result.Error = asParseError(err)
		return result
	}

	if _, err := defaultRenderer.Render(tree); err != nil {
		result.Error = asParseError(err)
		return result
	}

	result.Valid = true
	return result
}

// fieldsUsed collects the distinct field names referenced by leaves, in
// source order.
func fieldsUsed(node Node) []string {
	seen := make(map[string]bool)
	var fields []string

	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case *TermNode:
			if !seen[v.Field] {
				seen[v.Field] = true
				fields = append(fields, v.Field)
			}
		case *PrefixNode:
			if !seen[v.Field] {
				seen[v.Field] = true
				fields = append(fields, v.Field)
			}
		case *GroupNode:
			for _, c := range v.Children {
				walk(c)
			}
		case *AndNotNode:
			walk(v.Keep)
			walk(v.Exclude)
		}
	}
	walk(node)

	return fields
}

func asParseError(err error) *ParseError {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr
	}
	return &ParseError{Code: ErrCodeSyntax, Message: err.Error()}
}
