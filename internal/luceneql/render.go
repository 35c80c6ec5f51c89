package luceneql

import (
	"fmt"
	"strings"
)

// renderFunc writes one node kind into the output buffer, recursing
// through the renderer for children.
type renderFunc func(r *Renderer, b *strings.Builder, node Node) error

// Renderer serializes a compiled query tree into CloudSearch structured
// syntax. The kind→handler table is built once by NewRenderer and never
// mutated afterwards, so a Renderer is safe for concurrent use.
type Renderer struct {
	handlers map[NodeKind]renderFunc
}

// NewRenderer builds the clause dispatch table. Registering the same
// node kind twice is a construction-time error.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{handlers: make(map[NodeKind]renderFunc)}

	if err := r.register(renderTerm, KindTerm); err != nil {
		return nil, err
	}
	if err := r.register(renderGroup, KindAnd, KindOr, KindNot); err != nil {
		return nil, err
	}
	if err := r.register(renderAndNot, KindAndNot); err != nil {
		return nil, err
	}

	// KindPrefix and KindEvery deliberately have no handler; rendering
	// them surfaces an unsupported-clause error.
	return r, nil
}

func (r *Renderer) register(fn renderFunc, kinds ...NodeKind) error {
	for _, kind := range kinds {
		if _, exists := r.handlers[kind]; exists {
			return &ParseError{
				Code:    ErrCodeDuplicateHandler,
				Message: fmt.Sprintf("%s already has a handler", kind),
			}
		}
		r.handlers[kind] = fn
	}
	return nil
}

// Render walks the tree depth-first and returns the CloudSearch form.
// A nil tree renders to the empty string.
func (r *Renderer) Render(node Node) (string, error) {
	if node == nil {
		return "", nil
	}
	var b strings.Builder
	if err := r.walk(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) walk(b *strings.Builder, node Node) error {
	fn, ok := r.handlers[node.Kind()]
	if !ok {
		return &ParseError{
			Code:    ErrCodeUnsupportedClause,
			Message: fmt.Sprintf("no handler for %s clause", node.Kind()),
		}
	}
	return fn(r, b, node)
}

// renderTerm emits a leaf. Typed leaves use the bare field:value form,
// everything else the quoted (field name 'value') form. Values are
// emitted verbatim; escaping embedded quotes is the caller's problem.
func renderTerm(r *Renderer, b *strings.Builder, node Node) error {
	t := node.(*TermNode)
	if t.IntField {
		b.WriteString(t.Field)
		b.WriteString(":")
		b.WriteString(t.Words[0])
		return nil
	}

	b.WriteString("(field ")
	b.WriteString(t.Field)
	b.WriteString(" '")
	b.WriteString(strings.Join(t.Words, " "))
	b.WriteString("')")
	return nil
}

// renderGroup emits an AND/OR/NOT group with its children in source
// order, space-separated.
func renderGroup(r *Renderer, b *strings.Builder, node Node) error {
	g := node.(*GroupNode)
	if len(g.Children) == 0 {
		return &ParseError{
			Code:    ErrCodeEmptyGroup,
			Message: fmt.Sprintf("%s group has no operands", g.Op),
		}
	}

	b.WriteString("(")
	b.WriteString(string(g.Op))
	for _, child := range g.Children {
		b.WriteString(" ")
		if err := r.walk(b, child); err != nil {
			return err
		}
	}
	b.WriteString(")")
	return nil
}

// renderAndNot decomposes the binary AND-NOT operator into nested AND
// and NOT groups: (and <keep> (not <exclude>)).
func renderAndNot(r *Renderer, b *strings.Builder, node Node) error {
	a := node.(*AndNotNode)

	b.WriteString("(and ")
	if err := r.walk(b, a.Keep); err != nil {
		return err
	}
	b.WriteString(" (not ")
	if err := r.walk(b, a.Exclude); err != nil {
		return err
	}
	b.WriteString("))")
	return nil
}
