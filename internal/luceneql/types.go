// Package luceneql translates Lucene-style boolean/field queries into
// Amazon CloudSearch structured-query syntax. Queries are parsed into a
// compiled tree of boolean and leaf nodes, coerced per field type, and
// serialized into the parenthesized S-expression form CloudSearch expects.
package luceneql

import (
	"fmt"
	"strings"
)

// NodeKind identifies the kind of a compiled query tree node.
type NodeKind string

const (
	KindTerm   NodeKind = "term"
	KindAnd    NodeKind = "and"
	KindOr     NodeKind = "or"
	KindNot    NodeKind = "not"
	KindAndNot NodeKind = "andnot"
	KindPrefix NodeKind = "prefix"
	KindEvery  NodeKind = "every"
)

// Node is a node in the compiled query tree. The tree is immutable once
// built and owns its children exclusively.
type Node interface {
	Kind() NodeKind
	// String returns the canonical Lucene form of the node.
	String() string
	// Repr returns a debug representation of the node.
	Repr() string
}

// TermNode is a leaf: a single word or a multi-word phrase bound to a
// field. IntField marks leaves rewritten by a coercion rule; they render
// in unquoted field:value form.
type TermNode struct {
	Field    string
	Words    []string
	IntField bool
}

func (t *TermNode) Kind() NodeKind { return KindTerm }

func (t *TermNode) String() string {
	if len(t.Words) > 1 {
		return t.Field + `:"` + strings.Join(t.Words, " ") + `"`
	}
	return t.Field + ":" + t.Words[0]
}

func (t *TermNode) Repr() string {
	if t.IntField {
		return fmt.Sprintf("Int(%s, %s)", t.Field, t.Words[0])
	}
	if len(t.Words) > 1 {
		return fmt.Sprintf("Phrase(%s, %q)", t.Field, strings.Join(t.Words, " "))
	}
	return fmt.Sprintf("Term(%s, %q)", t.Field, t.Words[0])
}

// GroupNode is a boolean group. Op is KindAnd, KindOr or KindNot. NOT
// carries exactly one child; AND/OR carry one or more. Child order is
// preserved through serialization.
type GroupNode struct {
	Op       NodeKind
	Children []Node
}

func (g *GroupNode) Kind() NodeKind { return g.Op }

func (g *GroupNode) String() string {
	if g.Op == KindNot {
		if len(g.Children) == 0 {
			return "NOT ()"
		}
		return "NOT " + g.Children[0].String()
	}
	op := " " + strings.ToUpper(string(g.Op)) + " "
	parts := make([]string, 0, len(g.Children))
	for _, c := range g.Children {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, op) + ")"
}

func (g *GroupNode) Repr() string {
	parts := make([]string, 0, len(g.Children))
	for _, c := range g.Children {
		parts = append(parts, c.Repr())
	}
	name := map[NodeKind]string{KindAnd: "And", KindOr: "Or", KindNot: "Not"}[g.Op]
	return name + "([" + strings.Join(parts, ", ") + "])"
}

// AndNotNode matches Keep while excluding documents matching Exclude. It
// always has exactly these two children, in that order. Serialization
// decomposes it into nested AND/NOT groups.
type AndNotNode struct {
	Keep    Node
	Exclude Node
}

func (a *AndNotNode) Kind() NodeKind { return KindAndNot }

func (a *AndNotNode) String() string {
	return "(" + a.Keep.String() + " NOT " + a.Exclude.String() + ")"
}

func (a *AndNotNode) Repr() string {
	return "AndNot(" + a.Keep.Repr() + ", " + a.Exclude.Repr() + ")"
}

// PrefixNode is a prefix-wildcard term (foo*). The grammar accepts it but
// no renderer is registered for it, so translating one fails with
// ErrCodeUnsupportedClause.
type PrefixNode struct {
	Field  string
	Prefix string
}

func (p *PrefixNode) Kind() NodeKind { return KindPrefix }
func (p *PrefixNode) String() string { return p.Field + ":" + p.Prefix + "*" }
func (p *PrefixNode) Repr() string {
	return fmt.Sprintf("Prefix(%s, %q)", p.Field, p.Prefix)
}

// EveryNode is the *:* match-all operator. Parsed but not renderable.
type EveryNode struct{}

func (e *EveryNode) Kind() NodeKind { return KindEvery }
func (e *EveryNode) String() string { return "*:*" }
func (e *EveryNode) Repr() string   { return "Every()" }

// ParseError represents an error from parsing or rendering a query.
type ParseError struct {
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Position *Position `json:"position,omitempty"`
}

func (e *ParseError) Error() string {
	return e.Message
}

// Position is a location in the source query string.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error codes for parse and render errors.
const (
	ErrCodeSyntax            = "SYNTAX_ERROR"
	ErrCodeUnsupportedClause = "UNSUPPORTED_CLAUSE"
	ErrCodeEmptyGroup        = "EMPTY_GROUP"
	ErrCodeDuplicateHandler  = "DUPLICATE_HANDLER"
)

// FieldInfo describes one field in a schema.
type FieldInfo struct {
	Name string `json:"name" koanf:"name"`
	Type string `json:"type" koanf:"type"`
}

// Schema declares field types so coercion sets can be derived from it
// instead of listed by hand. Fields typed "int" join the integer set;
// fields typed "yesno" or "bool" join the yes/no set.
type Schema struct {
	Fields []FieldInfo `json:"fields" koanf:"fields"`
}

// TranslateResult is the outcome of translating a Lucene query.
type TranslateResult struct {
	CloudSearch string      `json:"cloudsearch"`
	LuceneForm  string      `json:"lucene_form"`
	Valid       bool        `json:"valid"`
	Error       *ParseError `json:"error,omitempty"`
	FieldsUsed  []string    `json:"fields_used"`
}

// ValidateResult is the outcome of validating a Lucene query.
type ValidateResult struct {
	Valid bool        `json:"valid"`
	Error *ParseError `json:"error,omitempty"`
}
