package luceneql

import "strings"

// DefaultField is the field unprefixed terms are bound to when the
// parser is built without an explicit default.
const DefaultField = "text"

// Option configures a Parser.
type Option func(*parserConfig)

type parserConfig struct {
	defaultField string
	intFields    []string
	yesnoFields  []string
	schema       *Schema
	extraRules   []Rule
}

// WithDefaultField overrides the field unprefixed terms bind to. Mostly
// useful with the package-level Translate and Validate helpers.
func WithDefaultField(field string) Option {
	return func(c *parserConfig) { c.defaultField = field }
}

// WithIntFields sets the fields whose words are coerced to integers,
// replacing the default set.
func WithIntFields(fields ...string) Option {
	return func(c *parserConfig) { c.intFields = fields }
}

// WithYesNoFields sets the fields whose words are coerced to 0/1,
// replacing the default set.
func WithYesNoFields(fields ...string) Option {
	return func(c *parserConfig) { c.yesnoFields = fields }
}

// WithSchema adds coercion fields derived from a schema's field types.
func WithSchema(schema *Schema) Option {
	return func(c *parserConfig) { c.schema = schema }
}

// WithRules appends custom coercion rules. Later rules win when a field
// name is bound more than once.
func WithRules(rules ...Rule) Option {
	return func(c *parserConfig) { c.extraRules = append(c.extraRules, rules...) }
}

// Parser is a configured grammar: a default field plus the coercion
// functions resolved per field. It is immutable once built and safe for
// concurrent use.
type Parser struct {
	defaultField string
	coercers     map[string]CoerceFunc
}

// NewParser builds a parser bound to defaultField. With no options the
// integer fields are {"count", "number"} and the yes/no fields are
// {"is_active", "is_ready"}.
func NewParser(defaultField string, opts ...Option) *Parser {
	if defaultField == "" {
		defaultField = DefaultField
	}

	cfg := parserConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.defaultField != "" {
		defaultField = cfg.defaultField
	}

	intFields := cfg.intFields
	if intFields == nil {
		intFields = defaultIntFields
	}
	yesnoFields := cfg.yesnoFields
	if yesnoFields == nil {
		yesnoFields = defaultYesNoFields
	}

	schemaInts, schemaYesNos := coercionFields(cfg.schema)
	intFields = append(append([]string{}, intFields...), schemaInts...)
	yesnoFields = append(append([]string{}, yesnoFields...), schemaYesNos...)

	rules := []Rule{IntRule(intFields...), YesNoRule(yesnoFields...)}
	rules = append(rules, cfg.extraRules...)

	coercers := make(map[string]CoerceFunc)
	for _, rule := range rules {
		for _, field := range rule.Fields {
			coercers[field] = rule.Bind(field)
		}
	}

	return &Parser{
		defaultField: defaultField,
		coercers:     coercers,
	}
}

// Parse compiles a query string into a query tree. A nil tree with a nil
// error means the query compiled to nothing (empty input, or every clause
// dropped by coercion).
func (p *Parser) Parse(query string) (Node, error) {
	pq, err := parseLucene(query)
	if err != nil {
		return nil, syntaxError(err)
	}
	if pq.Expr == nil {
		return nil, nil
	}
	return p.convertOr(pq.Expr), nil
}

func (p *Parser) convertOr(or *pOrExpr) Node {
	children := make([]Node, 0, 1+len(or.Right))
	if n := p.convertAnd(or.Left); n != nil {
		children = append(children, n)
	}
	for _, right := range or.Right {
		if n := p.convertAnd(right); n != nil {
			children = append(children, n)
		}
	}

	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return &GroupNode{Op: KindOr, Children: children}
}

func (p *Parser) convertAnd(and *pAndExpr) Node {
	children := []Node{}
	if n := p.convertUnary(and.Left); n != nil {
		children = append(children, n)
	}

	for _, tail := range and.Right {
		right := p.convertUnary(tail.Right)
		if tail.Op != "NOT" {
			if right != nil {
				children = append(children, right)
			}
			continue
		}

		// The binary "a NOT b" form. If a coercion drop removed one
		// side, the compound degenerates to what survives.
		if right == nil {
			continue
		}
		if len(children) == 0 {
			children = append(children, &GroupNode{Op: KindNot, Children: []Node{right}})
			continue
		}
		last := len(children) - 1
		children[last] = &AndNotNode{Keep: children[last], Exclude: right}
	}

	switch len(children) {
	case 0:
		return nil
	case 1:
		return children[0]
	}
	return &GroupNode{Op: KindAnd, Children: children}
}

func (p *Parser) convertUnary(u *pUnary) Node {
	switch {
	case u.Not != nil:
		child := p.convertUnary(u.Not)
		if child == nil {
			return nil
		}
		return &GroupNode{Op: KindNot, Children: []Node{child}}
	case u.Exclude != nil:
		child := p.convertUnary(u.Exclude)
		if child == nil {
			return nil
		}
		return &GroupNode{Op: KindNot, Children: []Node{child}}
	case u.Require != nil:
		return p.convertUnary(u.Require)
	default:
		return p.convertPrimary(u.Term)
	}
}

func (p *Parser) convertPrimary(prim *pPrimary) Node {
	switch {
	case prim.Group != nil:
		return p.convertOr(prim.Group)
	case prim.Every:
		return &EveryNode{}
	default:
		return p.convertTerm(prim.Term)
	}
}

func (p *Parser) convertTerm(term *pTerm) Node {
	field := p.defaultField
	if term.Field != nil {
		field = *term.Field
	}

	value := term.Value
	if value.Phrase != nil {
		words := strings.Fields(unquote(*value.Phrase))
		if len(words) == 0 {
			return nil
		}
		if len(words) > 1 {
			// Multi-word phrases pass through coercion untouched.
			return &TermNode{Field: field, Words: words}
		}
		return p.coerceWord(field, words[0])
	}

	word := *value.Word
	if value.Wild {
		return &PrefixNode{Field: field, Prefix: word}
	}
	return p.coerceWord(field, word)
}

// coerceWord applies the field's coercion function to a single word, or
// returns a plain leaf when the field has no rule. A false return from
// the rule drops the node.
func (p *Parser) coerceWord(field, word string) Node {
	fn, ok := p.coercers[field]
	if !ok {
		return &TermNode{Field: field, Words: []string{word}}
	}
	node, keep := fn(word)
	if !keep {
		return nil
	}
	return node
}
