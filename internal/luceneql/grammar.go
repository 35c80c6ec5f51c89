package luceneql

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var luceneLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t\n\r]+`},

	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},

	// Boolean operators are uppercase-only, as in Lucene. The word
	// boundary keeps ANDroid and friends lexing as plain words.
	{Name: "Keyword", Pattern: `AND\b|OR\b|NOT\b`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},

	{Name: "Colon", Pattern: `:`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},

	{Name: "Word", Pattern: `[^\s:()"'*+-][^\s:()"'*]*`},
})

// pQuery is the top-level query. An empty input is a valid empty query.
type pQuery struct {
	Expr *pOrExpr `parser:"@@?"`
}

// pOrExpr handles OR precedence (lowest).
type pOrExpr struct {
	Left  *pAndExpr   `parser:"@@"`
	Right []*pAndExpr `parser:"( 'OR' @@ )*"`
}

// pAndExpr handles conjunction: explicit AND, the binary NOT form
// ("a NOT b"), and implicit adjacency ("a b"), all at the same level.
type pAndExpr struct {
	Left  *pUnary     `parser:"@@"`
	Right []*pAndTail `parser:"@@*"`
}

type pAndTail struct {
	Op    string  `parser:"@( 'AND' | 'NOT' )?"`
	Right *pUnary `parser:"@@"`
}

// pUnary handles prefix operators: NOT, and the +/- shortcuts for
// required/excluded clauses.
type pUnary struct {
	Not     *pUnary   `parser:"  'NOT' @@"`
	Require *pUnary   `parser:"| Plus @@"`
	Exclude *pUnary   `parser:"| Minus @@"`
	Term    *pPrimary `parser:"| @@"`
}

type pPrimary struct {
	Group *pOrExpr `parser:"  LParen @@ RParen"`
	Every bool     `parser:"| @(Star Colon Star)"`
	Term  *pTerm   `parser:"| @@"`
}

// pTerm is a word or phrase with an optional field: prefix.
type pTerm struct {
	Field *string `parser:"( @Word Colon )?"`
	Value *pValue `parser:"@@"`
}

// pValue is a bare word or a quoted phrase, optionally followed by the
// prefix-wildcard star.
type pValue struct {
	Phrase *string `parser:"( @String"`
	Word   *string `parser:"| @Word )"`
	Wild   bool    `parser:"@Star?"`
}

var luceneParser = participle.MustBuild[pQuery](
	participle.Lexer(luceneLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// parseLucene parses a Lucene query string into the raw grammar tree.
func parseLucene(input string) (*pQuery, error) {
	return luceneParser.ParseString("", input)
}

// unquote strips the surrounding quotes from a String token and resolves
// escape sequences.
func unquote(s string) string {
	if len(s) >= 2 {
		return unescapeString(s[1 : len(s)-1])
	}
	return s
}

func unescapeString(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				result.WriteByte('\n')
			case 't':
				result.WriteByte('\t')
			case 'r':
				result.WriteByte('\r')
			case '\\':
				result.WriteByte('\\')
			case '"':
				result.WriteByte('"')
			case '\'':
				result.WriteByte('\'')
			default:
				// Unknown escape, keep as-is
				result.WriteByte(s[i+1])
			}
			i += 2
		} else {
			result.WriteByte(s[i])
			i++
		}
	}

	return result.String()
}

// syntaxError converts a participle error into a ParseError with position
// information when available.
func syntaxError(err error) *ParseError {
	perr := &ParseError{Code: ErrCodeSyntax, Message: err.Error()}
	var pe participle.Error
	if errors.As(err, &pe) {
		pos := pe.Position()
		perr.Position = &Position{Line: pos.Line, Column: pos.Column}
		perr.Message = pe.Message()
	}
	return perr
}
