// Package parser turns SQL text into a core.Statement.
//
// # Usage
//
//	stmt, err := parser.Parse("SELECT a, b FROM t WHERE x = 1")
//	if err != nil {
//	    // *ParseError
//	}
//
// # Grammar Overview
//
// The parser is a recursive descent parser with Pratt-style expression
// parsing. It models SELECT and DELETE fully:
//
//	statement     → (select_stmt | delete_stmt | other_stmt) [";"]
//	select_stmt   → SELECT [DISTINCT|ALL] select_list [FROM from_clause]
//	                [WHERE expr] [GROUP BY expr_list] [HAVING expr]
//	                [ORDER BY order_list] [LIMIT expr] [OFFSET expr]
//	delete_stmt   → DELETE FROM from_clause [WHERE expr]
//	other_stmt    → statement_keyword token*
//
// Any other statement (INSERT, UPDATE, WITH, ...) is recognized by its
// leading keyword and returned as core.StmtOther so callers can reject it
// by kind instead of by syntax error.
package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/geosql/pkg/core"
	"github.com/leapstack-labs/geosql/pkg/token"
)

// Parser parses SQL into an AST.
type Parser struct {
	lexer  *Lexer
	token  token.Token // current token
	peek   token.Token // lookahead token
	peek2  token.Token // second lookahead token
	errors []error
}

// NewParser creates a new parser for the given SQL input.
func NewParser(sql string) *Parser {
	p := &Parser{lexer: NewLexer(sql)}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a single SQL statement. An optional trailing semicolon is
// accepted; anything after it is an error.
func Parse(sql string) (*core.Statement, error) {
	p := NewParser(sql)
	stmt := p.parseStatement()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return stmt, nil
}

// ParseExpr parses a standalone expression such as a WHERE predicate.
func ParseExpr(sql string) (core.Expr, error) {
	p := NewParser(sql)
	if p.check(token.EOF) {
		p.addError(ErrEmptyStatement)
		return nil, p.errors[0]
	}
	expr := p.parseExpression()
	if !p.check(token.EOF) && len(p.errors) == 0 {
		p.addError(fmt.Sprintf(ErrTrailingInput, p.token.Type))
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return expr, nil
}

// ---------- Token Helpers ----------

func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

func (p *Parser) checkPeek2(t token.TokenType) bool {
	return p.peek2.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	return false
}

func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// failed reports whether any error has been recorded. Parsing loops bail
// out on the first error so a malformed input cannot spin.
func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

// describe renders a token for error messages.
func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.ILLEGAL:
		return fmt.Sprintf("ILLEGAL(%q)", tok.Literal)
	case token.IDENT, token.NUMBER, token.STRING:
		return fmt.Sprintf("%s(%s)", tok.Type, tok.Literal)
	default:
		return tok.Type.String()
	}
}

// statementKeywords are the leading words of statements the parser
// recognizes without modelling them.
var statementKeywords = map[string]bool{
	"alter":    true,
	"analyze":  true,
	"begin":    true,
	"call":     true,
	"comment":  true,
	"commit":   true,
	"copy":     true,
	"create":   true,
	"do":       true,
	"drop":     true,
	"execute":  true,
	"explain":  true,
	"grant":    true,
	"insert":   true,
	"lock":     true,
	"merge":    true,
	"replace":  true,
	"revoke":   true,
	"rollback": true,
	"set":      true,
	"show":     true,
	"table":    true,
	"truncate": true,
	"update":   true,
	"upsert":   true,
	"vacuum":   true,
	"values":   true,
	"with":     true,
}

// keywordOf returns the lowercase statement keyword of the current token.
func (p *Parser) keywordOf() (string, bool) {
	if p.token.Quoted {
		return "", false
	}
	word := strings.ToLower(p.token.Literal)
	return word, statementKeywords[word]
}
