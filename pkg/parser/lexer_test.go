package parser

import (
	"testing"

	"github.com/leapstack-labs/geosql/pkg/token"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize(`SELECT "Col", 'a''b' FROM t WHERE x <> 1.5 AND y != -2;`)

	types := make([]token.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}

	assert.Equal(t, []token.TokenType{
		token.SELECT, token.IDENT, token.COMMA, token.STRING, token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.NE, token.NUMBER, token.AND, token.IDENT,
		token.NE, token.MINUS, token.NUMBER, token.SEMICOLON, token.EOF,
	}, types)

	assert.True(t, tokens[1].Quoted)
	assert.Equal(t, "Col", tokens[1].Literal)
	assert.Equal(t, "a'b", tokens[3].Literal)
	assert.Equal(t, "1.5", tokens[9].Literal)
}

func TestLexer_Positions(t *testing.T) {
	l := NewLexer("SELECT\n  a")

	first := l.NextToken()
	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, first.Pos)

	second := l.NextToken()
	assert.Equal(t, 2, second.Pos.Line)
	assert.Equal(t, 3, second.Pos.Column)
	assert.Equal(t, 9, second.Pos.Offset)
}

func TestLexer_Unterminated(t *testing.T) {
	tokens := Tokenize(`'abc`)
	assert.Equal(t, token.ILLEGAL, tokens[0].Type)
	assert.Equal(t, `'abc`, tokens[0].Literal)

	tokens = Tokenize(`"abc`)
	assert.Equal(t, token.ILLEGAL, tokens[0].Type)
	assert.False(t, tokens[0].Quoted)
}

func TestLexer_NumberForms(t *testing.T) {
	for _, in := range []string{"1", "12.5", ".5", "1e10", "2E-3", "3e+7"} {
		tokens := Tokenize(in)
		assert.Equal(t, token.NUMBER, tokens[0].Type, in)
		assert.Equal(t, in, tokens[0].Literal, in)
	}
}

func TestLexer_IncompleteExponent(t *testing.T) {
	tests := []struct {
		input  string
		types  []token.TokenType
		number string
	}{
		{"1e", []token.TokenType{token.NUMBER, token.IDENT, token.EOF}, "1"},
		{"1e+", []token.TokenType{token.NUMBER, token.IDENT, token.PLUS, token.EOF}, "1"},
		{"2.5E-", []token.TokenType{token.NUMBER, token.IDENT, token.MINUS, token.EOF}, "2.5"},
		{"1e-x", []token.TokenType{token.NUMBER, token.IDENT, token.MINUS, token.IDENT, token.EOF}, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			types := make([]token.TokenType, 0, len(tokens))
			for _, tok := range tokens {
				types = append(types, tok.Type)
			}
			assert.Equal(t, tt.types, types)
			assert.Equal(t, tt.number, tokens[0].Literal)
		})
	}
}
