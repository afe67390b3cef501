package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/apexql/pkg/parser"
	"github.com/leapstack-labs/apexql/pkg/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

// ---------- Keyword Tests ----------

func TestKeywordsCaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want token.Kind
	}{
		{"lower class", "class", token.Class},
		{"upper class", "CLASS", token.Class},
		{"mixed class", "Class", token.Class},
		{"mixed select", "SeLeCt", token.Select},
		{"upper null", "NULL", token.Null},
		{"mixed instanceof", "InstanceOf", token.Instanceof},
		{"upper testmethod", "TESTMETHOD", token.TestMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parser.Tokenize(tt.src)
			require.Len(t, tokens, 2)
			assert.Equal(t, tt.want, tokens[0].Kind)
			assert.Equal(t, token.EOF, tokens[1].Kind)
		})
	}
}

func TestSharingPhrases(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"with sharing", "with sharing class", []token.Kind{token.WithSharing, token.Class, token.EOF}},
		{"without sharing", "WITHOUT SHARING", []token.Kind{token.WithoutSharing, token.EOF}},
		{"inherited sharing", "Inherited Sharing", []token.Kind{token.InheritedSharing, token.EOF}},
		// A bare "with" is an ordinary identifier (used by SOQL clauses).
		{"bare with", "with security_enforced", []token.Kind{token.Ident, token.Ident, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(parser.Tokenize(tt.src)))
		})
	}
}

// ---------- Literal Tests ----------

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kind  token.Kind
		whole int64
		real  float64
	}{
		{"decimal", "42", token.IntLit, 42, 0},
		{"long suffix", "42L", token.LongLit, 42, 0},
		{"long lower suffix", "42l", token.LongLit, 42, 0},
		{"hex", "0x1F", token.IntLit, 31, 0},
		{"hex long", "0x1FL", token.LongLit, 31, 0},
		{"binary", "0b1010", token.IntLit, 10, 0},
		{"octal", "0755", token.IntLit, 493, 0},
		// The L suffix wins over the octal rule: plain decimal value.
		{"octal-looking long", "0755L", token.LongLit, 755, 0},
		{"leading zero with 8", "0758", token.IntLit, 758, 0},
		{"double", "3.14", token.DoubleLit, 0, 3.14},
		{"double exponent", "1.5e2", token.DoubleLit, 0, 150},
		{"double negative exponent", "2.5E-1", token.DoubleLit, 0, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parser.Tokenize(tt.src)
			require.Len(t, tokens, 2)
			tok := tokens[0]
			assert.Equal(t, tt.kind, tok.Kind)
			switch tt.kind {
			case token.DoubleLit:
				assert.InDelta(t, tt.real, tok.Float, 1e-9)
			default:
				assert.Equal(t, tt.whole, tok.Int)
			}
		})
	}
}

func TestExponentNeedsFraction(t *testing.T) {
	// "1e10" is not a double literal: the integer 1 then an identifier.
	tokens := parser.Tokenize("1e10")
	require.Len(t, tokens, 3)
	assert.Equal(t, token.IntLit, tokens[0].Kind)
	assert.Equal(t, token.Ident, tokens[1].Kind)
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "'hello'", "hello"},
		{"empty", "''", ""},
		{"newline escape", `'he\nllo'`, "he\nllo"},
		{"tab escape", `'a\tb'`, "a\tb"},
		{"quote escape", `'it\'s'`, "it's"},
		{"backslash escape", `'a\\b'`, `a\b`},
		{"unknown escape kept", `'a\qb'`, `a\qb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parser.Tokenize(tt.src)
			require.Len(t, tokens, 2)
			assert.Equal(t, token.StrLit, tokens[0].Kind)
			assert.Equal(t, tt.want, tokens[0].Str)
		})
	}
}

func TestUnterminatedStringSkipped(t *testing.T) {
	tokens := parser.Tokenize("x = 'oops")
	assert.Equal(t, []token.Kind{token.Ident, token.Assign, token.EOF}, kinds(tokens))
}

// ---------- Operator Tests ----------

func TestOperatorsLongestMatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"shift vs gt", ">>> >> >", []token.Kind{token.UShr, token.Shr, token.Gt, token.EOF}},
		{"exact equality", "=== == =", []token.Kind{token.ExactEq, token.Eq, token.Assign, token.EOF}},
		{"compound shifts", ">>>= >>=", []token.Kind{token.UShrAssign, token.ShrAssign, token.EOF}},
		{"safe navigation", "a?.b ?? c", []token.Kind{token.Ident, token.QuestionDot, token.Ident, token.QuestionQuestion, token.Ident, token.EOF}},
		{"map arrow", "1 => 2", []token.Kind{token.IntLit, token.Arrow, token.IntLit, token.EOF}},
		{"not equal forms", "!= <> !==", []token.Kind{token.NotEq, token.LtGt, token.ExactNotEq, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, kinds(parser.Tokenize(tt.src)))
		})
	}
}

func TestAnnotationToken(t *testing.T) {
	tokens := parser.Tokenize("@isTest class")
	require.Len(t, tokens, 3)
	assert.Equal(t, token.Annotation, tokens[0].Kind)
	assert.Equal(t, "isTest", tokens[0].Text)
	assert.Equal(t, token.Class, tokens[1].Kind)
}

// ---------- Comment and Span Tests ----------

func TestCommentsSkipped(t *testing.T) {
	src := "a // line comment\n/* block\ncomment */ b"
	tokens := parser.Tokenize(src)
	assert.Equal(t, []token.Kind{token.Ident, token.Ident, token.EOF}, kinds(tokens))
}

func TestTokenSpans(t *testing.T) {
	src := "class Foo { }"
	tokens := parser.Tokenize(src)
	require.Len(t, tokens, 5)

	for _, tok := range tokens[:4] {
		assert.Less(t, tok.Span.Start, tok.Span.End, "token %s", tok)
		assert.Equal(t, tok.Text, src[tok.Span.Start:tok.Span.End])
	}
	assert.Equal(t, token.Ident, tokens[1].Kind)
	assert.Equal(t, "Foo", tokens[1].Text)
	assert.Equal(t, 6, tokens[1].Span.Start)
	assert.Equal(t, 9, tokens[1].Span.End)
}

func TestTokenPositions(t *testing.T) {
	tokens := parser.Tokenize("a\n  b")
	require.Len(t, tokens, 3)
	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[0].Pos.Column)
	assert.Equal(t, 2, tokens[1].Pos.Line)
	assert.Equal(t, 3, tokens[1].Pos.Column)
}
