package lexer

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/jcgregorio/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispy/diag"
	"github.com/luthersystems/lispy/parser/token"
)

type item struct {
	typ  token.Type
	text string
}

func TestLex(t *testing.T) {
	testCases := []struct {
		input string
		items []item
	}{
		{
			input: "(print (+ 1 2))",
			items: []item{
				{token.LParen, "("},
				{token.Print, "print"},
				{token.LParen, "("},
				{token.Plus, "+"},
				{token.Integer, "1"},
				{token.Integer, "2"},
				{token.RParen, ")"},
				{token.RParen, ")"},
			},
		},
		{
			input: "(define f (lambda (a b) (+ a b)))",
			items: []item{
				{token.LParen, "("},
				{token.Define, "define"},
				{token.Identifier, "f"},
				{token.LParen, "("},
				{token.Lambda, "lambda"},
				{token.LParen, "("},
				{token.Identifier, "a"},
				{token.Identifier, "b"},
				{token.RParen, ")"},
				{token.LParen, "("},
				{token.Plus, "+"},
				{token.Identifier, "a"},
				{token.Identifier, "b"},
				{token.RParen, ")"},
				{token.RParen, ")"},
				{token.RParen, ")"},
			},
		},
		{
			input: "('f (4 6))",
			items: []item{
				{token.LParen, "("},
				{token.Quote, "'"},
				{token.Identifier, "f"},
				{token.LParen, "("},
				{token.Integer, "4"},
				{token.Integer, "6"},
				{token.RParen, ")"},
				{token.RParen, ")"},
			},
		},
		{
			input: "(if (< 3 4) (true) (false))",
			items: []item{
				{token.LParen, "("},
				{token.If, "if"},
				{token.LParen, "("},
				{token.Lt, "<"},
				{token.Integer, "3"},
				{token.Integer, "4"},
				{token.RParen, ")"},
				{token.LParen, "("},
				{token.True, "true"},
				{token.RParen, ")"},
				{token.LParen, "("},
				{token.False, "false"},
				{token.RParen, ")"},
				{token.RParen, ")"},
			},
		},
		{
			input: "(> = readn reads)",
			items: []item{
				{token.LParen, "("},
				{token.Gt, ">"},
				{token.Eq, "="},
				{token.ReadN, "readn"},
				{token.ReadS, "reads"},
				{token.RParen, ")"},
			},
		},
		{
			input: "-5",
			items: []item{
				{token.Minus, "-"},
				{token.Integer, "5"},
			},
		},
		{
			input: "Define PRINT _x1 print_",
			items: []item{
				{token.Identifier, "Define"},
				{token.Identifier, "PRINT"},
				{token.Identifier, "_x1"},
				{token.Identifier, "print_"},
			},
		},
		{
			input: "; a comment\n(x) ; trailing\r\n\t42",
			items: []item{
				{token.LParen, "("},
				{token.Identifier, "x"},
				{token.RParen, ")"},
				{token.Integer, "42"},
			},
		},
		{
			input: `("hello world" "" "a\nb")`,
			items: []item{
				{token.LParen, "("},
				{token.String, `"hello world"`},
				{token.String, `""`},
				{token.String, `"a\nb"`},
				{token.RParen, ")"},
			},
		},
		{
			input: "(x $ y)",
			items: []item{
				{token.LParen, "("},
				{token.Identifier, "x"},
				{token.Error, "$"},
				{token.Identifier, "y"},
				{token.RParen, ")"},
			},
		},
		{
			input: "12abc",
			items: []item{
				{token.Integer, "12"},
				{token.Identifier, "abc"},
			},
		},
	}
	for _, tc := range testCases {
		toks := Tokenize(tc.input)
		if got, want := len(toks), len(tc.items); got != want {
			t.Fatalf("Wrong number of tokens for %q: Got %v Want %v", tc.input, got, want)
		}
		for i, ex := range tc.items {
			if got, want := toks[i].Type, ex.typ; got != want {
				t.Fatalf("Wrong type for %q token %d: Got %v Want %v", tc.input, i, got, want)
			}
			if got, want := toks[i].Text(tc.input), ex.text; got != want {
				t.Fatalf("Wrong value for %q token %d: Got %v Want %v", tc.input, i, got, want)
			}
		}
	}
}

func TestLexStringLiteral(t *testing.T) {
	src := `"hello" "" "a b"`
	toks := Tokenize(src)
	require.Len(t, toks, 3)
	assert.Equal(t, "hello", toks[0].Literal(src))
	assert.Equal(t, token.Span{Start: 0, End: 6}, toks[0].Span)
	assert.Equal(t, "", toks[1].Literal(src))
	assert.Equal(t, "a b", toks[2].Literal(src))
}

func TestLexUnterminatedString(t *testing.T) {
	var buf syncBuffer
	l := logger.NewFromOptions(&logger.Options{SyncWriter: &buf})

	src := "(print (\"abc"
	toks := Tokenize(src, WithLogger(l))
	require.Len(t, toks, 4)
	last := toks[3]
	assert.Equal(t, token.String, last.Type)
	assert.Equal(t, len(src)-1, last.Span.End)
	assert.Equal(t, "abc", last.Literal(src))
	assert.Contains(t, buf.String(), "unterminated string literal")
}

func TestLexErrors(t *testing.T) {
	testCases := []string{
		"(x $)",
		"(print (\"ok\") ] )",
		"(é # x)",
		"\xff(1)",
	}
	for _, tc := range testCases {
		toks := Tokenize(tc)
		err := Errors(tc, toks)
		if err == nil {
			t.Errorf("%q should have failed to lex", tc)
			continue
		}
		assert.True(t, diag.IsKind(err, diag.LexError), "%q: %v", tc, err)
	}
	assert.NoError(t, Errors("(+ 1 2)", Tokenize("(+ 1 2)")))
}

func TestLexErrorsAggregated(t *testing.T) {
	src := "(# 1 @ 2 ~)"
	err := Errors(src, Tokenize(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 errors occurred")
}

func TestLexInvalidUTF8(t *testing.T) {
	src := "(a \xff b)"
	toks := Tokenize(src)
	require.Len(t, toks, 5)
	assert.Equal(t, token.Error, toks[2].Type)
	assert.Equal(t, token.Span{Start: 3, End: 3}, toks[2].Span)
	assert.Equal(t, token.Identifier, toks[3].Type)
}

func TestLexMultibyteSpans(t *testing.T) {
	src := "(λx ∀)"
	toks := Tokenize(src)
	require.Len(t, toks, 4)
	assert.Equal(t, token.Identifier, toks[1].Type)
	assert.Equal(t, "λx", toks[1].Text(src))
	assert.Equal(t, token.Error, toks[2].Type)
	assert.Equal(t, "∀", toks[2].Text(src))
	assert.Equal(t, 3, toks[2].Span.Len())
}

func TestLexTotality(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"(",
		")",
		"\"",
		";",
		"; only a comment",
		"\xff\xfe",
		"(((((",
		"'''",
		"(define x (\"unterminated",
		"abc\x00def",
		"9223372036854775808",
		"\t\r\n",
	}
	for b := 0; b < 256; b++ {
		inputs = append(inputs, string([]byte{byte(b)}), "(a"+string([]byte{byte(b)})+"1)")
	}
	for _, src := range inputs {
		for _, tok := range Tokenize(src) {
			s := tok.Span
			if s.Start < 0 || s.Start > s.End || s.End >= len(src) {
				t.Fatalf("span %v out of bounds for %q", s, src)
			}
		}
	}
}

func TestLexIntegerRoundTrip(t *testing.T) {
	values := []int64{0, 1, 7, 10, 42, 1000, 123456789, math.MaxInt32, math.MaxInt64}
	for _, n := range values {
		src := strconv.FormatInt(n, 10)
		toks := Tokenize(src)
		require.Len(t, toks, 1, src)
		assert.Equal(t, token.Integer, toks[0].Type)
		assert.Equal(t, src, toks[0].Text(src))
	}
}

type syncBuffer struct {
	bytes.Buffer
}

func (b *syncBuffer) Sync() error {
	return nil
}
