package parser

import (
	"strconv"
	"strings"

	"github.com/leapstack-labs/apexql/pkg/token"
)

// Lexer tokenizes Apex source, including embedded SOQL/SOSL text. Keywords
// match case-insensitively. Invalid input bytes and malformed literals are
// skipped; the lexer never fails.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	peeked  *token.Token
	peeked2 *token.Token
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token. At end of input it returns EOF forever.
func (l *Lexer) NextToken() token.Token {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked, l.peeked2 = l.peeked2, nil
		return tok
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}

// PeekSecond returns the token after the next one without consuming either.
func (l *Lexer) PeekSecond() token.Token {
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	if l.peeked2 == nil {
		t := l.scan()
		l.peeked2 = &t
	}
	return *l.peeked2
}

func (l *Lexer) scan() token.Token {
	for {
		l.skipWhitespaceAndComments()

		start := l.pos
		pos := l.currentPos()

		switch {
		case l.ch == 0:
			return token.Token{Kind: token.EOF, Pos: pos, Span: token.Span{Start: start, End: start}}

		case isLetter(l.ch) || l.ch == '_':
			return l.readWord(start, pos)

		case isDigit(l.ch):
			if tok, ok := l.readNumber(start, pos); ok {
				return tok
			}
			continue

		case l.ch == '\'':
			if tok, ok := l.readString(start, pos); ok {
				return tok
			}
			continue

		case l.ch == '@':
			if isLetter(l.peekChar()) || l.peekChar() == '_' {
				l.readChar()
				nameStart := l.pos
				for isIdentChar(l.ch) {
					l.readChar()
				}
				return token.Token{
					Kind: token.Annotation,
					Text: l.input[nameStart:l.pos],
					Pos:  pos,
					Span: token.Span{Start: start, End: l.pos},
				}
			}
			l.readChar()
			continue

		default:
			if tok, ok := l.readOperator(start, pos); ok {
				return tok
			}
			// Not part of the token language. Skip and retry.
			l.readChar()
			continue
		}
	}
}

// readWord reads an identifier or keyword. The three sharing qualifiers are
// matched as whole phrases with a single separating space.
func (l *Lexer) readWord(start int, pos token.Position) token.Token {
	for isIdentChar(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.pos]
	kind := token.LookupIdent(text)

	if kind == token.Ident {
		if phrase, ok := l.matchSharingPhrase(text); ok {
			return token.Token{
				Kind: phrase,
				Text: l.input[start:l.pos],
				Pos:  pos,
				Span: token.Span{Start: start, End: l.pos},
			}
		}
	}

	return token.Token{
		Kind: kind,
		Text: text,
		Pos:  pos,
		Span: token.Span{Start: start, End: l.pos},
	}
}

// matchSharingPhrase consumes " sharing" after with/without/inherited.
func (l *Lexer) matchSharingPhrase(word string) (token.Kind, bool) {
	var kind token.Kind
	switch strings.ToLower(word) {
	case "with":
		kind = token.WithSharing
	case "without":
		kind = token.WithoutSharing
	case "inherited":
		kind = token.InheritedSharing
	default:
		return token.Ident, false
	}

	rest := l.input[l.pos:]
	if len(rest) < len(" sharing") || rest[0] != ' ' || !strings.EqualFold(rest[1:8], "sharing") {
		return token.Ident, false
	}
	if len(rest) > 8 && isIdentChar(rest[8]) {
		return token.Ident, false
	}
	for range " sharing" {
		l.readChar()
	}
	return kind, true
}

// readNumber reads integer, long, double, hex, binary and octal literals.
// Exponents are only recognized after a fractional part. Returns false when
// the literal does not fit int64 or float64.
func (l *Lexer) readNumber(start int, pos token.Position) (token.Token, bool) {
	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') && l.hasHexDigitAt(l.readPos+1) {
		l.readChar() // 0
		l.readChar() // x
		digitStart := l.pos
		for isHexDigit(l.ch) {
			l.readChar()
		}
		digits := l.input[digitStart:l.pos]
		kind := token.IntLit
		if l.ch == 'l' || l.ch == 'L' {
			kind = token.LongLit
			l.readChar()
		}
		return l.intToken(kind, digits, 16, start, pos)
	}

	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') && l.hasBinaryDigitAt(l.readPos+1) {
		l.readChar() // 0
		l.readChar() // b
		digitStart := l.pos
		for l.ch == '0' || l.ch == '1' {
			l.readChar()
		}
		return l.intToken(token.IntLit, l.input[digitStart:l.pos], 2, start, pos)
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	// Fractional part makes it a double.
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
		if l.ch == 'e' || l.ch == 'E' {
			if l.hasExponentAhead() {
				l.readChar()
				if l.ch == '+' || l.ch == '-' {
					l.readChar()
				}
				for isDigit(l.ch) {
					l.readChar()
				}
			}
		}
		text := l.input[start:l.pos]
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token.Token{}, false
		}
		return token.Token{
			Kind:  token.DoubleLit,
			Text:  text,
			Float: value,
			Pos:   pos,
			Span:  token.Span{Start: start, End: l.pos},
		}, true
	}

	digits := l.input[start:l.pos]
	if l.ch == 'l' || l.ch == 'L' {
		l.readChar()
		return l.intToken(token.LongLit, digits, 10, start, pos)
	}

	if len(digits) > 1 && digits[0] == '0' && isOctal(digits[1:]) {
		return l.intToken(token.IntLit, digits[1:], 8, start, pos)
	}
	return l.intToken(token.IntLit, digits, 10, start, pos)
}

func (l *Lexer) intToken(kind token.Kind, digits string, base int, start int, pos token.Position) (token.Token, bool) {
	value, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return token.Token{}, false
	}
	return token.Token{
		Kind: kind,
		Text: l.input[start:l.pos],
		Int:  value,
		Pos:  pos,
		Span: token.Span{Start: start, End: l.pos},
	}, true
}

func (l *Lexer) hasHexDigitAt(i int) bool {
	return i < len(l.input) && isHexDigit(l.input[i])
}

func (l *Lexer) hasBinaryDigitAt(i int) bool {
	return i < len(l.input) && (l.input[i] == '0' || l.input[i] == '1')
}

// hasExponentAhead reports whether the e/E at the current position begins a
// well-formed exponent. A bare trailing e stays outside the literal.
func (l *Lexer) hasExponentAhead() bool {
	i := l.readPos
	if i < len(l.input) && (l.input[i] == '+' || l.input[i] == '-') {
		i++
	}
	return i < len(l.input) && isDigit(l.input[i])
}

// readString reads a single-quoted string literal, resolving escapes.
// Unknown escapes keep the backslash. Returns false if the literal is
// unterminated.
func (l *Lexer) readString(start int, pos token.Position) (token.Token, bool) {
	l.readChar() // opening quote

	var sb strings.Builder
	for {
		switch l.ch {
		case 0:
			return token.Token{}, false
		case '\'':
			l.readChar()
			return token.Token{
				Kind: token.StrLit,
				Text: l.input[start:l.pos],
				Str:  sb.String(),
				Pos:  pos,
				Span: token.Span{Start: start, End: l.pos},
			}, true
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '\'', '"':
				sb.WriteByte(l.ch)
			case 0:
				return token.Token{}, false
			default:
				sb.WriteByte('\\')
				sb.WriteByte(l.ch)
			}
			l.readChar()
		default:
			sb.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// operators is ordered longest-first so that maximal munch falls out of a
// simple prefix scan.
var operators = []struct {
	text string
	kind token.Kind
}{
	{">>>=", token.UShrAssign},

	{"===", token.ExactEq},
	{"!==", token.ExactNotEq},
	{">>>", token.UShr},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},

	{"==", token.Eq},
	{"!=", token.NotEq},
	{"<>", token.LtGt},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"++", token.PlusPlus},
	{"--", token.MinusMinus},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
	{"&&", token.AmpAmp},
	{"||", token.PipePipe},
	{"??", token.QuestionQuestion},
	{"?.", token.QuestionDot},
	{"=>", token.Arrow},

	{"=", token.Assign},
	{"<", token.Lt},
	{">", token.Gt},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"&", token.Amp},
	{"|", token.Pipe},
	{"^", token.Caret},
	{"~", token.Tilde},
	{"!", token.Bang},
	{"?", token.Question},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{";", token.Semicolon},
	{":", token.Colon},
	{",", token.Comma},
	{".", token.Dot},
}

// readOperator matches the longest operator or delimiter at the current
// position.
func (l *Lexer) readOperator(start int, pos token.Position) (token.Token, bool) {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			for range op.text {
				l.readChar()
			}
			return token.Token{
				Kind: op.kind,
				Text: op.text,
				Pos:  pos,
				Span: token.Span{Start: start, End: l.pos},
			}, true
		}
	}
	return token.Token{}, false
}

// skipWhitespaceAndComments skips whitespace, line comments and block
// comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.readChar()
			l.readChar()
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
			continue
		}

		break
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isOctal(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return true
}

// Tokenize scans the entire source into a token slice ending with EOF.
func Tokenize(source string) []token.Token {
	l := NewLexer(source)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}
