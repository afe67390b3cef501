// Package parser implements the Apex lexer and recursive-descent parser,
// including the embedded SOQL/SOSL query sub-parser. The parser is purely
// syntactic and stops at the first error.
package parser

import (
	"strings"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/token"
)

// Parser parses Apex source into a syntax tree.
type Parser struct {
	lexer   *Lexer
	current token.Token
}

// New creates a parser over the given source.
func New(source string) *Parser {
	lexer := NewLexer(source)
	return &Parser{
		lexer:   lexer,
		current: lexer.NextToken(),
	}
}

// Parse parses an Apex source string into a compilation unit.
func Parse(source string) (*ast.CompilationUnit, error) {
	return New(source).ParseCompilationUnit()
}

// ParseQuery parses standalone SOQL query text, without the surrounding
// brackets used when a query is embedded in Apex.
func ParseQuery(source string) (*ast.SoqlQuery, error) {
	p := New(source)
	query, err := p.parseSoqlQuery()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.unexpected("end of query")
	}
	return query, nil
}

// ParseCompilationUnit parses all type declarations in the source.
func (p *Parser) ParseCompilationUnit() (*ast.CompilationUnit, error) {
	start := p.current.Span
	var decls []ast.Decl
	for !p.atEnd() {
		decl, err := p.parseTypeDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return &ast.CompilationUnit{
		NodeInfo:     ni(start.Merge(p.current.Span)),
		Declarations: decls,
	}, nil
}

// ---------- helpers ----------

func ni(s token.Span) ast.NodeInfo {
	return ast.NodeInfo{Span: s}
}

func (p *Parser) atEnd() bool {
	return p.current.Kind == token.EOF
}

// advance consumes the current token and returns it.
func (p *Parser) advance() token.Token {
	tok := p.current
	p.current = p.lexer.NextToken()
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current.Kind == kind
}

// match consumes the current token if it has the given kind.
func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// consume requires the current token to have the given kind.
func (p *Parser) consume(kind token.Kind, expected string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.unexpected(expected)
}

func (p *Parser) expect(kind token.Kind, expected string) error {
	_, err := p.consume(kind, expected)
	return err
}

func (p *Parser) unexpected(expected string) error {
	if p.atEnd() {
		return &ParseError{Kind: UnexpectedEOF, Span: p.current.Span, Pos: p.current.Pos}
	}
	return &ParseError{
		Kind:     UnexpectedToken,
		Expected: expected,
		Found:    p.current.String(),
		Span:     p.current.Span,
		Pos:      p.current.Pos,
	}
}

func (p *Parser) errInvalid(kind ErrorKind, span token.Span) error {
	return &ParseError{Kind: kind, Span: span, Pos: p.current.Pos}
}

// spanFrom extends a start span up to the current token.
func (p *Parser) spanFrom(start token.Span) token.Span {
	return start.Merge(p.current.Span)
}

// isSoftIdent reports whether the current token is an identifier whose text
// equals word, ignoring case. SOQL clause words like WITH and TYPEOF are not
// reserved and arrive as identifiers.
func (p *Parser) isSoftIdent(word string) bool {
	return p.current.Kind == token.Ident && strings.EqualFold(p.current.Text, word)
}

// ---------- identifiers ----------

// identKeywords lists keywords that double as identifiers: member names,
// variables, aliases. The mapped text is what the identifier reads as.
var identKeywords = map[token.Kind]string{
	token.ID:         "Id",
	token.First:      "first",
	token.Last:       "last",
	token.Order:      "order",
	token.Group:      "group",
	token.Limit:      "limit",
	token.Offset:     "offset",
	token.Date:       "Date",
	token.Time:       "Time",
	token.Trigger:    "Trigger",
	token.Object:     "Object",
	token.Set:        "Set",
	token.Map:        "Map",
	token.List:       "List",
	token.Get:        "get",
	token.Insert:     "insert",
	token.Update:     "update",
	token.Delete:     "delete",
	token.Upsert:     "upsert",
	token.Undelete:   "undelete",
	token.Merge:      "merge",
	token.Class:      "class",
	token.Integer:    "Integer",
	token.Long:       "Long",
	token.Double:     "Double",
	token.Decimal:    "Decimal",
	token.StringType: "String",
	token.Boolean:    "Boolean",
	token.Blob:       "Blob",
	token.Datetime:   "Datetime",
	token.After:      "after",
	token.Before:     "before",
	token.On:         "on",
	token.By:         "by",
	token.Having:     "having",
	token.Select:     "select",
	token.From:       "from",
	token.Where:      "where",
	token.And:        "and",
	token.Or:         "or",
	token.In:         "in",
	token.Like:       "like",
	token.New:        "new",
	token.Not:        "not",
	token.Null:       "null",
	token.Void:       "void",
}

// parseIdentifier accepts an identifier, or one of the many keywords that
// the language allows as names.
func (p *Parser) parseIdentifier() (string, error) {
	if p.current.Kind == token.Ident {
		return p.advance().Text, nil
	}
	if name, ok := identKeywords[p.current.Kind]; ok {
		p.advance()
		return name, nil
	}
	return "", p.unexpected("identifier")
}

// ---------- type references ----------

// typeKeywordNames maps the built-in type keywords to their canonical
// spelling in a type name.
var typeKeywordNames = map[token.Kind]string{
	token.Void:       "void",
	token.Boolean:    "Boolean",
	token.Integer:    "Integer",
	token.Long:       "Long",
	token.Double:     "Double",
	token.Decimal:    "Decimal",
	token.StringType: "String",
	token.Blob:       "Blob",
	token.Date:       "Date",
	token.Datetime:   "Datetime",
	token.Time:       "Time",
	token.ID:         "Id",
	token.Object:     "Object",
	token.List:       "List",
	token.Set:        "Set",
	token.Map:        "Map",
}

// isTypeStart reports whether the current token can begin a type reference.
func (p *Parser) isTypeStart() bool {
	if p.current.Kind == token.Ident {
		return true
	}
	_, ok := typeKeywordNames[p.current.Kind]
	return ok
}

// isDefiniteTypeStart reports whether the current token is a built-in type
// keyword, which cannot begin a plain expression statement.
func (p *Parser) isDefiniteTypeStart() bool {
	_, ok := typeKeywordNames[p.current.Kind]
	return ok
}

func (p *Parser) isLiteral() bool {
	switch p.current.Kind {
	case token.Null, token.True, token.False,
		token.IntLit, token.LongLit, token.DoubleLit, token.StrLit:
		return true
	}
	return false
}

func (p *Parser) parseTypeRef() (ast.TypeRef, error) {
	return p.parseTypeRefImpl(false)
}

// parseTypeRefFull consumes the whole qualified name, including a final
// segment that a method call would otherwise claim. Used after new.
func (p *Parser) parseTypeRefFull() (ast.TypeRef, error) {
	return p.parseTypeRefImpl(true)
}

func (p *Parser) parseTypeRefImpl(fullQualified bool) (ast.TypeRef, error) {
	start := p.current.Span
	name, err := p.parseTypeName(fullQualified)
	if err != nil {
		return ast.TypeRef{}, err
	}

	var typeArgs []ast.TypeRef
	if p.match(token.Lt) {
		typeArgs, err = p.parseTypeArguments()
		if err != nil {
			return ast.TypeRef{}, err
		}
		if err := p.consumeGt(); err != nil {
			return ast.TypeRef{}, err
		}
	}

	isArray := false
	if p.match(token.LBracket) {
		if err := p.expect(token.RBracket, "]"); err != nil {
			return ast.TypeRef{}, err
		}
		isArray = true
	}

	return ast.TypeRef{
		NodeInfo:      ni(p.spanFrom(start)),
		Name:          name,
		TypeArguments: typeArgs,
		IsArray:       isArray,
	}, nil
}

// consumeGt consumes a single closing angle bracket, splitting a longer
// operator token when nested type arguments close together. The shortened
// token stays current with its span narrowed.
func (p *Parser) consumeGt() error {
	switch p.current.Kind {
	case token.Gt:
		p.advance()
		return nil
	case token.Shr:
		p.current.Kind = token.Gt
		p.current.Span.Start++
		return nil
	case token.UShr:
		p.current.Kind = token.Shr
		p.current.Span.Start++
		return nil
	case token.GtEq:
		p.current.Kind = token.Assign
		p.current.Span.Start++
		return nil
	case token.ShrAssign:
		p.current.Kind = token.GtEq
		p.current.Span.Start++
		return nil
	default:
		return p.unexpected(">")
	}
}

// parseTypeName reads a type name, following dots through qualified names.
// Outside constructor context it backs off a trailing segment that looks
// like a method call, so obj.method() is not swallowed as a type.
func (p *Parser) parseTypeName(fullQualified bool) (string, error) {
	if name, ok := typeKeywordNames[p.current.Kind]; ok {
		p.advance()
		return name, nil
	}
	if p.current.Kind != token.Ident {
		return "", p.errInvalid(InvalidType, p.current.Span)
	}

	name := p.advance().Text
	for p.check(token.Dot) {
		afterDot := p.lexer.Peek()
		if afterDot.Kind != token.Ident {
			// Something like Database.insert(): the segment after the dot
			// is a keyword, so it belongs to expression parsing.
			break
		}
		if !fullQualified && p.lexer.PeekSecond().Kind == token.LParen {
			// obj.method() is a call, not a qualified type name.
			break
		}
		p.advance() // dot
		name += "." + p.advance().Text
	}
	return name, nil
}

func (p *Parser) parseTypeArguments() ([]ast.TypeRef, error) {
	var args []ast.TypeRef
	if p.check(token.Gt) {
		return args, nil
	}
	for {
		arg, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.Comma) {
			return args, nil
		}
	}
}

func (p *Parser) parseTypeParameters() ([]ast.TypeParameter, error) {
	if !p.match(token.Lt) {
		return nil, nil
	}
	var params []ast.TypeParameter
	for {
		start := p.current.Span
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.TypeParameter{
			NodeInfo: ni(p.spanFrom(start)),
			Name:     name,
		})
		if !p.match(token.Comma) {
			break
		}
	}
	if err := p.expect(token.Gt, ">"); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseTypeList() ([]ast.TypeRef, error) {
	var types []ast.TypeRef
	for {
		t, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if !p.match(token.Comma) {
			return types, nil
		}
	}
}

// typeRefToExpression converts a type reference that turned out to be an
// expression back into identifier and field-access nodes. Qualified names
// decompose left to right.
func (p *Parser) typeRefToExpression(typeRef ast.TypeRef) (ast.Expr, error) {
	if len(typeRef.TypeArguments) > 0 || typeRef.IsArray {
		return nil, p.errInvalid(InvalidExpression, typeRef.Span)
	}
	parts := strings.Split(typeRef.Name, ".")
	var expr ast.Expr = &ast.Identifier{NodeInfo: typeRef.NodeInfo, Name: parts[0]}
	for _, part := range parts[1:] {
		expr = &ast.FieldAccess{NodeInfo: typeRef.NodeInfo, Object: expr, Field: part}
	}
	return expr, nil
}
