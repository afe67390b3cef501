package parser

import (
	"strings"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/token"
)

// spanOf recovers the source span of an already-built node.
func spanOf(n ast.Node) token.Span {
	return token.Span{Start: n.Pos(), End: n.End()}
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.Assign:        ast.AssignPlain,
	token.PlusAssign:    ast.AssignAdd,
	token.MinusAssign:   ast.AssignSubtract,
	token.StarAssign:    ast.AssignMultiply,
	token.SlashAssign:   ast.AssignDivide,
	token.PercentAssign: ast.AssignModulo,
	token.AmpAssign:     ast.AssignBitAnd,
	token.PipeAssign:    ast.AssignBitOr,
	token.CaretAssign:   ast.AssignBitXor,
	token.ShlAssign:     ast.AssignShiftLeft,
	token.ShrAssign:     ast.AssignShiftRight,
	token.UShrAssign:    ast.AssignShiftRightUnsigned,
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	start := p.current.Span
	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}

	if op, ok := assignOps[p.current.Kind]; ok {
		p.advance()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignExpr{
			NodeInfo: ni(p.spanFrom(start)),
			Target:   expr,
			Op:       op,
			Value:    value,
		}, nil
	}
	return expr, nil
}

func (p *Parser) parseTernary() (ast.Expr, error) {
	start := p.current.Span
	condition, err := p.parseNullCoalesce()
	if err != nil {
		return nil, err
	}

	if p.match(token.Question) {
		then, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Colon, ":"); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpr{
			NodeInfo:  ni(p.spanFrom(start)),
			Condition: condition,
			Then:      then,
			Else:      elseExpr,
		}, nil
	}
	return condition, nil
}

func (p *Parser) parseNullCoalesce() (ast.Expr, error) {
	start := p.current.Span
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	for p.match(token.QuestionQuestion) {
		right, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		left = &ast.NullCoalesce{
			NodeInfo: ni(p.spanFrom(start)),
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// parseBinaryLevel builds one left-associative tier of the operator ladder.
func (p *Parser) parseBinaryLevel(ops map[token.Kind]ast.BinaryOp, next func() (ast.Expr, error)) (ast.Expr, error) {
	start := p.current.Span
	left, err := next()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := ops[p.current.Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			NodeInfo: ni(p.spanFrom(start)),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
}

var (
	orOps       = map[token.Kind]ast.BinaryOp{token.PipePipe: ast.OpOr}
	andOps      = map[token.Kind]ast.BinaryOp{token.AmpAmp: ast.OpAnd}
	bitOrOps    = map[token.Kind]ast.BinaryOp{token.Pipe: ast.OpBitOr}
	bitXorOps   = map[token.Kind]ast.BinaryOp{token.Caret: ast.OpBitXor}
	bitAndOps   = map[token.Kind]ast.BinaryOp{token.Amp: ast.OpBitAnd}
	equalityOps = map[token.Kind]ast.BinaryOp{
		token.Eq:         ast.OpEqual,
		token.NotEq:      ast.OpNotEqual,
		token.ExactEq:    ast.OpExactEqual,
		token.ExactNotEq: ast.OpExactNotEqual,
	}
	relationalOps = map[token.Kind]ast.BinaryOp{
		token.Lt:   ast.OpLess,
		token.Gt:   ast.OpGreater,
		token.LtEq: ast.OpLessEqual,
		token.GtEq: ast.OpGreaterEqual,
	}
	shiftOps = map[token.Kind]ast.BinaryOp{
		token.Shl:  ast.OpShiftLeft,
		token.Shr:  ast.OpShiftRight,
		token.UShr: ast.OpShiftRightUnsigned,
	}
	additiveOps = map[token.Kind]ast.BinaryOp{
		token.Plus:  ast.OpAdd,
		token.Minus: ast.OpSubtract,
	}
	multiplicativeOps = map[token.Kind]ast.BinaryOp{
		token.Star:    ast.OpMultiply,
		token.Slash:   ast.OpDivide,
		token.Percent: ast.OpModulo,
	}
)

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseBinaryLevel(orOps, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseBinaryLevel(andOps, p.parseBitwiseOr)
}

func (p *Parser) parseBitwiseOr() (ast.Expr, error) {
	return p.parseBinaryLevel(bitOrOps, p.parseBitwiseXor)
}

func (p *Parser) parseBitwiseXor() (ast.Expr, error) {
	return p.parseBinaryLevel(bitXorOps, p.parseBitwiseAnd)
}

func (p *Parser) parseBitwiseAnd() (ast.Expr, error) {
	return p.parseBinaryLevel(bitAndOps, p.parseEquality)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseBinaryLevel(equalityOps, p.parseRelational)
}

// parseRelational also folds in instanceof, which sits at the same tier.
func (p *Parser) parseRelational() (ast.Expr, error) {
	start := p.current.Span
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}

	for {
		if op, ok := relationalOps[p.current.Kind]; ok {
			p.advance()
			right, err := p.parseShift()
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{
				NodeInfo: ni(p.spanFrom(start)),
				Left:     left,
				Op:       op,
				Right:    right,
			}
		} else if p.match(token.Instanceof) {
			typeRef, err := p.parseTypeRef()
			if err != nil {
				return nil, err
			}
			left = &ast.InstanceOf{
				NodeInfo:   ni(p.spanFrom(start)),
				Expression: left,
				Type:       typeRef,
			}
		} else {
			return left, nil
		}
	}
}

func (p *Parser) parseShift() (ast.Expr, error) {
	return p.parseBinaryLevel(shiftOps, p.parseAdditive)
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(multiplicativeOps, p.parseUnary)
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	start := p.current.Span

	if p.match(token.PlusPlus) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.PreIncrement{NodeInfo: ni(p.spanFrom(start)), Operand: operand}, nil
	}
	if p.match(token.MinusMinus) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.PreDecrement{NodeInfo: ni(p.spanFrom(start)), Operand: operand}, nil
	}

	var op ast.UnaryOp
	switch p.current.Kind {
	case token.Minus:
		op = ast.UnaryNegate
	case token.Bang:
		op = ast.UnaryNot
	case token.Tilde:
		op = ast.UnaryBitNot
	default:
		if p.check(token.LParen) {
			cast, err := p.tryParseCast()
			if err != nil {
				return nil, err
			}
			if cast != nil {
				// Casts keep their postfix tail: ((Type)x).method().
				return p.parsePostfixFrom(cast)
			}
		}
		return p.parsePostfix()
	}

	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{NodeInfo: ni(p.spanFrom(start)), Op: op, Operand: operand}, nil
}

// tryParseCast disambiguates (Type)expr from a parenthesized expression. It
// reads the parenthesized part either way, so a non-nil result is final; nil
// means the current token was not an opening paren.
func (p *Parser) tryParseCast() (ast.Expr, error) {
	start := p.current.Span
	if !p.check(token.LParen) {
		return nil, nil
	}
	p.advance()

	if !p.isTypeStart() {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{NodeInfo: ni(p.spanFrom(start)), Expression: expr}, nil
	}

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	if !p.check(token.RParen) {
		// Not a cast after all: an expression that happened to start with
		// a name. Rewind the type into an expression and keep going.
		expr, err := p.typeRefToExpression(typeRef)
		if err != nil {
			return nil, err
		}
		full, err := p.parseExpressionContinue(expr)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{NodeInfo: ni(p.spanFrom(start)), Expression: full}, nil
	}
	p.advance() // )

	if p.isExpressionStart() {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.CastExpr{
			NodeInfo:   ni(p.spanFrom(start)),
			Type:       typeRef,
			Expression: operand,
		}, nil
	}

	expr, err := p.typeRefToExpression(typeRef)
	if err != nil {
		return nil, err
	}
	return &ast.ParenExpr{NodeInfo: ni(p.spanFrom(start)), Expression: expr}, nil
}

// isExpressionStart reports whether the current token can begin the operand
// of a cast. Type keywords count: they name classes with static methods.
func (p *Parser) isExpressionStart() bool {
	switch p.current.Kind {
	case token.Ident, token.IntLit, token.LongLit, token.DoubleLit, token.StrLit,
		token.True, token.False, token.Null, token.This, token.Super, token.New,
		token.LParen, token.Bang, token.Minus, token.Plus,
		token.PlusPlus, token.MinusMinus, token.Tilde, token.LBracket,
		token.Trigger, token.Map, token.List, token.Set, token.Object,
		token.ID, token.Date, token.Datetime, token.Time,
		token.Integer, token.Long, token.Double, token.Decimal,
		token.StringType, token.Boolean, token.Blob:
		return true
	}
	return false
}

// parseExpressionContinue finishes an expression whose first operand is
// already in hand, inside parentheses where a type was over-read.
func (p *Parser) parseExpressionContinue(left ast.Expr) (ast.Expr, error) {
	expr, err := p.parsePostfixFrom(left)
	if err != nil {
		return nil, err
	}
	expr, err = p.parseBinaryRest(expr, 0)
	if err != nil {
		return nil, err
	}

	start := spanOf(expr)
	for p.match(token.QuestionQuestion) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		right, err = p.parseBinaryRest(right, 0)
		if err != nil {
			return nil, err
		}
		expr = &ast.NullCoalesce{NodeInfo: ni(p.spanFrom(start)), Left: expr, Right: right}
	}

	if p.match(token.Question) {
		then, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Colon, ":"); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		return &ast.TernaryExpr{
			NodeInfo:  ni(p.spanFrom(start)),
			Condition: expr,
			Then:      then,
			Else:      elseExpr,
		}, nil
	}
	return expr, nil
}

// parseExpressionRest finishes a statement-level expression whose first
// operand was over-read as a type. Unlike parsePostfixFrom it also accepts a
// bare call, since the operand may be an unqualified method name.
func (p *Parser) parseExpressionRest(left ast.Expr) (ast.Expr, error) {
	start := spanOf(left)
	expr := left

	for {
		switch p.current.Kind {
		case token.LParen:
			ident, ok := expr.(*ast.Identifier)
			if !ok {
				return p.parseBinaryRest(expr, 0)
			}
			p.advance()
			arguments, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			expr = &ast.MethodCall{
				NodeInfo:  ni(p.spanFrom(start)),
				Name:      ident.Name,
				Arguments: arguments,
			}
		case token.Dot, token.QuestionDot, token.LBracket,
			token.PlusPlus, token.MinusMinus:
			var err error
			expr, err = p.parsePostfixOnce(start, expr)
			if err != nil {
				return nil, err
			}
		default:
			return p.parseBinaryRest(expr, 0)
		}
	}
}

// parseBinaryRest folds binary and assignment operators onto an existing
// left operand, using precedence climbing. min_prec 0 accepts everything.
func (p *Parser) parseBinaryRest(left ast.Expr, minPrec int) (ast.Expr, error) {
	start := spanOf(left)

	for {
		if op, ok := assignOps[p.current.Kind]; ok && isStatementAssign(p.current.Kind) {
			if 1 >= minPrec {
				p.advance()
				value, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				left = &ast.AssignExpr{
					NodeInfo: ni(p.spanFrom(start)),
					Target:   left,
					Op:       op,
					Value:    value,
				}
				continue
			}
		}

		if op, prec, ok := binaryPrec(p.current.Kind); ok && prec > minPrec {
			p.advance()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			right, err = p.parseBinaryRest(right, prec)
			if err != nil {
				return nil, err
			}
			left = &ast.BinaryExpr{
				NodeInfo: ni(p.spanFrom(start)),
				Left:     left,
				Op:       op,
				Right:    right,
			}
			continue
		}

		if p.check(token.Instanceof) && 8 > minPrec {
			p.advance()
			typeRef, err := p.parseTypeRef()
			if err != nil {
				return nil, err
			}
			left = &ast.InstanceOf{
				NodeInfo:   ni(p.spanFrom(start)),
				Expression: left,
				Type:       typeRef,
			}
			continue
		}

		return left, nil
	}
}

func isStatementAssign(kind token.Kind) bool {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign,
		token.StarAssign, token.SlashAssign, token.PercentAssign:
		return true
	}
	return false
}

func binaryPrec(kind token.Kind) (ast.BinaryOp, int, bool) {
	switch kind {
	case token.PipePipe:
		return ast.OpOr, 2, true
	case token.AmpAmp:
		return ast.OpAnd, 3, true
	case token.Pipe:
		return ast.OpBitOr, 4, true
	case token.Caret:
		return ast.OpBitXor, 5, true
	case token.Amp:
		return ast.OpBitAnd, 6, true
	case token.Eq:
		return ast.OpEqual, 7, true
	case token.NotEq:
		return ast.OpNotEqual, 7, true
	case token.ExactEq:
		return ast.OpExactEqual, 7, true
	case token.ExactNotEq:
		return ast.OpExactNotEqual, 7, true
	case token.Lt:
		return ast.OpLess, 8, true
	case token.Gt:
		return ast.OpGreater, 8, true
	case token.LtEq:
		return ast.OpLessEqual, 8, true
	case token.GtEq:
		return ast.OpGreaterEqual, 8, true
	case token.Shl:
		return ast.OpShiftLeft, 9, true
	case token.Shr:
		return ast.OpShiftRight, 9, true
	case token.UShr:
		return ast.OpShiftRightUnsigned, 9, true
	case token.Plus:
		return ast.OpAdd, 10, true
	case token.Minus:
		return ast.OpSubtract, 10, true
	case token.Star:
		return ast.OpMultiply, 11, true
	case token.Slash:
		return ast.OpDivide, 11, true
	case token.Percent:
		return ast.OpModulo, 11, true
	}
	return 0, 0, false
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfixFrom(expr)
}

// parsePostfixFrom applies field access, safe navigation, method calls,
// indexing and postfix increment to an already-parsed operand.
func (p *Parser) parsePostfixFrom(initial ast.Expr) (ast.Expr, error) {
	start := spanOf(initial)
	expr := initial

	for {
		switch p.current.Kind {
		case token.Dot, token.QuestionDot, token.LBracket,
			token.PlusPlus, token.MinusMinus:
			var err error
			expr, err = p.parsePostfixOnce(start, expr)
			if err != nil {
				return nil, err
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePostfixOnce(start token.Span, expr ast.Expr) (ast.Expr, error) {
	switch p.current.Kind {
	case token.Dot:
		p.advance()
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.match(token.LParen) {
			arguments, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			return &ast.MethodCall{
				NodeInfo:  ni(p.spanFrom(start)),
				Object:    expr,
				Name:      name,
				Arguments: arguments,
			}, nil
		}
		return &ast.FieldAccess{
			NodeInfo: ni(p.spanFrom(start)),
			Object:   expr,
			Field:    name,
		}, nil

	case token.QuestionDot:
		p.advance()
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.match(token.LParen) {
			arguments, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			// obj?.method(args) is a call on the safe-navigated receiver.
			safe := &ast.SafeNavigation{
				NodeInfo: ni(p.spanFrom(start)),
				Object:   expr,
				Field:    name,
			}
			return &ast.MethodCall{
				NodeInfo:  ni(p.spanFrom(start)),
				Object:    safe,
				Name:      name,
				Arguments: arguments,
			}, nil
		}
		return &ast.SafeNavigation{
			NodeInfo: ni(p.spanFrom(start)),
			Object:   expr,
			Field:    name,
		}, nil

	case token.LBracket:
		p.advance()
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBracket, "]"); err != nil {
			return nil, err
		}
		return &ast.ArrayAccess{
			NodeInfo: ni(p.spanFrom(start)),
			Array:    expr,
			Index:    index,
		}, nil

	case token.PlusPlus:
		p.advance()
		return &ast.PostIncrement{NodeInfo: ni(p.spanFrom(start)), Operand: expr}, nil

	default: // token.MinusMinus
		p.advance()
		return &ast.PostDecrement{NodeInfo: ni(p.spanFrom(start)), Operand: expr}, nil
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	start := p.current.Span

	switch p.current.Kind {
	case token.Null:
		p.advance()
		return &ast.NullLit{NodeInfo: ni(start)}, nil
	case token.True:
		p.advance()
		return &ast.BoolLit{NodeInfo: ni(start), Value: true}, nil
	case token.False:
		p.advance()
		return &ast.BoolLit{NodeInfo: ni(start), Value: false}, nil
	case token.IntLit:
		tok := p.advance()
		return &ast.IntLit{NodeInfo: ni(start), Value: tok.Int}, nil
	case token.LongLit:
		tok := p.advance()
		return &ast.LongLit{NodeInfo: ni(start), Value: tok.Int}, nil
	case token.DoubleLit:
		tok := p.advance()
		return &ast.DoubleLit{NodeInfo: ni(start), Value: tok.Float}, nil
	case token.StrLit:
		tok := p.advance()
		return &ast.StringLit{NodeInfo: ni(start), Value: tok.Str}, nil
	case token.This:
		p.advance()
		return &ast.ThisExpr{NodeInfo: ni(start)}, nil
	case token.Super:
		p.advance()
		return &ast.SuperExpr{NodeInfo: ni(start)}, nil
	case token.New:
		return p.parseNewExpression()
	case token.LParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{NodeInfo: ni(p.spanFrom(start)), Expression: expr}, nil
	case token.LBracket:
		return p.parseSoqlOrArray()
	case token.Ident,
		token.ID, token.First, token.Last, token.Order, token.Group,
		token.Limit, token.Offset, token.Date, token.Time, token.Trigger,
		token.Object, token.Set, token.Map, token.List,
		token.StringType, token.Integer, token.Long, token.Double,
		token.Decimal, token.Boolean, token.Datetime, token.Blob:
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if p.match(token.LParen) {
			arguments, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			return &ast.MethodCall{
				NodeInfo:  ni(p.spanFrom(start)),
				Name:      name,
				Arguments: arguments,
			}, nil
		}
		return &ast.Identifier{NodeInfo: ni(start), Name: name}, nil
	default:
		return nil, p.errInvalid(InvalidExpression, start)
	}
}

func (p *Parser) parseNewExpression() (ast.Expr, error) {
	start := p.current.Span
	if err := p.expect(token.New, "new"); err != nil {
		return nil, err
	}

	typeRef, err := p.parseTypeRefFull()
	if err != nil {
		return nil, err
	}

	switch {
	case p.match(token.LBracket):
		if p.match(token.RBracket) {
			// new Type[] with an optional braced initializer.
			var items []ast.Expr
			hasInit := false
			if p.match(token.LBrace) {
				items, err = p.parseArrayInitializer()
				if err != nil {
					return nil, err
				}
				if err := p.expect(token.RBrace, "}"); err != nil {
					return nil, err
				}
				hasInit = true
			}
			return &ast.NewArray{
				NodeInfo:    ni(p.spanFrom(start)),
				ElementType: typeRef,
				Initializer: items,
				HasInit:     hasInit,
			}, nil
		}

		size, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBracket, "]"); err != nil {
			return nil, err
		}
		return &ast.NewArray{
			NodeInfo:    ni(p.spanFrom(start)),
			ElementType: typeRef,
			Size:        size,
		}, nil

	case p.match(token.LBrace):
		if typeRef.Name == "Map" || strings.HasSuffix(typeRef.Name, ".Map") {
			entries, err := p.parseMapInitializer()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RBrace, "}"); err != nil {
				return nil, err
			}
			return &ast.NewMap{
				NodeInfo:    ni(p.spanFrom(start)),
				Type:        typeRef,
				Initializer: entries,
				HasInit:     true,
			}, nil
		}

		items, err := p.parseArrayInitializer()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBrace, "}"); err != nil {
			return nil, err
		}
		if typeRef.Name == "Set" || strings.HasSuffix(typeRef.Name, ".Set") {
			return &ast.SetLiteral{NodeInfo: ni(p.spanFrom(start)), Elements: items}, nil
		}
		return &ast.ListLiteral{NodeInfo: ni(p.spanFrom(start)), Elements: items}, nil

	default:
		if err := p.expect(token.LParen, "("); err != nil {
			return nil, err
		}
		arguments, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		return &ast.NewObject{
			NodeInfo:  ni(p.spanFrom(start)),
			Type:      typeRef,
			Arguments: arguments,
		}, nil
	}
}

func (p *Parser) parseArguments() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.check(token.RParen) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(token.Comma) {
			return args, nil
		}
	}
}

func (p *Parser) parseArrayInitializer() ([]ast.Expr, error) {
	var items []ast.Expr
	if p.check(token.RBrace) {
		return items, nil
	}
	for {
		item, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if !p.match(token.Comma) {
			return items, nil
		}
		if p.check(token.RBrace) { // trailing comma
			return items, nil
		}
	}
}

func (p *Parser) parseMapInitializer() ([]ast.MapEntry, error) {
	var entries []ast.MapEntry
	if p.check(token.RBrace) {
		return entries, nil
	}
	for {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Arrow, "=>"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.MapEntry{Key: key, Value: value})
		if !p.match(token.Comma) {
			return entries, nil
		}
		if p.check(token.RBrace) { // trailing comma
			return entries, nil
		}
	}
}

// parseSoqlOrArray handles a bracketed construct in expression position: an
// embedded SOQL query, an embedded SOSL search, or a list literal.
func (p *Parser) parseSoqlOrArray() (ast.Expr, error) {
	start := p.current.Span
	if err := p.expect(token.LBracket, "["); err != nil {
		return nil, err
	}

	switch p.current.Kind {
	case token.Select:
		query, err := p.parseSoqlQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBracket, "]"); err != nil {
			return nil, err
		}
		return query, nil
	case token.Find:
		query, err := p.parseSoslQuery()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RBracket, "]"); err != nil {
			return nil, err
		}
		return query, nil
	default:
		var items []ast.Expr
		if !p.check(token.RBracket) {
			for {
				item, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				items = append(items, item)
				if !p.match(token.Comma) {
					break
				}
			}
		}
		if err := p.expect(token.RBracket, "]"); err != nil {
			return nil, err
		}
		return &ast.ListLiteral{NodeInfo: ni(p.spanFrom(start)), Elements: items}, nil
	}
}
