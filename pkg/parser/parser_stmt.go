package parser

import (
	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/token"
)

func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.current.Span
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}

	var statements []ast.Stmt
	for !p.check(token.RBrace) && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	end := p.current.Span
	if err := p.expect(token.RBrace, "}"); err != nil {
		return nil, err
	}

	return &ast.Block{NodeInfo: ni(start.Merge(end)), Statements: statements}, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.current.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.If:
		return p.parseIfStatement()
	case token.For:
		return p.parseForStatement()
	case token.While:
		return p.parseWhileStatement()
	case token.Do:
		return p.parseDoWhileStatement()
	case token.Switch:
		return p.parseSwitchStatement()
	case token.Return:
		return p.parseReturnStatement()
	case token.Throw:
		return p.parseThrowStatement()
	case token.Break:
		start := p.advance().Span
		if err := p.expect(token.Semicolon, ";"); err != nil {
			return nil, err
		}
		return &ast.BreakStmt{NodeInfo: ni(p.spanFrom(start))}, nil
	case token.Continue:
		start := p.advance().Span
		if err := p.expect(token.Semicolon, ";"); err != nil {
			return nil, err
		}
		return &ast.ContinueStmt{NodeInfo: ni(p.spanFrom(start))}, nil
	case token.Try:
		return p.parseTryStatement()
	case token.Insert, token.Update, token.Upsert,
		token.Delete, token.Undelete, token.Merge:
		return p.parseDmlStatement()
	case token.Semicolon:
		span := p.advance().Span
		return &ast.EmptyStmt{NodeInfo: ni(span)}, nil
	case token.Final:
		return p.parseLocalVariableDeclaration()
	default:
		return p.parseVariableOrExpressionStatement()
	}
}

func (p *Parser) parseIfStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.If, "if"); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}

	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Stmt
	if p.match(token.Else) {
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{
		NodeInfo:  ni(p.spanFrom(start)),
		Condition: condition,
		Then:      then,
		Else:      elseStmt,
	}, nil
}

func (p *Parser) parseForStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.For, "for"); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}

	// A leading type plus identifier is either a for-each header (colon
	// follows) or a declaration init of a traditional for.
	if p.isTypeStart() {
		typeRef, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		variable, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		if p.match(token.Colon) {
			iterable, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			return &ast.ForEachStmt{
				NodeInfo: ni(p.spanFrom(start)),
				Type:     typeRef,
				Variable: variable,
				Iterable: iterable,
				Body:     body,
			}, nil
		}

		var initializer ast.Expr
		if p.match(token.Assign) {
			initializer, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		declarators := []ast.VariableDeclarator{{
			NodeInfo:    ni(typeRef.Span.Merge(p.current.Span)),
			Name:        variable,
			Initializer: initializer,
		}}

		for p.match(token.Comma) {
			name, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			var init ast.Expr
			if p.match(token.Assign) {
				init, err = p.parseExpression()
				if err != nil {
					return nil, err
				}
			}
			declarators = append(declarators, ast.VariableDeclarator{
				NodeInfo:    ni(p.current.Span),
				Name:        name,
				Initializer: init,
			})
		}

		if err := p.expect(token.Semicolon, ";"); err != nil {
			return nil, err
		}

		init := &ast.ForInit{Variables: &ast.LocalVarDecl{
			NodeInfo:    ni(p.spanFrom(start)),
			Type:        typeRef,
			Declarators: declarators,
		}}
		return p.parseTraditionalForRest(start, init)
	}

	var init *ast.ForInit
	if !p.match(token.Semicolon) {
		exprs, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Semicolon, ";"); err != nil {
			return nil, err
		}
		init = &ast.ForInit{Expressions: exprs}
	}
	return p.parseTraditionalForRest(start, init)
}

func (p *Parser) parseTraditionalForRest(start token.Span, init *ast.ForInit) (ast.Stmt, error) {
	var condition ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		condition, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}

	var update []ast.Expr
	if !p.check(token.RParen) {
		var err error
		update, err = p.parseExpressionList()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.ForStmt{
		NodeInfo:  ni(p.spanFrom(start)),
		Init:      init,
		Condition: condition,
		Update:    update,
		Body:      body,
	}, nil
}

func (p *Parser) parseWhileStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.While, "while"); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{
		NodeInfo:  ni(p.spanFrom(start)),
		Condition: condition,
		Body:      body,
	}, nil
}

func (p *Parser) parseDoWhileStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.Do, "do"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.While, "while"); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	condition, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}

	return &ast.DoWhileStmt{
		NodeInfo:  ni(p.spanFrom(start)),
		Body:      body,
		Condition: condition,
	}, nil
}

func (p *Parser) parseSwitchStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.Switch, "switch"); err != nil {
		return nil, err
	}
	if err := p.expect(token.On, "on"); err != nil {
		return nil, err
	}
	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}

	var whens []ast.WhenClause
	for p.match(token.When) {
		whenStart := p.current.Span
		value, err := p.parseWhenValue()
		if err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		whens = append(whens, ast.WhenClause{
			NodeInfo: ni(p.spanFrom(whenStart)),
			Value:    value,
			Block:    block,
		})
	}

	end := p.current.Span
	if err := p.expect(token.RBrace, "}"); err != nil {
		return nil, err
	}

	return &ast.SwitchStmt{
		NodeInfo:   ni(start.Merge(end)),
		Expression: expression,
		Whens:      whens,
	}, nil
}

// parseWhenValue disambiguates type bindings (when Account a) from value
// lists (when SPRING, SUMMER): a type binding needs a plain identifier right
// after the type, anything else reads as values.
func (p *Parser) parseWhenValue() (ast.WhenValue, error) {
	if p.match(token.Else) {
		return ast.WhenValue{IsElse: true}, nil
	}

	if p.isTypeStart() && !p.isLiteral() {
		typeRef, err := p.parseTypeRef()
		if err != nil {
			return ast.WhenValue{}, err
		}

		if p.current.Kind == token.Ident {
			variable := p.advance().Text
			return ast.WhenValue{Type: &typeRef, Variable: variable}, nil
		}

		if len(typeRef.TypeArguments) > 0 || typeRef.IsArray {
			return ast.WhenValue{}, p.unexpected("identifier")
		}

		// An enum value like SPRING parses as a type ref first.
		literals := []ast.Expr{&ast.Identifier{NodeInfo: ni(typeRef.Span), Name: typeRef.Name}}
		for p.match(token.Comma) {
			expr, err := p.parseExpression()
			if err != nil {
				return ast.WhenValue{}, err
			}
			literals = append(literals, expr)
		}
		return ast.WhenValue{Literals: literals}, nil
	}

	var literals []ast.Expr
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return ast.WhenValue{}, err
		}
		literals = append(literals, expr)
		if !p.match(token.Comma) {
			return ast.WhenValue{Literals: literals}, nil
		}
	}
}

func (p *Parser) parseReturnStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.Return, "return"); err != nil {
		return nil, err
	}

	var value ast.Expr
	if !p.check(token.Semicolon) {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{NodeInfo: ni(p.spanFrom(start)), Value: value}, nil
}

func (p *Parser) parseThrowStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.Throw, "throw"); err != nil {
		return nil, err
	}
	exception, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}

	return &ast.ThrowStmt{NodeInfo: ni(p.spanFrom(start)), Exception: exception}, nil
}

func (p *Parser) parseTryStatement() (ast.Stmt, error) {
	start := p.current.Span
	if err := p.expect(token.Try, "try"); err != nil {
		return nil, err
	}
	tryBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var catches []ast.CatchClause
	for p.match(token.Catch) {
		catchStart := p.current.Span
		if err := p.expect(token.LParen, "("); err != nil {
			return nil, err
		}
		exceptionType, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		variable, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catches = append(catches, ast.CatchClause{
			NodeInfo: ni(p.spanFrom(catchStart)),
			Type:     exceptionType,
			Variable: variable,
			Block:    block,
		})
	}

	var finally *ast.Block
	if p.match(token.Finally) {
		finally, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.TryStmt{
		NodeInfo: ni(p.spanFrom(start)),
		Try:      tryBlock,
		Catches:  catches,
		Finally:  finally,
	}, nil
}

func (p *Parser) parseDmlStatement() (ast.Stmt, error) {
	start := p.current.Span
	var operation ast.DmlOp
	switch p.current.Kind {
	case token.Insert:
		operation = ast.DmlInsert
	case token.Update:
		operation = ast.DmlUpdate
	case token.Upsert:
		operation = ast.DmlUpsert
	case token.Delete:
		operation = ast.DmlDelete
	case token.Undelete:
		operation = ast.DmlUndelete
	case token.Merge:
		operation = ast.DmlMerge
	}
	p.advance()

	accessLevel, err := p.parseDmlAccessLevel()
	if err != nil {
		return nil, err
	}

	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}

	return &ast.DmlStmt{
		NodeInfo:    ni(p.spanFrom(start)),
		Operation:   operation,
		Expression:  expression,
		AccessLevel: accessLevel,
	}, nil
}

func (p *Parser) parseLocalVariableDeclaration() (ast.Stmt, error) {
	start := p.current.Span
	isFinal := p.match(token.Final)
	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}
	return p.parseLocalVarAfterType(start, isFinal, typeRef)
}

func (p *Parser) parseLocalVarAfterType(start token.Span, isFinal bool, typeRef ast.TypeRef) (ast.Stmt, error) {
	var declarators []ast.VariableDeclarator
	for {
		declStart := p.current.Span
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		var initializer ast.Expr
		if p.match(token.Assign) {
			initializer, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		declarators = append(declarators, ast.VariableDeclarator{
			NodeInfo:    ni(declStart.Merge(p.current.Span)),
			Name:        name,
			Initializer: initializer,
		})
		if !p.match(token.Comma) {
			break
		}
	}

	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}

	return &ast.LocalVarDecl{
		NodeInfo:    ni(p.spanFrom(start)),
		IsFinal:     isFinal,
		Type:        typeRef,
		Declarators: declarators,
	}, nil
}

// parseVariableOrExpressionStatement decides between a declaration and an
// expression statement. Both can start with an identifier; a second
// identifier after the type is what marks a declaration.
func (p *Parser) parseVariableOrExpressionStatement() (ast.Stmt, error) {
	start := p.current.Span

	if p.isDefiniteTypeStart() {
		typeRef, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		return p.parseLocalVarAfterType(start, false, typeRef)
	}

	if p.current.Kind == token.Ident {
		typeRef, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}

		if p.current.Kind == token.Ident {
			return p.parseLocalVarAfterType(start, false, typeRef)
		}

		// Parsed too far: the "type" was the start of an expression.
		expr, err := p.typeRefToExpression(typeRef)
		if err != nil {
			return nil, err
		}
		full, err := p.parseExpressionRest(expr)
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.Semicolon, ";"); err != nil {
			return nil, err
		}
		return &ast.ExprStmt{NodeInfo: ni(p.spanFrom(start)), Expression: full}, nil
	}

	expression, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{NodeInfo: ni(p.spanFrom(start)), Expression: expression}, nil
}

func (p *Parser) parseExpressionList() ([]ast.Expr, error) {
	var exprs []ast.Expr
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.match(token.Comma) {
			return exprs, nil
		}
	}
}
