package parser

import (
	"strings"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/token"
)

func (p *Parser) parseTypeDeclaration() (ast.Decl, error) {
	annotations, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}

	// Triggers take no modifiers.
	if p.check(token.Trigger) {
		return p.parseTriggerDeclaration()
	}

	modifiers, err := p.parseClassModifiers()
	if err != nil {
		return nil, err
	}

	switch p.current.Kind {
	case token.Class:
		return p.parseClassDeclaration(annotations, modifiers)
	case token.Interface:
		return p.parseInterfaceDeclaration(annotations, modifiers.Access)
	case token.Enum:
		return p.parseEnumDeclaration(annotations, modifiers.Access)
	default:
		return nil, p.unexpected("class, interface, or enum")
	}
}

func (p *Parser) parseAnnotations() ([]ast.Annotation, error) {
	var annotations []ast.Annotation
	for p.check(token.Annotation) {
		start := p.current.Span
		name := p.advance().Text

		var params []ast.AnnotationParameter
		if p.match(token.LParen) {
			var err error
			params, err = p.parseAnnotationParameters()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
		}

		annotations = append(annotations, ast.Annotation{
			NodeInfo:   ni(p.spanFrom(start)),
			Name:       name,
			Parameters: params,
		})
	}
	return annotations, nil
}

// parseAnnotationParameters reads name=value pairs and bare values.
// Parameters may be separated by commas or just whitespace.
func (p *Parser) parseAnnotationParameters() ([]ast.AnnotationParameter, error) {
	var params []ast.AnnotationParameter
	if p.check(token.RParen) {
		return params, nil
	}

	for {
		var name string
		if p.current.Kind == token.Ident && p.lexer.Peek().Kind == token.Assign {
			name = p.advance().Text
			p.advance() // =
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.AnnotationParameter{Name: name, Value: value})

		p.match(token.Comma)
		if p.check(token.RParen) {
			return params, nil
		}
	}
}

func (p *Parser) parseClassModifiers() (ast.ClassModifiers, error) {
	var modifiers ast.ClassModifiers
	for {
		switch p.current.Kind {
		case token.Public:
			modifiers.Access = ast.AccessPublic
		case token.Private:
			modifiers.Access = ast.AccessPrivate
		case token.Protected:
			modifiers.Access = ast.AccessProtected
		case token.Global:
			modifiers.Access = ast.AccessGlobal
		case token.Abstract:
			modifiers.IsAbstract = true
		case token.Virtual:
			modifiers.IsVirtual = true
		case token.WithSharing:
			modifiers.Sharing = ast.WithSharing
		case token.WithoutSharing:
			modifiers.Sharing = ast.WithoutSharing
		case token.InheritedSharing:
			modifiers.Sharing = ast.InheritedSharing
		default:
			return modifiers, nil
		}
		p.advance()
	}
}

func (p *Parser) parseMemberModifiers() (ast.MemberModifiers, error) {
	var modifiers ast.MemberModifiers
	for {
		switch p.current.Kind {
		case token.Public:
			modifiers.Access = ast.AccessPublic
		case token.Private:
			modifiers.Access = ast.AccessPrivate
		case token.Protected:
			modifiers.Access = ast.AccessProtected
		case token.Global:
			modifiers.Access = ast.AccessGlobal
		case token.Static:
			modifiers.IsStatic = true
		case token.Final:
			modifiers.IsFinal = true
		case token.Abstract:
			modifiers.IsAbstract = true
		case token.Virtual:
			modifiers.IsVirtual = true
		case token.Override:
			modifiers.IsOverride = true
		case token.Transient:
			modifiers.IsTransient = true
		case token.TestMethod:
			modifiers.IsTestMethod = true
		case token.Webservice:
			modifiers.IsWebservice = true
		case token.WithSharing:
			modifiers.Sharing = ast.WithSharing
		case token.WithoutSharing:
			modifiers.Sharing = ast.WithoutSharing
		case token.InheritedSharing:
			modifiers.Sharing = ast.InheritedSharing
		default:
			return modifiers, nil
		}
		p.advance()
	}
}

func (p *Parser) parseClassDeclaration(annotations []ast.Annotation, modifiers ast.ClassModifiers) (*ast.ClassDecl, error) {
	start := p.current.Span
	if err := p.expect(token.Class, "class"); err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	typeParams, err := p.parseTypeParameters()
	if err != nil {
		return nil, err
	}

	var extends *ast.TypeRef
	if p.match(token.Extends) {
		t, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		extends = &t
	}

	var implements []ast.TypeRef
	if p.match(token.Implements) {
		implements, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}
	members, err := p.parseClassMembers()
	if err != nil {
		return nil, err
	}
	end := p.current.Span
	if err := p.expect(token.RBrace, "}"); err != nil {
		return nil, err
	}

	return &ast.ClassDecl{
		NodeInfo:       ni(start.Merge(end)),
		Annotations:    annotations,
		Modifiers:      modifiers,
		Name:           name,
		TypeParameters: typeParams,
		Extends:        extends,
		Implements:     implements,
		Members:        members,
	}, nil
}

func (p *Parser) parseInterfaceDeclaration(annotations []ast.Annotation, access ast.AccessModifier) (*ast.InterfaceDecl, error) {
	start := p.current.Span
	if err := p.expect(token.Interface, "interface"); err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	typeParams, err := p.parseTypeParameters()
	if err != nil {
		return nil, err
	}

	var extends []ast.TypeRef
	if p.match(token.Extends) {
		extends, err = p.parseTypeList()
		if err != nil {
			return nil, err
		}
	}

	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}
	members, err := p.parseInterfaceMembers()
	if err != nil {
		return nil, err
	}
	end := p.current.Span
	if err := p.expect(token.RBrace, "}"); err != nil {
		return nil, err
	}

	return &ast.InterfaceDecl{
		NodeInfo:       ni(start.Merge(end)),
		Annotations:    annotations,
		Access:         access,
		Name:           name,
		TypeParameters: typeParams,
		Extends:        extends,
		Members:        members,
	}, nil
}

func (p *Parser) parseEnumDeclaration(annotations []ast.Annotation, access ast.AccessModifier) (*ast.EnumDecl, error) {
	start := p.current.Span
	if err := p.expect(token.Enum, "enum"); err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}

	var values []string
	if !p.check(token.RBrace) {
		for {
			value, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			values = append(values, value)
			if !p.match(token.Comma) {
				break
			}
			if p.check(token.RBrace) { // trailing comma
				break
			}
		}
	}

	end := p.current.Span
	if err := p.expect(token.RBrace, "}"); err != nil {
		return nil, err
	}

	return &ast.EnumDecl{
		NodeInfo:    ni(start.Merge(end)),
		Annotations: annotations,
		Access:      access,
		Name:        name,
		Values:      values,
	}, nil
}

func (p *Parser) parseTriggerDeclaration() (*ast.TriggerDecl, error) {
	start := p.current.Span
	if err := p.expect(token.Trigger, "trigger"); err != nil {
		return nil, err
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.On, "on"); err != nil {
		return nil, err
	}
	object, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	events, err := p.parseTriggerEvents()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.TriggerDecl{
		NodeInfo: ni(p.spanFrom(start)),
		Name:     name,
		Object:   object,
		Events:   events,
		Body:     body,
	}, nil
}

func (p *Parser) parseTriggerEvents() ([]ast.TriggerEvent, error) {
	var events []ast.TriggerEvent
	for {
		var isBefore bool
		if p.match(token.Before) {
			isBefore = true
		} else if p.match(token.After) {
			isBefore = false
		} else {
			return nil, p.unexpected("before or after")
		}

		var event ast.TriggerEvent
		switch p.current.Kind {
		case token.Insert:
			if isBefore {
				event = ast.BeforeInsert
			} else {
				event = ast.AfterInsert
			}
		case token.Update:
			if isBefore {
				event = ast.BeforeUpdate
			} else {
				event = ast.AfterUpdate
			}
		case token.Delete:
			if isBefore {
				event = ast.BeforeDelete
			} else {
				event = ast.AfterDelete
			}
		case token.Undelete:
			if isBefore {
				return nil, p.unexpected("after undelete (before undelete is not valid)")
			}
			event = ast.AfterUndelete
		default:
			return nil, p.unexpected("insert, update, delete, or undelete")
		}
		p.advance()
		events = append(events, event)

		if !p.match(token.Comma) {
			return events, nil
		}
	}
}

// ---------- class members ----------

func (p *Parser) parseClassMembers() ([]ast.Member, error) {
	var members []ast.Member
	for !p.check(token.RBrace) && !p.atEnd() {
		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func (p *Parser) parseClassMember() (ast.Member, error) {
	// static { ... } is an initializer block; static followed by anything
	// else starts an ordinary member with the modifier already consumed.
	if p.check(token.Static) {
		start := p.current.Span
		p.advance()

		if p.check(token.LBrace) {
			block, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			return &ast.StaticBlock{NodeInfo: ni(start.Merge(block.Span)), Body: block}, nil
		}

		annotations, err := p.parseAnnotations()
		if err != nil {
			return nil, err
		}
		modifiers, err := p.parseMemberModifiers()
		if err != nil {
			return nil, err
		}
		modifiers.IsStatic = true
		return p.parseClassMemberAfterModifiers(annotations, modifiers)
	}

	annotations, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	modifiers, err := p.parseMemberModifiers()
	if err != nil {
		return nil, err
	}
	return p.parseClassMemberAfterModifiers(annotations, modifiers)
}

func (p *Parser) parseClassMemberAfterModifiers(annotations []ast.Annotation, modifiers ast.MemberModifiers) (ast.Member, error) {
	switch p.current.Kind {
	case token.Class:
		classModifiers := ast.ClassModifiers{
			Access:     modifiers.Access,
			IsAbstract: modifiers.IsAbstract,
			IsVirtual:  modifiers.IsVirtual,
			Sharing:    modifiers.Sharing,
		}
		return p.parseClassDeclaration(annotations, classModifiers)
	case token.Interface:
		return p.parseInterfaceDeclaration(annotations, modifiers.Access)
	case token.Enum:
		return p.parseEnumDeclaration(annotations, modifiers.Access)
	}

	typeRef, err := p.parseTypeRef()
	if err != nil {
		return nil, err
	}

	// A type followed directly by ( is a constructor; what looked like a
	// type was its name.
	if p.check(token.LParen) && len(typeRef.TypeArguments) == 0 {
		return p.parseConstructorRest(annotations, modifiers, typeRef.Name, typeRef.Span)
	}

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	switch p.current.Kind {
	case token.LParen:
		return p.parseMethodRest(annotations, modifiers, typeRef, name)
	case token.LBrace:
		return p.parsePropertyRest(annotations, modifiers, typeRef, name)
	case token.Assign, token.Semicolon, token.Comma:
		return p.parseFieldRest(annotations, modifiers, typeRef, name)
	default:
		return nil, p.unexpected("(, {, =, or ;")
	}
}

func (p *Parser) parseConstructorRest(annotations []ast.Annotation, modifiers ast.MemberModifiers, name string, start token.Span) (ast.Member, error) {
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}

	// this(...) or super(...) at the top of the body is constructor
	// chaining; this.field and super.method() are plain statements.
	var chain *ast.ConstructorChain
	if p.check(token.This) || p.check(token.Super) {
		chainStart := p.current.Span
		isThis := p.check(token.This)
		p.advance()

		if p.check(token.LParen) {
			kind := ast.ChainSuper
			if isThis {
				kind = ast.ChainThis
			}
			p.advance() // (
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			if err := p.expect(token.Semicolon, ";"); err != nil {
				return nil, err
			}
			chain = &ast.ConstructorChain{
				NodeInfo:  ni(p.spanFrom(chainStart)),
				Kind:      kind,
				Arguments: args,
			}
		} else {
			var base ast.Expr
			if isThis {
				base = &ast.ThisExpr{NodeInfo: ni(chainStart)}
			} else {
				base = &ast.SuperExpr{NodeInfo: ni(chainStart)}
			}
			expr, err := p.parsePostfixFrom(base)
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

			statements := []ast.Stmt{&ast.ExprStmt{
				NodeInfo:   ni(p.spanFrom(chainStart)),
				Expression: full,
			}}
			for !p.check(token.RBrace) && !p.atEnd() {
				stmt, err := p.parseStatement()
				if err != nil {
					return nil, err
				}
				statements = append(statements, stmt)
			}
			blockEnd := p.current.Span
			if err := p.expect(token.RBrace, "}"); err != nil {
				return nil, err
			}

			return &ast.ConstructorDecl{
				NodeInfo:    ni(p.spanFrom(start)),
				Annotations: annotations,
				Modifiers:   modifiers,
				Name:        name,
				Parameters:  params,
				Body:        &ast.Block{NodeInfo: ni(start.Merge(blockEnd)), Statements: statements},
			}, nil
		}
	}

	var statements []ast.Stmt
	for !p.check(token.RBrace) && !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	blockEnd := p.current.Span
	if err := p.expect(token.RBrace, "}"); err != nil {
		return nil, err
	}

	return &ast.ConstructorDecl{
		NodeInfo:    ni(p.spanFrom(start)),
		Annotations: annotations,
		Modifiers:   modifiers,
		Name:        name,
		Parameters:  params,
		Chain:       chain,
		Body:        &ast.Block{NodeInfo: ni(start.Merge(blockEnd)), Statements: statements},
	}, nil
}

func (p *Parser) parseMethodRest(annotations []ast.Annotation, modifiers ast.MemberModifiers, returnType ast.TypeRef, name string) (*ast.MethodDecl, error) {
	start := returnType.Span
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}

	var body *ast.Block
	if !p.match(token.Semicolon) {
		body, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.MethodDecl{
		NodeInfo:    ni(p.spanFrom(start)),
		Annotations: annotations,
		Modifiers:   modifiers,
		ReturnType:  returnType,
		Name:        name,
		Parameters:  params,
		Body:        body,
	}, nil
}

func (p *Parser) parsePropertyRest(annotations []ast.Annotation, modifiers ast.MemberModifiers, typeRef ast.TypeRef, name string) (*ast.PropertyDecl, error) {
	start := typeRef.Span
	if err := p.expect(token.LBrace, "{"); err != nil {
		return nil, err
	}

	var getter, setter *ast.PropertyAccessor
	for !p.check(token.RBrace) && !p.atEnd() {
		accessorModifiers, err := p.parseMemberModifiers()
		if err != nil {
			return nil, err
		}
		accessorStart := p.current.Span

		var isGet bool
		if p.match(token.Get) {
			isGet = true
		} else if p.match(token.Set) {
			isGet = false
		} else {
			return nil, p.unexpected("get or set")
		}

		var body *ast.Block
		if !p.match(token.Semicolon) {
			body, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
		accessor := &ast.PropertyAccessor{
			NodeInfo:  ni(p.spanFrom(accessorStart)),
			Modifiers: accessorModifiers,
			Body:      body,
		}
		if isGet {
			getter = accessor
		} else {
			setter = accessor
		}
	}

	end := p.current.Span
	if err := p.expect(token.RBrace, "}"); err != nil {
		return nil, err
	}

	return &ast.PropertyDecl{
		NodeInfo:    ni(start.Merge(end)),
		Annotations: annotations,
		Modifiers:   modifiers,
		Type:        typeRef,
		Name:        name,
		Getter:      getter,
		Setter:      setter,
	}, nil
}

func (p *Parser) parseFieldRest(annotations []ast.Annotation, modifiers ast.MemberModifiers, typeRef ast.TypeRef, firstName string) (*ast.FieldDecl, error) {
	start := typeRef.Span
	var declarators []ast.VariableDeclarator

	var firstInit ast.Expr
	if p.match(token.Assign) {
		var err error
		firstInit, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	declarators = append(declarators, ast.VariableDeclarator{
		NodeInfo:    ni(p.spanFrom(start)),
		Name:        firstName,
		Initializer: firstInit,
	})

	for p.match(token.Comma) {
		declStart := p.current.Span
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
			NodeInfo:    ni(p.spanFrom(declStart)),
			Name:        name,
			Initializer: init,
		})
	}

	if err := p.expect(token.Semicolon, ";"); err != nil {
		return nil, err
	}

	return &ast.FieldDecl{
		NodeInfo:    ni(p.spanFrom(start)),
		Annotations: annotations,
		Modifiers:   modifiers,
		Type:        typeRef,
		Declarators: declarators,
	}, nil
}

func (p *Parser) parseInterfaceMembers() ([]ast.Member, error) {
	var members []ast.Member
	for !p.check(token.RBrace) && !p.atEnd() {
		annotations, err := p.parseAnnotations()
		if err != nil {
			return nil, err
		}
		returnType, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.LParen, "("); err != nil {
			return nil, err
		}
		params, err := p.parseParameters()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		if err := p.expect(token.Semicolon, ";"); err != nil {
			return nil, err
		}

		members = append(members, &ast.MethodSignature{
			NodeInfo:    ni(p.spanFrom(returnType.Span)),
			Annotations: annotations,
			ReturnType:  returnType,
			Name:        name,
			Parameters:  params,
		})
	}
	return members, nil
}

func (p *Parser) parseParameters() ([]ast.Parameter, error) {
	var params []ast.Parameter
	if p.check(token.RParen) {
		return params, nil
	}

	for {
		annotations, err := p.parseAnnotations()
		if err != nil {
			return nil, err
		}
		isFinal := p.match(token.Final)
		typeRef, err := p.parseTypeRef()
		if err != nil {
			return nil, err
		}
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		params = append(params, ast.Parameter{
			NodeInfo:    ni(p.spanFrom(typeRef.Span)),
			Annotations: annotations,
			IsFinal:     isFinal,
			Type:        typeRef,
			Name:        name,
		})

		if !p.match(token.Comma) {
			return params, nil
		}
	}
}

// parseDmlAccessLevel reads an optional "as user" / "as system" qualifier.
// The words are not reserved, so they arrive as identifiers.
func (p *Parser) parseDmlAccessLevel() (ast.DmlAccessLevel, error) {
	if p.current.Kind != token.Ident || !strings.EqualFold(p.current.Text, "as") {
		return ast.DmlAccessDefault, nil
	}
	p.advance()
	if p.current.Kind == token.Ident {
		switch strings.ToLower(p.current.Text) {
		case "system":
			p.advance()
			return ast.DmlAccessSystem, nil
		case "user":
			p.advance()
			return ast.DmlAccessUser, nil
		}
	}
	return ast.DmlAccessDefault, p.unexpected("user or system")
}
