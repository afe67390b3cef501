package parser

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/token"
)

func (p *Parser) parseSoqlQuery() (*ast.SoqlQuery, error) {
	start := p.current.Span
	if err := p.expect(token.Select, "SELECT"); err != nil {
		return nil, err
	}

	selectItems, err := p.parseSelectItems()
	if err != nil {
		return nil, err
	}

	if err := p.expect(token.From, "FROM"); err != nil {
		return nil, err
	}
	from, err := p.parseSoqlIdentifier()
	if err != nil {
		return nil, err
	}

	var where ast.Expr
	if p.match(token.Where) {
		where, err = p.parseSoqlCondition()
		if err != nil {
			return nil, err
		}
	}

	with := p.parseSoqlWithClause()

	var groupBy []string
	if p.match(token.Group) {
		if err := p.expect(token.By, "BY"); err != nil {
			return nil, err
		}
		for {
			field, err := p.parseSoqlFieldPath()
			if err != nil {
				return nil, err
			}
			groupBy = append(groupBy, field)
			if !p.match(token.Comma) {
				break
			}
		}
	}

	var having ast.Expr
	if p.match(token.Having) {
		having, err = p.parseSoqlCondition()
		if err != nil {
			return nil, err
		}
	}

	var orderBy []ast.OrderByField
	if p.match(token.Order) {
		if err := p.expect(token.By, "BY"); err != nil {
			return nil, err
		}
		orderBy, err = p.parseOrderByFields()
		if err != nil {
			return nil, err
		}
	}

	var limit ast.Expr
	if p.match(token.Limit) {
		limit, err = p.parseSoqlExpression()
		if err != nil {
			return nil, err
		}
	}

	var offset ast.Expr
	if p.match(token.Offset) {
		offset, err = p.parseSoqlExpression()
		if err != nil {
			return nil, err
		}
	}

	forClause := ast.ForNone
	if p.match(token.For) {
		if p.match(token.Update) {
			forClause = ast.ForUpdate
		} else if p.isSoftIdent("view") {
			p.advance()
			forClause = ast.ForView
		} else if p.isSoftIdent("reference") {
			p.advance()
			forClause = ast.ForReference
		}
	}

	return &ast.SoqlQuery{
		NodeInfo: ni(p.spanFrom(start)),
		Select:   selectItems,
		From:     from,
		Where:    where,
		With:     with,
		GroupBy:  groupBy,
		Having:   having,
		OrderBy:  orderBy,
		Limit:    limit,
		Offset:   offset,
		For:      forClause,
	}, nil
}

// parseSoqlWithClause reads WITH SECURITY_ENFORCED / USER_MODE / SYSTEM_MODE.
// WITH is not a reserved word on its own, so both words arrive as identifiers.
func (p *Parser) parseSoqlWithClause() ast.SoqlWith {
	if !p.isSoftIdent("with") {
		return ast.WithNone
	}
	p.advance()
	if p.current.Kind == token.Ident {
		switch strings.ToLower(p.current.Text) {
		case "security_enforced":
			p.advance()
			return ast.WithSecurityEnforced
		case "user_mode":
			p.advance()
			return ast.WithUserMode
		case "system_mode":
			p.advance()
			return ast.WithSystemMode
		}
	}
	return ast.WithNone
}

func (p *Parser) parseSelectItems() ([]ast.SelectItem, error) {
	var items []ast.SelectItem

	for {
		switch {
		case p.check(token.LParen):
			p.advance()
			subquery, err := p.parseSoqlQuery()
			if err != nil {
				return nil, err
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			items = append(items, ast.SubqueryItem{Query: subquery})

		case p.isAggregateFunction():
			item, err := p.parseAggregateItem()
			if err != nil {
				return nil, err
			}
			items = append(items, item)

		case p.isSoftIdent("typeof"):
			item, err := p.parseTypeOfItem()
			if err != nil {
				return nil, err
			}
			items = append(items, item)

		default:
			field, err := p.parseSoqlFieldPath()
			if err != nil {
				return nil, err
			}
			items = append(items, ast.FieldItem{Field: field})
		}

		if !p.match(token.Comma) {
			return items, nil
		}
	}
}

func (p *Parser) isAggregateFunction() bool {
	return p.current.Kind == token.Ident && isAggregateName(p.current.Text)
}

func isAggregateName(name string) bool {
	switch strings.ToLower(name) {
	case "count", "sum", "avg", "min", "max", "count_distinct":
		return true
	}
	return false
}

func (p *Parser) parseAggregateItem() (ast.AggregateItem, error) {
	function := p.advance().Text
	if err := p.expect(token.LParen, "("); err != nil {
		return ast.AggregateItem{}, err
	}

	// COUNT() takes no argument.
	var field string
	if !p.check(token.RParen) {
		var err error
		field, err = p.parseSoqlFieldPath()
		if err != nil {
			return ast.AggregateItem{}, err
		}
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return ast.AggregateItem{}, err
	}

	var alias string
	if p.current.Kind == token.Ident {
		alias = p.advance().Text
	}

	return ast.AggregateItem{Function: function, Field: field, Alias: alias}, nil
}

func (p *Parser) parseTypeOfItem() (ast.TypeOfItem, error) {
	p.advance() // typeof

	field, err := p.parseSoqlIdentifier()
	if err != nil {
		return ast.TypeOfItem{}, err
	}

	var whens []ast.TypeOfWhen
	var elseFields []string
	for {
		if p.match(token.When) {
			typeName, err := p.parseSoqlIdentifier()
			if err != nil {
				return ast.TypeOfItem{}, err
			}
			if !p.isSoftIdent("then") {
				return ast.TypeOfItem{}, p.unexpected("THEN")
			}
			p.advance()
			fields, err := p.parseTypeOfFields()
			if err != nil {
				return ast.TypeOfItem{}, err
			}
			whens = append(whens, ast.TypeOfWhen{TypeName: typeName, Fields: fields})
		} else if p.match(token.Else) {
			elseFields, err = p.parseTypeOfFields()
			if err != nil {
				return ast.TypeOfItem{}, err
			}
			break
		} else {
			break
		}
	}

	if p.isSoftIdent("end") {
		p.advance()
	}

	return ast.TypeOfItem{Field: field, Whens: whens, ElseFields: elseFields}, nil
}

func (p *Parser) parseTypeOfFields() ([]string, error) {
	var fields []string
	for {
		field, err := p.parseSoqlIdentifier()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
		if !p.match(token.Comma) {
			return fields, nil
		}
		if p.check(token.When) || p.check(token.Else) || p.isSoftIdent("end") {
			return fields, nil
		}
	}
}

// parseSoqlFieldPath reads a dotted field path: Contact__r.Account.Name.
func (p *Parser) parseSoqlFieldPath() (string, error) {
	path, err := p.parseSoqlIdentifier()
	if err != nil {
		return "", err
	}
	for p.match(token.Dot) {
		next, err := p.parseSoqlIdentifier()
		if err != nil {
			return "", err
		}
		path += "." + next
	}
	return path, nil
}

// parseSoqlIdentifier accepts an identifier or one of the keywords that
// double as field names in query context.
func (p *Parser) parseSoqlIdentifier() (string, error) {
	switch p.current.Kind {
	case token.Ident:
		return p.advance().Text, nil
	case token.ID:
		p.advance()
		return "Id", nil
	case token.Date:
		p.advance()
		return "Date", nil
	case token.Time:
		p.advance()
		return "Time", nil
	case token.Object:
		p.advance()
		return "Object", nil
	case token.Order:
		p.advance()
		return "Order", nil
	case token.Group:
		p.advance()
		return "Group", nil
	case token.Limit:
		p.advance()
		return "Limit", nil
	case token.Offset:
		p.advance()
		return "Offset", nil
	case token.First:
		p.advance()
		return "First", nil
	case token.Last:
		p.advance()
		return "Last", nil
	default:
		return "", p.unexpected("identifier")
	}
}

func (p *Parser) parseOrderByFields() ([]ast.OrderByField, error) {
	var fields []ast.OrderByField
	for {
		field, err := p.parseSoqlFieldPath()
		if err != nil {
			return nil, err
		}

		ascending := true
		if p.match(token.Desc) {
			ascending = false
		} else {
			p.match(token.Asc)
		}

		nulls := ast.NullsDefault
		if p.match(token.Nulls) {
			if p.match(token.First) {
				nulls = ast.NullsFirst
			} else if p.match(token.Last) {
				nulls = ast.NullsLast
			}
		}

		fields = append(fields, ast.OrderByField{
			Field:     field,
			Ascending: ascending,
			Nulls:     nulls,
		})

		if !p.match(token.Comma) {
			return fields, nil
		}
	}
}

// ---------- conditions ----------

func (p *Parser) parseSoqlCondition() (ast.Expr, error) {
	return p.parseSoqlOrExpression()
}

func (p *Parser) parseSoqlOrExpression() (ast.Expr, error) {
	start := p.current.Span
	left, err := p.parseSoqlAndExpression()
	if err != nil {
		return nil, err
	}
	for p.match(token.Or) {
		right, err := p.parseSoqlAndExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			NodeInfo: ni(p.spanFrom(start)),
			Left:     left,
			Op:       ast.OpOr,
			Right:    right,
		}
	}
	return left, nil
}

func (p *Parser) parseSoqlAndExpression() (ast.Expr, error) {
	start := p.current.Span
	left, err := p.parseSoqlNotExpression()
	if err != nil {
		return nil, err
	}
	for p.match(token.And) {
		right, err := p.parseSoqlNotExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{
			NodeInfo: ni(p.spanFrom(start)),
			Left:     left,
			Op:       ast.OpAnd,
			Right:    right,
		}
	}
	return left, nil
}

func (p *Parser) parseSoqlNotExpression() (ast.Expr, error) {
	start := p.current.Span
	if p.match(token.Not) {
		operand, err := p.parseSoqlNotExpression()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{
			NodeInfo: ni(p.spanFrom(start)),
			Op:       ast.UnaryNot,
			Operand:  operand,
		}, nil
	}
	return p.parseSoqlComparison()
}

func (p *Parser) parseSoqlComparison() (ast.Expr, error) {
	start := p.current.Span

	if p.match(token.LParen) {
		expr, err := p.parseSoqlCondition()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RParen, ")"); err != nil {
			return nil, err
		}
		return expr, nil
	}

	left, err := p.parseSoqlExpression()
	if err != nil {
		return nil, err
	}

	var op ast.BinaryOp
	switch {
	case p.match(token.Eq) || p.match(token.Assign):
		op = ast.OpEqual
	case p.match(token.NotEq) || p.match(token.LtGt):
		op = ast.OpNotEqual
	case p.match(token.Lt):
		op = ast.OpLess
	case p.match(token.Gt):
		op = ast.OpGreater
	case p.match(token.LtEq):
		op = ast.OpLessEqual
	case p.match(token.GtEq):
		op = ast.OpGreaterEqual
	case p.match(token.Like):
		op = ast.OpLike
	case p.match(token.In):
		return p.parseSoqlInList(start, left, ast.OpIn)
	case p.match(token.Not):
		if p.match(token.In) {
			return p.parseSoqlInList(start, left, ast.OpNotIn)
		}
		return nil, p.unexpected("IN")
	case p.match(token.Includes):
		return p.parseSoqlInList(start, left, ast.OpIncludes)
	case p.match(token.Excludes):
		return p.parseSoqlInList(start, left, ast.OpExcludes)
	default:
		return left, nil
	}

	right, err := p.parseSoqlExpression()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{
		NodeInfo: ni(p.spanFrom(start)),
		Left:     left,
		Op:       op,
		Right:    right,
	}, nil
}

// parseSoqlInList reads the parenthesized value list of IN, NOT IN,
// INCLUDES, and EXCLUDES. The
// values travel as a NewArray node so condition consumers see one operand.
func (p *Parser) parseSoqlInList(start token.Span, left ast.Expr, op ast.BinaryOp) (ast.Expr, error) {
	if err := p.expect(token.LParen, "("); err != nil {
		return nil, err
	}
	var values []ast.Expr
	for {
		value, err := p.parseSoqlExpression()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
		if !p.match(token.Comma) {
			break
		}
	}
	if err := p.expect(token.RParen, ")"); err != nil {
		return nil, err
	}

	return &ast.BinaryExpr{
		NodeInfo: ni(p.spanFrom(start)),
		Left:     left,
		Op:       op,
		Right: &ast.NewArray{
			NodeInfo:    ni(p.spanFrom(start)),
			ElementType: ast.TypeRef{NodeInfo: ni(start), Name: "Object"},
			Initializer: values,
			HasInit:     true,
		},
	}, nil
}

// parseSoqlExpression reads one condition operand: a bind variable, a date
// literal, a literal, or a field path.
func (p *Parser) parseSoqlExpression() (ast.Expr, error) {
	start := p.current.Span

	if p.match(token.Colon) {
		name, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.BindVar{NodeInfo: ni(p.spanFrom(start)), Name: name}, nil
	}

	if p.current.Kind == token.Ident && isSoqlDateLiteral(strings.ToLower(p.current.Text)) {
		literal := p.advance().Text

		// Parameterized forms carry a count: LAST_N_DAYS:30.
		if p.match(token.Colon) {
			if p.check(token.IntLit) {
				n := p.advance().Int
				return &ast.Identifier{
					NodeInfo: ni(p.spanFrom(start)),
					Name:     fmt.Sprintf("%s:%d", literal, n),
				}, nil
			}
		}
		return &ast.Identifier{NodeInfo: ni(p.spanFrom(start)), Name: literal}, nil
	}

	switch p.current.Kind {
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
	case token.True:
		p.advance()
		return &ast.BoolLit{NodeInfo: ni(start), Value: true}, nil
	case token.False:
		p.advance()
		return &ast.BoolLit{NodeInfo: ni(start), Value: false}, nil
	case token.Null:
		p.advance()
		return &ast.NullLit{NodeInfo: ni(start)}, nil
	default:
		path, err := p.parseSoqlFieldPath()
		if err != nil {
			return nil, err
		}
		// Aggregate calls appear in HAVING conditions.
		if isAggregateName(path) && p.match(token.LParen) {
			var arguments []ast.Expr
			if !p.check(token.RParen) {
				argStart := p.current.Span
				field, err := p.parseSoqlFieldPath()
				if err != nil {
					return nil, err
				}
				arguments = append(arguments, &ast.Identifier{
					NodeInfo: ni(p.spanFrom(argStart)),
					Name:     field,
				})
			}
			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
			return &ast.MethodCall{
				NodeInfo:  ni(p.spanFrom(start)),
				Name:      path,
				Arguments: arguments,
			}, nil
		}
		return &ast.Identifier{NodeInfo: ni(p.spanFrom(start)), Name: path}, nil
	}
}

var soqlDateLiterals = map[string]bool{
	"yesterday":              true,
	"today":                  true,
	"tomorrow":               true,
	"last_week":              true,
	"this_week":              true,
	"next_week":              true,
	"last_month":             true,
	"this_month":             true,
	"next_month":             true,
	"last_90_days":           true,
	"next_90_days":           true,
	"n_days_ago":             true,
	"last_n_days":            true,
	"next_n_days":            true,
	"last_n_weeks":           true,
	"next_n_weeks":           true,
	"last_n_months":          true,
	"next_n_months":          true,
	"last_n_quarters":        true,
	"next_n_quarters":        true,
	"last_n_years":           true,
	"next_n_years":           true,
	"last_n_fiscal_quarters": true,
	"next_n_fiscal_quarters": true,
	"last_n_fiscal_years":    true,
	"next_n_fiscal_years":    true,
	"this_quarter":           true,
	"last_quarter":           true,
	"next_quarter":           true,
	"this_year":              true,
	"last_year":              true,
	"next_year":              true,
	"this_fiscal_quarter":    true,
	"last_fiscal_quarter":    true,
	"next_fiscal_quarter":    true,
	"this_fiscal_year":       true,
	"last_fiscal_year":       true,
	"next_fiscal_year":       true,
}

func isSoqlDateLiteral(lower string) bool {
	return soqlDateLiterals[lower]
}
