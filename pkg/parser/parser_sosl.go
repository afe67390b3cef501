package parser

import (
	"strings"

	"github.com/leapstack-labs/apexql/pkg/ast"
	"github.com/leapstack-labs/apexql/pkg/token"
)

func (p *Parser) parseSoslQuery() (*ast.SoslQuery, error) {
	start := p.current.Span
	if err := p.expect(token.Find, "FIND"); err != nil {
		return nil, err
	}

	// The search term is a string literal, or a braced word sequence when
	// the query is written in its standalone form.
	var term string
	if p.check(token.StrLit) {
		term = p.advance().Str
	} else if p.match(token.LBrace) {
		var words []string
		for !p.check(token.RBrace) && !p.atEnd() {
			switch p.current.Kind {
			case token.Ident:
				words = append(words, p.current.Text)
			case token.StrLit:
				words = append(words, p.current.Str)
			}
			p.advance()
		}
		if err := p.expect(token.RBrace, "}"); err != nil {
			return nil, err
		}
		term = strings.Join(words, " ")
	} else {
		return nil, p.unexpected("search term")
	}

	group := ast.SearchDefault
	if p.match(token.In) {
		group = p.parseSoslSearchGroup()
	}

	var returning []ast.SoslReturning
	if p.match(token.Returning) {
		var err error
		returning, err = p.parseSoslReturning()
		if err != nil {
			return nil, err
		}
	}

	var with []ast.SoslWith
	for p.isSoftIdent("with") {
		p.advance()
		clause, ok, err := p.parseSoslWithClause()
		if err != nil {
			return nil, err
		}
		if ok {
			with = append(with, clause)
		}
	}

	var limit ast.Expr
	if p.match(token.Limit) {
		var err error
		limit, err = p.parseSoqlExpression()
		if err != nil {
			return nil, err
		}
	}

	return &ast.SoslQuery{
		NodeInfo:    ni(p.spanFrom(start)),
		SearchTerm:  term,
		SearchGroup: group,
		Returning:   returning,
		With:        with,
		Limit:       limit,
	}, nil
}

// parseSoslSearchGroup reads ALL/NAME/EMAIL/PHONE/SIDEBAR FIELDS. None of
// the words are reserved; anything else leaves the group unset.
func (p *Parser) parseSoslSearchGroup() ast.SearchGroup {
	if p.current.Kind != token.Ident {
		return ast.SearchDefault
	}

	var group ast.SearchGroup
	switch strings.ToLower(p.current.Text) {
	case "all":
		group = ast.AllFields
	case "name":
		group = ast.NameFields
	case "email":
		group = ast.EmailFields
	case "phone":
		group = ast.PhoneFields
	case "sidebar":
		group = ast.SidebarFields
	default:
		return ast.SearchDefault
	}
	p.advance()

	if p.isSoftIdent("fields") {
		p.advance()
		return group
	}
	return ast.SearchDefault
}

func (p *Parser) parseSoslReturning() ([]ast.SoslReturning, error) {
	var returning []ast.SoslReturning
	for {
		object, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}

		entry := ast.SoslReturning{Object: object}
		if p.match(token.LParen) {
			for !p.check(token.RParen) && !p.check(token.Where) &&
				!p.check(token.Order) && !p.check(token.Limit) {
				field, err := p.parseSoqlFieldPath()
				if err != nil {
					return nil, err
				}
				entry.Fields = append(entry.Fields, field)
				if !p.match(token.Comma) {
					break
				}
			}

			if p.match(token.Where) {
				entry.Where, err = p.parseSoqlCondition()
				if err != nil {
					return nil, err
				}
			}
			if p.match(token.Order) {
				if err := p.expect(token.By, "BY"); err != nil {
					return nil, err
				}
				entry.OrderBy, err = p.parseOrderByFields()
				if err != nil {
					return nil, err
				}
			}
			if p.match(token.Limit) {
				if p.check(token.IntLit) {
					entry.Limit = p.advance().Int
					entry.HasLimit = true
				}
			}

			if err := p.expect(token.RParen, ")"); err != nil {
				return nil, err
			}
		}

		returning = append(returning, entry)
		if !p.match(token.Comma) {
			return returning, nil
		}
	}
}

func (p *Parser) parseSoslWithClause() (ast.SoslWith, bool, error) {
	if p.current.Kind != token.Ident {
		return ast.SoslWith{}, false, nil
	}

	switch strings.ToLower(p.current.Text) {
	case "snippet":
		p.advance()
		return ast.SoslWith{Kind: ast.WithSnippet}, true, nil
	case "spellcorrection":
		p.advance()
		return ast.SoslWith{Kind: ast.WithSpellCorrection}, true, nil
	case "network":
		p.advance()
		if err := p.expect(token.Assign, "="); err != nil {
			return ast.SoslWith{}, false, err
		}
		network, err := p.parseIdentifier()
		if err != nil {
			return ast.SoslWith{}, false, err
		}
		return ast.SoslWith{Kind: ast.WithNetwork, Network: network}, true, nil
	case "data":
		p.advance()
		if p.isSoftIdent("category") {
			p.advance()
			group, err := p.parseIdentifier()
			if err != nil {
				return ast.SoslWith{}, false, err
			}
			// Matching operator: AT, ABOVE, BELOW, ABOVE_OR_BELOW.
			p.advance()
			category, err := p.parseIdentifier()
			if err != nil {
				return ast.SoslWith{}, false, err
			}
			return ast.SoslWith{Kind: ast.WithDataCategory, Group: group, Category: category}, true, nil
		}
		return ast.SoslWith{}, false, nil
	default:
		return ast.SoslWith{}, false, nil
	}
}
