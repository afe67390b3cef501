package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/apexql/pkg/ast"
)

// sqlOperators maps condition operators to their SQL spelling. The exact
// equality forms collapse onto the plain ones.
var sqlOperators = map[ast.BinaryOp]string{
	ast.OpEqual:         "=",
	ast.OpExactEqual:    "=",
	ast.OpNotEqual:      "!=",
	ast.OpExactNotEqual: "!=",
	ast.OpLess:          "<",
	ast.OpGreater:       ">",
	ast.OpLessEqual:     "<=",
	ast.OpGreaterEqual:  ">=",
	ast.OpAnd:           "AND",
	ast.OpOr:            "OR",
	ast.OpLike:          "LIKE",
	ast.OpIn:            "IN",
	ast.OpNotIn:         "NOT IN",
	ast.OpAdd:           "+",
	ast.OpSubtract:      "-",
	ast.OpMultiply:      "*",
	ast.OpDivide:        "/",
	ast.OpModulo:        "%",
}

func isComparisonOp(op ast.BinaryOp) bool {
	switch op {
	case ast.OpEqual, ast.OpExactEqual, ast.OpNotEqual, ast.OpExactNotEqual,
		ast.OpLess, ast.OpGreater, ast.OpLessEqual, ast.OpGreaterEqual:
		return true
	}
	return false
}

// convertExpr translates a condition or value expression.
func (c *Converter) convertExpr(e ast.Expr) (string, error) {
	switch v := e.(type) {
	case *ast.NullLit:
		return "NULL", nil
	case *ast.BoolLit:
		return c.dialect.BooleanLiteral(v.Value), nil
	case *ast.IntLit:
		return strconv.FormatInt(v.Value, 10), nil
	case *ast.LongLit:
		return strconv.FormatInt(v.Value, 10), nil
	case *ast.DoubleLit:
		return strconv.FormatFloat(v.Value, 'f', -1, 64), nil
	case *ast.StringLit:
		return quoteString(v.Value), nil
	case *ast.Identifier:
		return c.fieldExpr(v.Name)
	case *ast.FieldAccess:
		path, ok := flattenFieldPath(v)
		if !ok {
			return "", errInvalidExpression("field access on a non-field base")
		}
		return c.fieldExpr(path)
	case *ast.BindVar:
		return c.addParameter(v.Name), nil
	case *ast.MethodCall:
		return c.convertAggregateCall(v)
	case *ast.BinaryExpr:
		return c.convertBinary(v)
	case *ast.UnaryExpr:
		operand, err := c.convertExpr(v.Operand)
		if err != nil {
			return "", err
		}
		switch v.Op {
		case ast.UnaryNot:
			return "NOT (" + operand + ")", nil
		case ast.UnaryNegate:
			return "-(" + operand + ")", nil
		default:
			return "~(" + operand + ")", nil
		}
	case *ast.ParenExpr:
		inner, err := c.convertExpr(v.Expression)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil
	case *ast.NewArray:
		if v.HasInit {
			return c.convertValueList(v.Initializer)
		}
		return "", errInvalidExpression("array construction in query")
	case *ast.ListLiteral:
		return c.convertValueList(v.Elements)
	case *ast.SetLiteral:
		return c.convertValueList(v.Elements)
	default:
		return "", errInvalidExpression(fmt.Sprintf("%T", e))
	}
}

func (c *Converter) convertBinary(v *ast.BinaryExpr) (string, error) {
	switch v.Op {
	case ast.OpIncludes:
		return c.convertMultiSelect(v, true)
	case ast.OpExcludes:
		return c.convertMultiSelect(v, false)
	}

	// A date literal on the right of a comparison replaces the whole
	// predicate with its expansion.
	if isComparisonOp(v.Op) {
		if name, ok := dateLiteralOperand(v.Right); ok && isDateLiteral(name) {
			left, err := c.convertExpr(v.Left)
			if err != nil {
				return "", err
			}
			sql, approximate, err := expandDateLiteral(name, left, c.dialect)
			if err != nil {
				return "", err
			}
			if approximate {
				c.warn(WarnApproximateDateLiteral,
					"Fiscal date literal '%s' approximated with calendar periods", name)
			}
			return sql, nil
		}
	}

	op, ok := sqlOperators[v.Op]
	if !ok {
		return "", errInvalidExpression("operator " + v.Op.String())
	}
	left, err := c.convertExpr(v.Left)
	if err != nil {
		return "", err
	}
	right, err := c.convertExpr(v.Right)
	if err != nil {
		return "", err
	}
	return left + " " + op + " " + right, nil
}

// convertMultiSelect expands INCLUDES/EXCLUDES over a semicolon-separated
// multi-select column. Each value matches in four positions: the sole
// entry, leading, trailing, or interior.
func (c *Converter) convertMultiSelect(v *ast.BinaryExpr, includes bool) (string, error) {
	field, err := c.convertExpr(v.Left)
	if err != nil {
		return "", err
	}
	values, err := multiSelectValues(v.Right)
	if err != nil {
		return "", err
	}
	matches := make([]string, 0, len(values))
	for _, value := range values {
		esc := strings.ReplaceAll(value, "'", "''")
		matches = append(matches, fmt.Sprintf(
			"(%s = '%s' OR %s LIKE '%s;%%' OR %s LIKE '%%;%s' OR %s LIKE '%%;%s;%%')",
			field, esc, field, esc, field, esc, field, esc))
	}
	if includes {
		return "(" + strings.Join(matches, " AND ") + ")", nil
	}
	return "NOT (" + strings.Join(matches, " OR ") + ")", nil
}

func multiSelectValues(e ast.Expr) ([]string, error) {
	var elements []ast.Expr
	switch v := e.(type) {
	case *ast.NewArray:
		if v.HasInit {
			elements = v.Initializer
		}
	case *ast.ListLiteral:
		elements = v.Elements
	case *ast.SetLiteral:
		elements = v.Elements
	case *ast.StringLit:
		return []string{v.Value}, nil
	}
	if elements == nil {
		return nil, errInvalidExpression("INCLUDES/EXCLUDES requires a value list")
	}
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		lit, ok := el.(*ast.StringLit)
		if !ok {
			return nil, errInvalidExpression("INCLUDES/EXCLUDES values must be string literals")
		}
		out = append(out, lit.Value)
	}
	return out, nil
}

// convertAggregateCall renders an aggregate function call inside a HAVING
// condition. Any other call shape is rejected.
func (c *Converter) convertAggregateCall(v *ast.MethodCall) (string, error) {
	if v.Object != nil {
		return "", errInvalidExpression("method call in query")
	}
	name := strings.ToUpper(v.Name)
	if len(v.Arguments) == 0 {
		if name == "COUNT" {
			return "COUNT(*)", nil
		}
		return "", errInvalidExpression(name + "()")
	}
	path, ok := flattenFieldPath(v.Arguments[0])
	if !ok || len(v.Arguments) != 1 {
		return "", errInvalidExpression("arguments of " + name)
	}
	field, err := c.fieldExpr(path)
	if err != nil {
		return "", err
	}
	return name + "(" + field + ")", nil
}

func (c *Converter) convertValueList(elements []ast.Expr) (string, error) {
	parts := make([]string, 0, len(elements))
	for _, el := range elements {
		sql, err := c.convertExpr(el)
		if err != nil {
			return "", err
		}
		parts = append(parts, sql)
	}
	return "(" + strings.Join(parts, ", ") + ")", nil
}

// addParameter records a bind variable and returns the text that stands in
// for it in the SQL.
func (c *Converter) addParameter(original string) string {
	index := len(c.parameters) + 1
	var placeholder string
	if c.config.BindMode == BindPlaceholder {
		placeholder = "::" + original
	} else {
		placeholder = c.dialect.Placeholder(index)
	}
	c.parameters = append(c.parameters, Parameter{
		Name:         fmt.Sprintf("p%d", index),
		Placeholder:  placeholder,
		OriginalName: original,
	})
	return placeholder
}

// dateLiteralOperand extracts a candidate date literal token from a
// comparison operand.
func dateLiteralOperand(e ast.Expr) (string, bool) {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name, true
	case *ast.StringLit:
		return v.Value, true
	}
	return "", false
}

func quoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// flattenFieldPath renders a FieldAccess chain rooted at an identifier as
// a dotted path.
func flattenFieldPath(e ast.Expr) (string, bool) {
	switch v := e.(type) {
	case *ast.Identifier:
		return v.Name, true
	case *ast.FieldAccess:
		base, ok := flattenFieldPath(v.Object)
		if !ok {
			return "", false
		}
		return base + "." + v.Field, true
	}
	return "", false
}
