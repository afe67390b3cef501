package ast

// NullLit is the null literal.
type NullLit struct {
	NodeInfo
}

func (*NullLit) exprNode() {}

// BoolLit is a true or false literal.
type BoolLit struct {
	NodeInfo
	Value bool
}

func (*BoolLit) exprNode() {}

// IntLit is an Integer literal. Hex, binary and octal forms are decoded by
// the lexer.
type IntLit struct {
	NodeInfo
	Value int64
}

func (*IntLit) exprNode() {}

// LongLit is a Long literal (L suffix).
type LongLit struct {
	NodeInfo
	Value int64
}

func (*LongLit) exprNode() {}

// DoubleLit is a Double or Decimal literal.
type DoubleLit struct {
	NodeInfo
	Value float64
}

func (*DoubleLit) exprNode() {}

// StringLit is a single-quoted string literal. Value holds the decoded
// text with escapes resolved.
type StringLit struct {
	NodeInfo
	Value string
}

func (*StringLit) exprNode() {}

// Identifier is a bare name.
type Identifier struct {
	NodeInfo
	Name string
}

func (*Identifier) exprNode() {}

// ThisExpr is the this keyword used as an expression.
type ThisExpr struct {
	NodeInfo
}

func (*ThisExpr) exprNode() {}

// SuperExpr is the super keyword used as an expression.
type SuperExpr struct {
	NodeInfo
}

func (*SuperExpr) exprNode() {}

// FieldAccess is object.field.
type FieldAccess struct {
	NodeInfo
	Object Expr
	Field  string
}

func (*FieldAccess) exprNode() {}

// ArrayAccess is array[index].
type ArrayAccess struct {
	NodeInfo
	Array Expr
	Index Expr
}

func (*ArrayAccess) exprNode() {}

// SafeNavigation is object?.field. A safe-navigated method call parses as
// a MethodCall whose Object is a SafeNavigation node.
type SafeNavigation struct {
	NodeInfo
	Object Expr
	Field  string
}

func (*SafeNavigation) exprNode() {}

// MethodCall is a method invocation. Object is nil for unqualified calls.
type MethodCall struct {
	NodeInfo
	Object        Expr // nil for foo()
	Name          string
	TypeArguments []TypeRef
	Arguments     []Expr
}

func (*MethodCall) exprNode() {}

// NewObject is new Type(args).
type NewObject struct {
	NodeInfo
	Type      TypeRef
	Arguments []Expr
}

func (*NewObject) exprNode() {}

// NewArray is new Type[size] or new Type[]{...}. Size and Initializer are
// mutually exclusive; Initializer is non-nil (possibly empty) for the
// braced form.
type NewArray struct {
	NodeInfo
	ElementType TypeRef
	Size        Expr
	Initializer []Expr
	HasInit     bool
}

func (*NewArray) exprNode() {}

// NewMap is new Map<K, V>{k => v, ...}. Initializer is nil when no braces
// follow the type.
type NewMap struct {
	NodeInfo
	Type        TypeRef
	Initializer []MapEntry
	HasInit     bool
}

func (*NewMap) exprNode() {}

// MapEntry is one key => value pair of a map initializer or literal.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// UnaryExpr is a prefix -, ! or ~ expression.
type UnaryExpr struct {
	NodeInfo
	Op      UnaryOp
	Operand Expr
}

func (*UnaryExpr) exprNode() {}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	UnaryNegate UnaryOp = iota // -
	UnaryNot                   // !
	UnaryBitNot                // ~
)

func (o UnaryOp) String() string {
	switch o {
	case UnaryNegate:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryBitNot:
		return "~"
	default:
		return "?"
	}
}

// PreIncrement is ++x.
type PreIncrement struct {
	NodeInfo
	Operand Expr
}

func (*PreIncrement) exprNode() {}

// PreDecrement is --x.
type PreDecrement struct {
	NodeInfo
	Operand Expr
}

func (*PreDecrement) exprNode() {}

// PostIncrement is x++.
type PostIncrement struct {
	NodeInfo
	Operand Expr
}

func (*PostIncrement) exprNode() {}

// PostDecrement is x--.
type PostDecrement struct {
	NodeInfo
	Operand Expr
}

func (*PostDecrement) exprNode() {}

// BinaryExpr is a binary operator expression. The SOQL condition operators
// (LIKE, IN, INCLUDES, ...) reuse this node inside query trees.
type BinaryExpr struct {
	NodeInfo
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo

	OpEqual
	OpNotEqual
	OpExactEqual
	OpExactNotEqual
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual

	OpAnd
	OpOr

	OpBitAnd
	OpBitOr
	OpBitXor
	OpShiftLeft
	OpShiftRight
	OpShiftRightUnsigned

	// Query condition operators
	OpLike
	OpIn
	OpNotIn
	OpIncludes
	OpExcludes
)

var binaryOpNames = map[BinaryOp]string{
	OpAdd:                "+",
	OpSubtract:           "-",
	OpMultiply:           "*",
	OpDivide:             "/",
	OpModulo:             "%",
	OpEqual:              "=",
	OpNotEqual:           "!=",
	OpExactEqual:         "===",
	OpExactNotEqual:      "!==",
	OpLess:               "<",
	OpGreater:            ">",
	OpLessEqual:          "<=",
	OpGreaterEqual:       ">=",
	OpAnd:                "AND",
	OpOr:                 "OR",
	OpBitAnd:             "&",
	OpBitOr:              "|",
	OpBitXor:             "^",
	OpShiftLeft:          "<<",
	OpShiftRight:         ">>",
	OpShiftRightUnsigned: ">>>",
	OpLike:               "LIKE",
	OpIn:                 "IN",
	OpNotIn:              "NOT IN",
	OpIncludes:           "INCLUDES",
	OpExcludes:           "EXCLUDES",
}

func (o BinaryOp) String() string {
	if s, ok := binaryOpNames[o]; ok {
		return s
	}
	return "?"
}

// TernaryExpr is cond ? then : else.
type TernaryExpr struct {
	NodeInfo
	Condition Expr
	Then      Expr
	Else      Expr
}

func (*TernaryExpr) exprNode() {}

// NullCoalesce is left ?? right.
type NullCoalesce struct {
	NodeInfo
	Left  Expr
	Right Expr
}

func (*NullCoalesce) exprNode() {}

// InstanceOf is expr instanceof Type.
type InstanceOf struct {
	NodeInfo
	Expression Expr
	Type       TypeRef
}

func (*InstanceOf) exprNode() {}

// CastExpr is (Type) expr.
type CastExpr struct {
	NodeInfo
	Type       TypeRef
	Expression Expr
}

func (*CastExpr) exprNode() {}

// AssignExpr is target op value. Assignment is right-associative.
type AssignExpr struct {
	NodeInfo
	Target Expr
	Op     AssignOp
	Value  Expr
}

func (*AssignExpr) exprNode() {}

// AssignOp identifies an assignment operator.
type AssignOp int

const (
	AssignPlain AssignOp = iota // =
	AssignAdd
	AssignSubtract
	AssignMultiply
	AssignDivide
	AssignModulo
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShiftLeft
	AssignShiftRight
	AssignShiftRightUnsigned
)

// BindVar is a :name bind variable inside a SOQL or SOSL query.
type BindVar struct {
	NodeInfo
	Name string
}

func (*BindVar) exprNode() {}

// ParenExpr is a parenthesized expression that was not a cast.
type ParenExpr struct {
	NodeInfo
	Expression Expr
}

func (*ParenExpr) exprNode() {}

// ListLiteral is a bracketed or braced list of expressions.
type ListLiteral struct {
	NodeInfo
	Elements []Expr
}

func (*ListLiteral) exprNode() {}

// SetLiteral is the braced initializer of new Set<...>{...}.
type SetLiteral struct {
	NodeInfo
	Elements []Expr
}

func (*SetLiteral) exprNode() {}

// MapLiteral is a braced list of key => value pairs.
type MapLiteral struct {
	NodeInfo
	Entries []MapEntry
}

func (*MapLiteral) exprNode() {}
