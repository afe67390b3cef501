package ast

// Block is a braced sequence of statements. It is itself a statement.
type Block struct {
	NodeInfo
	Statements []Stmt
}

func (*Block) stmtNode() {}

// LocalVarDecl is a local variable declaration statement.
type LocalVarDecl struct {
	NodeInfo
	IsFinal     bool
	Type        TypeRef
	Declarators []VariableDeclarator
}

func (*LocalVarDecl) stmtNode() {}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	NodeInfo
	Expression Expr
}

func (*ExprStmt) stmtNode() {}

// IfStmt is an if statement with an optional else branch. The else branch
// may itself be an IfStmt, forming an else-if chain.
type IfStmt struct {
	NodeInfo
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if absent
}

func (*IfStmt) stmtNode() {}

// ForInit is the initializer of a traditional for loop: either a variable
// declaration or a comma-separated expression list.
type ForInit struct {
	Variables   *LocalVarDecl
	Expressions []Expr
}

// ForStmt is a traditional three-part for loop. Any part may be empty.
type ForStmt struct {
	NodeInfo
	Init      *ForInit
	Condition Expr // nil if absent
	Update    []Expr
	Body      Stmt
}

func (*ForStmt) stmtNode() {}

// ForEachStmt is the collection form: for (Type name : iterable) body.
type ForEachStmt struct {
	NodeInfo
	Type     TypeRef
	Variable string
	Iterable Expr
	Body     Stmt
}

func (*ForEachStmt) stmtNode() {}

// WhileStmt is a while loop.
type WhileStmt struct {
	NodeInfo
	Condition Expr
	Body      Stmt
}

func (*WhileStmt) stmtNode() {}

// DoWhileStmt is a do-while loop.
type DoWhileStmt struct {
	NodeInfo
	Body      Stmt
	Condition Expr
}

func (*DoWhileStmt) stmtNode() {}

// SwitchStmt is a switch on expression { when ... } statement.
type SwitchStmt struct {
	NodeInfo
	Expression Expr
	Whens      []WhenClause
}

func (*SwitchStmt) stmtNode() {}

// WhenClause is one when branch of a switch statement.
type WhenClause struct {
	NodeInfo
	Value WhenValue
	Block *Block
}

// WhenValue is the matched value set of a when branch: a literal list, a
// type pattern with a binding variable, or else. Exactly one form is set;
// IsElse marks the else branch.
type WhenValue struct {
	Literals []Expr
	Type     *TypeRef
	Variable string
	IsElse   bool
}

// ReturnStmt is a return statement with an optional value.
type ReturnStmt struct {
	NodeInfo
	Value Expr // nil for bare return
}

func (*ReturnStmt) stmtNode() {}

// ThrowStmt is a throw statement.
type ThrowStmt struct {
	NodeInfo
	Exception Expr
}

func (*ThrowStmt) stmtNode() {}

// BreakStmt is a break statement.
type BreakStmt struct {
	NodeInfo
}

func (*BreakStmt) stmtNode() {}

// ContinueStmt is a continue statement.
type ContinueStmt struct {
	NodeInfo
}

func (*ContinueStmt) stmtNode() {}

// TryStmt is a try statement. At least one catch clause or a finally block
// is present.
type TryStmt struct {
	NodeInfo
	Try     *Block
	Catches []CatchClause
	Finally *Block // nil if absent
}

func (*TryStmt) stmtNode() {}

// CatchClause is one catch (Type name) block.
type CatchClause struct {
	NodeInfo
	Type     TypeRef
	Variable string
	Block    *Block
}

// DmlStmt is a data-manipulation statement: insert, update, upsert, delete,
// undelete, or merge, with an optional "as user" / "as system" qualifier.
type DmlStmt struct {
	NodeInfo
	Operation   DmlOp
	Expression  Expr
	AccessLevel DmlAccessLevel
}

func (*DmlStmt) stmtNode() {}

// DmlOp identifies the DML operation.
type DmlOp int

const (
	DmlInsert DmlOp = iota
	DmlUpdate
	DmlUpsert
	DmlDelete
	DmlUndelete
	DmlMerge
)

func (o DmlOp) String() string {
	switch o {
	case DmlInsert:
		return "insert"
	case DmlUpdate:
		return "update"
	case DmlUpsert:
		return "upsert"
	case DmlDelete:
		return "delete"
	case DmlUndelete:
		return "undelete"
	case DmlMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// DmlAccessLevel is the optional "as user" / "as system" qualifier.
type DmlAccessLevel int

const (
	DmlAccessDefault DmlAccessLevel = iota
	DmlAccessUser
	DmlAccessSystem
)

// EmptyStmt is a lone semicolon.
type EmptyStmt struct {
	NodeInfo
}

func (*EmptyStmt) stmtNode() {}
