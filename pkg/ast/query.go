package ast

// SoqlQuery is a parsed SOQL query. It appears as an expression when
// embedded in Apex source and as the root node for standalone query text.
// Where and Having conditions reuse the expression nodes; comparison
// operands are field paths (Identifier or FieldAccess), literals, bind
// variables, or value lists.
type SoqlQuery struct {
	NodeInfo
	Select  []SelectItem
	From    string
	Where   Expr // nil if absent
	With    SoqlWith
	GroupBy []string
	Having  Expr // nil if absent
	OrderBy []OrderByField
	Limit   Expr // nil if absent
	Offset  Expr // nil if absent
	For     ForClause
}

func (*SoqlQuery) exprNode() {}

// SelectItem is one entry of a SELECT list.
type SelectItem interface {
	selectItem()
}

// FieldItem is a plain field path, possibly dotted: Account.Owner.Name.
type FieldItem struct {
	Field string
}

func (FieldItem) selectItem() {}

// SubqueryItem is a child relationship subquery in the SELECT list.
type SubqueryItem struct {
	Query *SoqlQuery
}

func (SubqueryItem) selectItem() {}

// TypeOfItem is a TYPEOF polymorphic field selection.
type TypeOfItem struct {
	Field      string
	Whens      []TypeOfWhen
	ElseFields []string // nil if no ELSE branch
}

func (TypeOfItem) selectItem() {}

// TypeOfWhen is one WHEN Type THEN fields branch of a TYPEOF clause.
type TypeOfWhen struct {
	TypeName string
	Fields   []string
}

// AggregateItem is an aggregate function call with an optional alias:
// COUNT(Id) total. COUNT() has an empty Field.
type AggregateItem struct {
	Function string
	Field    string
	Alias    string
}

func (AggregateItem) selectItem() {}

// SoqlWith is the WITH security clause of a query.
type SoqlWith int

const (
	WithNone SoqlWith = iota
	WithSecurityEnforced
	WithUserMode
	WithSystemMode
)

func (w SoqlWith) String() string {
	switch w {
	case WithSecurityEnforced:
		return "SECURITY_ENFORCED"
	case WithUserMode:
		return "USER_MODE"
	case WithSystemMode:
		return "SYSTEM_MODE"
	default:
		return ""
	}
}

// OrderByField is one ORDER BY entry. Ascending defaults to true; Nulls
// records an explicit NULLS FIRST/LAST, if any.
type OrderByField struct {
	Field     string
	Ascending bool
	Nulls     NullsOrder
}

// NullsOrder is the tri-state NULLS FIRST/LAST placement.
type NullsOrder int

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// ForClause is the trailing FOR clause of a query.
type ForClause int

const (
	ForNone ForClause = iota
	ForView
	ForReference
	ForUpdate
)

func (f ForClause) String() string {
	switch f {
	case ForView:
		return "FOR VIEW"
	case ForReference:
		return "FOR REFERENCE"
	case ForUpdate:
		return "FOR UPDATE"
	default:
		return ""
	}
}

// SoslQuery is a parsed SOSL search.
type SoslQuery struct {
	NodeInfo
	SearchTerm  string
	SearchGroup SearchGroup
	Returning   []SoslReturning
	With        []SoslWith
	Limit       Expr // nil if absent
}

func (*SoslQuery) exprNode() {}

// SearchGroup is the IN ... FIELDS scope of a search.
type SearchGroup int

const (
	SearchDefault SearchGroup = iota // no IN clause
	AllFields
	NameFields
	EmailFields
	PhoneFields
	SidebarFields
)

func (g SearchGroup) String() string {
	switch g {
	case AllFields:
		return "ALL FIELDS"
	case NameFields:
		return "NAME FIELDS"
	case EmailFields:
		return "EMAIL FIELDS"
	case PhoneFields:
		return "PHONE FIELDS"
	case SidebarFields:
		return "SIDEBAR FIELDS"
	default:
		return ""
	}
}

// SoslReturning is one RETURNING entry: object with an optional field list
// and filters.
type SoslReturning struct {
	Object   string
	Fields   []string
	Where    Expr // nil if absent
	OrderBy  []OrderByField
	Limit    int64
	HasLimit bool
}

// SoslWith is one WITH clause of a search.
type SoslWith struct {
	Kind     SoslWithKind
	Group    string // DATA CATEGORY group
	Category string // DATA CATEGORY category
	Network  string // NETWORK id
}

// SoslWithKind identifies the WITH clause variant.
type SoslWithKind int

const (
	WithDataCategory SoslWithKind = iota
	WithNetwork
	WithSnippet
	WithSpellCorrection
)
