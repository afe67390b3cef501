package ast

// FieldDecl is a field declaration. One declaration may introduce several
// variables: Integer a = 1, b;
type FieldDecl struct {
	NodeInfo
	Annotations []Annotation
	Modifiers   MemberModifiers
	Type        TypeRef
	Declarators []VariableDeclarator
}

func (*FieldDecl) memberNode() {}

// VariableDeclarator is a single name with an optional initializer.
type VariableDeclarator struct {
	NodeInfo
	Name        string
	Initializer Expr // nil if absent
}

// MethodDecl is a method declaration. Body is nil for abstract methods.
type MethodDecl struct {
	NodeInfo
	Annotations    []Annotation
	Modifiers      MemberModifiers
	ReturnType     TypeRef
	Name           string
	TypeParameters []TypeParameter
	Parameters     []Parameter
	Body           *Block
}

func (*MethodDecl) memberNode() {}

// MethodSignature is a bodiless method inside an interface.
type MethodSignature struct {
	NodeInfo
	Annotations []Annotation
	ReturnType  TypeRef
	Name        string
	Parameters  []Parameter
}

func (*MethodSignature) memberNode() {}

// ConstructorDecl is a constructor declaration. Chain holds the leading
// this(...) or super(...) call when present.
type ConstructorDecl struct {
	NodeInfo
	Annotations []Annotation
	Modifiers   MemberModifiers
	Name        string
	Parameters  []Parameter
	Chain       *ConstructorChain
	Body        *Block
}

func (*ConstructorDecl) memberNode() {}

// ConstructorChain is a this(...) or super(...) call at the top of a
// constructor body.
type ConstructorChain struct {
	NodeInfo
	Kind      ChainKind
	Arguments []Expr
}

// ChainKind distinguishes this(...) from super(...).
type ChainKind int

const (
	ChainThis ChainKind = iota
	ChainSuper
)

// PropertyDecl is a property with get/set accessors.
type PropertyDecl struct {
	NodeInfo
	Annotations []Annotation
	Modifiers   MemberModifiers
	Type        TypeRef
	Name        string
	Getter      *PropertyAccessor
	Setter      *PropertyAccessor
}

func (*PropertyDecl) memberNode() {}

// PropertyAccessor is one get or set accessor. Body is nil for the
// auto-implemented form (get; set;). Accessors may carry their own access
// modifier: public Integer X { get; private set; }
type PropertyAccessor struct {
	NodeInfo
	Modifiers MemberModifiers
	Body      *Block
}

// StaticBlock is a static initializer block inside a class body.
type StaticBlock struct {
	NodeInfo
	Body *Block
}

func (*StaticBlock) memberNode() {}

// Parameter is a method or constructor parameter.
type Parameter struct {
	NodeInfo
	Annotations []Annotation
	IsFinal     bool
	Type        TypeRef
	Name        string
}
