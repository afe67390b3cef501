package ast

// AccessModifier is the visibility of a declaration. The zero value is
// private, matching the language default.
type AccessModifier int

const (
	AccessPrivate AccessModifier = iota
	AccessPublic
	AccessProtected
	AccessGlobal
)

func (a AccessModifier) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessGlobal:
		return "global"
	default:
		return "private"
	}
}

// SharingModifier is the sharing mode of a class declaration.
type SharingModifier int

const (
	SharingNone SharingModifier = iota // no sharing clause present
	WithSharing
	WithoutSharing
	InheritedSharing
)

func (s SharingModifier) String() string {
	switch s {
	case WithSharing:
		return "with sharing"
	case WithoutSharing:
		return "without sharing"
	case InheritedSharing:
		return "inherited sharing"
	default:
		return ""
	}
}

// ClassModifiers holds the modifier set of a class declaration.
type ClassModifiers struct {
	Access     AccessModifier
	IsAbstract bool
	IsVirtual  bool
	Sharing    SharingModifier
}

// MemberModifiers holds the modifier set of a class member. Inner classes
// reuse this set, which is why it carries a sharing mode.
type MemberModifiers struct {
	Access       AccessModifier
	IsStatic     bool
	IsFinal      bool
	IsAbstract   bool
	IsVirtual    bool
	IsOverride   bool
	IsTransient  bool
	IsTestMethod bool
	IsWebservice bool
	Sharing      SharingModifier
}

// Annotation is a declaration annotation such as @isTest or
// @AuraEnabled(cacheable=true).
type Annotation struct {
	NodeInfo
	Name       string
	Parameters []AnnotationParameter
}

// AnnotationParameter is one name=value pair inside an annotation. A bare
// value has an empty Name.
type AnnotationParameter struct {
	Name  string
	Value Expr
}

// TypeParameter is a generic type parameter on a class or method.
type TypeParameter struct {
	NodeInfo
	Name string
}

// TypeRef is a reference to a type, possibly qualified, with optional type
// arguments and array suffix. Name holds the dotted form as written, e.g.
// "System.Url" or "Map".
type TypeRef struct {
	NodeInfo
	Name          string
	TypeArguments []TypeRef
	IsArray       bool
}

// ClassDecl is a class declaration. Inner classes appear both as Decl (at
// the top level) and Member (nested).
type ClassDecl struct {
	NodeInfo
	Annotations    []Annotation
	Modifiers      ClassModifiers
	Name           string
	TypeParameters []TypeParameter
	Extends        *TypeRef
	Implements     []TypeRef
	Members        []Member
}

func (*ClassDecl) declNode()   {}
func (*ClassDecl) memberNode() {}

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	NodeInfo
	Annotations    []Annotation
	Access         AccessModifier
	Name           string
	TypeParameters []TypeParameter
	Extends        []TypeRef
	Members        []Member
}

func (*InterfaceDecl) declNode()   {}
func (*InterfaceDecl) memberNode() {}

// EnumDecl is an enum declaration. Values are the constant names in
// declaration order.
type EnumDecl struct {
	NodeInfo
	Annotations []Annotation
	Access      AccessModifier
	Name        string
	Values      []string
}

func (*EnumDecl) declNode()   {}
func (*EnumDecl) memberNode() {}

// TriggerDecl is a trigger declaration: trigger Name on Object (events) {}.
type TriggerDecl struct {
	NodeInfo
	Name   string
	Object string
	Events []TriggerEvent
	Body   *Block
}

func (*TriggerDecl) declNode() {}

// TriggerEvent is one timing/operation pair in a trigger event list.
// There is no before-undelete event.
type TriggerEvent int

const (
	BeforeInsert TriggerEvent = iota
	BeforeUpdate
	BeforeDelete
	AfterInsert
	AfterUpdate
	AfterDelete
	AfterUndelete
)

func (e TriggerEvent) String() string {
	switch e {
	case BeforeInsert:
		return "before insert"
	case BeforeUpdate:
		return "before update"
	case BeforeDelete:
		return "before delete"
	case AfterInsert:
		return "after insert"
	case AfterUpdate:
		return "after update"
	case AfterDelete:
		return "after delete"
	case AfterUndelete:
		return "after undelete"
	default:
		return "unknown"
	}
}
