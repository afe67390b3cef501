// Package token defines the lexical tokens of the Apex language, including
// the embedded SOQL/SOSL query keywords. Keywords are matched
// case-insensitively; the sharing qualifiers are matched as whole phrases.
package token

import "fmt"

// Kind represents the type of a lexical token.
type Kind int32

const (
	// Special tokens
	EOF Kind = iota

	// Identifiers and literals
	Ident      // myVar
	Annotation // @isTest (Text holds the name without '@')
	IntLit     // 42, 0x1F, 0b1010, 0755
	LongLit    // 42L, 0x1FL
	DoubleLit  // 3.14, 1e10
	StrLit     // 'hello'

	// Declaration keywords
	Abstract
	Class
	Enum
	Extends
	Final
	Global
	Implements
	InheritedSharing
	Interface
	Override
	Private
	Protected
	Public
	Static
	TestMethod
	Transient
	Trigger
	Virtual
	Webservice
	WithSharing
	WithoutSharing

	// Statement keywords
	Break
	Catch
	Continue
	Do
	Else
	Finally
	For
	If
	New
	Return
	Super
	Switch
	This
	Throw
	Try
	Void
	When
	While

	// DML keywords
	Delete
	Insert
	Merge
	Undelete
	Update
	Upsert

	// Trigger event keywords
	After
	Before
	On

	// Property accessor keywords
	Get
	Set

	// Type keywords
	Blob
	Boolean
	Date
	Datetime
	Decimal
	Double
	ID
	Integer
	List
	Long
	Map
	Object
	StringType
	Time

	// Literal keywords
	False
	Null
	True

	// Operator keywords
	Instanceof

	// SOQL / SOSL keywords
	And
	Asc
	By
	Desc
	Excludes
	Find
	First
	From
	Group
	Having
	In
	Includes
	Last
	Like
	Limit
	Not
	Nulls
	Offset
	Or
	Order
	Returning
	Select
	Where

	// Operators
	Assign           // =
	Eq               // ==
	NotEq            // !=
	LtGt             // <>
	ExactEq          // ===
	ExactNotEq       // !==
	Lt               // <
	Gt               // >
	LtEq             // <=
	GtEq             // >=
	Shl              // <<
	Shr              // >>
	UShr             // >>>
	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	PlusPlus         // ++
	MinusMinus       // --
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	ShlAssign        // <<=
	ShrAssign        // >>=
	UShrAssign       // >>>=
	Amp              // &
	Pipe             // |
	Caret            // ^
	Tilde            // ~
	AmpAmp           // &&
	PipePipe         // ||
	Bang             // !
	Question         // ?
	QuestionQuestion // ??
	QuestionDot      // ?.
	Arrow            // =>

	// Delimiters
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Colon     // :
	Comma     // ,
	Dot       // .
)

// Token is a lexical token with its source span and decoded payload.
// Text holds the raw source slice (for Ident and Annotation, the name);
// the typed payload fields are populated for literal kinds only.
type Token struct {
	Kind  Kind
	Text  string
	Str   string  // decoded payload for StrLit
	Int   int64   // payload for IntLit and LongLit
	Float float64 // payload for DoubleLit
	Span  Span
	Pos   Position
}

// String returns a human-readable representation of the token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Ident:      "identifier",
	Annotation: "annotation",
	IntLit:     "integer literal",
	LongLit:    "long literal",
	DoubleLit:  "double literal",
	StrLit:     "string literal",

	Abstract:         "abstract",
	Class:            "class",
	Enum:             "enum",
	Extends:          "extends",
	Final:            "final",
	Global:           "global",
	Implements:       "implements",
	InheritedSharing: "inherited sharing",
	Interface:        "interface",
	Override:         "override",
	Private:          "private",
	Protected:        "protected",
	Public:           "public",
	Static:           "static",
	TestMethod:       "testmethod",
	Transient:        "transient",
	Trigger:          "trigger",
	Virtual:          "virtual",
	Webservice:       "webservice",
	WithSharing:      "with sharing",
	WithoutSharing:   "without sharing",

	Break:    "break",
	Catch:    "catch",
	Continue: "continue",
	Do:       "do",
	Else:     "else",
	Finally:  "finally",
	For:      "for",
	If:       "if",
	New:      "new",
	Return:   "return",
	Super:    "super",
	Switch:   "switch",
	This:     "this",
	Throw:    "throw",
	Try:      "try",
	Void:     "void",
	When:     "when",
	While:    "while",

	Delete:   "delete",
	Insert:   "insert",
	Merge:    "merge",
	Undelete: "undelete",
	Update:   "update",
	Upsert:   "upsert",

	After:  "after",
	Before: "before",
	On:     "on",

	Get: "get",
	Set: "set",

	Blob:       "Blob",
	Boolean:    "Boolean",
	Date:       "Date",
	Datetime:   "Datetime",
	Decimal:    "Decimal",
	Double:     "Double",
	ID:         "Id",
	Integer:    "Integer",
	List:       "List",
	Long:       "Long",
	Map:        "Map",
	Object:     "Object",
	StringType: "String",
	Time:       "Time",

	False: "false",
	Null:  "null",
	True:  "true",

	Instanceof: "instanceof",

	And:       "AND",
	Asc:       "ASC",
	By:        "BY",
	Desc:      "DESC",
	Excludes:  "EXCLUDES",
	Find:      "FIND",
	First:     "FIRST",
	From:      "FROM",
	Group:     "GROUP",
	Having:    "HAVING",
	In:        "IN",
	Includes:  "INCLUDES",
	Last:      "LAST",
	Like:      "LIKE",
	Limit:     "LIMIT",
	Not:       "NOT",
	Nulls:     "NULLS",
	Offset:    "OFFSET",
	Or:        "OR",
	Order:     "ORDER",
	Returning: "RETURNING",
	Select:    "SELECT",
	Where:     "WHERE",

	Assign:           "=",
	Eq:               "==",
	NotEq:            "!=",
	LtGt:             "<>",
	ExactEq:          "===",
	ExactNotEq:       "!==",
	Lt:               "<",
	Gt:               ">",
	LtEq:             "<=",
	GtEq:             ">=",
	Shl:              "<<",
	Shr:              ">>",
	UShr:             ">>>",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	Slash:            "/",
	Percent:          "%",
	PlusPlus:         "++",
	MinusMinus:       "--",
	PlusAssign:       "+=",
	MinusAssign:      "-=",
	StarAssign:       "*=",
	SlashAssign:      "/=",
	PercentAssign:    "%=",
	AmpAssign:        "&=",
	PipeAssign:       "|=",
	CaretAssign:      "^=",
	ShlAssign:        "<<=",
	ShrAssign:        ">>=",
	UShrAssign:       ">>>=",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	AmpAmp:           "&&",
	PipePipe:         "||",
	Bang:             "!",
	Question:         "?",
	QuestionQuestion: "??",
	QuestionDot:      "?.",
	Arrow:            "=>",

	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Semicolon: ";",
	Colon:     ":",
	Comma:     ",",
	Dot:       ".",
}

// String returns a display form of the token for error messages.
func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("identifier %q", t.Text)
	case Annotation:
		return fmt.Sprintf("@%s", t.Text)
	case IntLit, LongLit, DoubleLit:
		return t.Text
	case StrLit:
		return fmt.Sprintf("'%s'", t.Str)
	default:
		return t.Kind.String()
	}
}
