package token

import "strings"

// keywords maps lowercase keyword text to its kind. The phrase keywords
// (with sharing, without sharing, inherited sharing) are assembled by the
// lexer and do not appear here.
var keywords = map[string]Kind{
	"abstract":   Abstract,
	"class":      Class,
	"enum":       Enum,
	"extends":    Extends,
	"final":      Final,
	"global":     Global,
	"implements": Implements,
	"interface":  Interface,
	"override":   Override,
	"private":    Private,
	"protected":  Protected,
	"public":     Public,
	"static":     Static,
	"testmethod": TestMethod,
	"transient":  Transient,
	"trigger":    Trigger,
	"virtual":    Virtual,
	"webservice": Webservice,

	"break":    Break,
	"catch":    Catch,
	"continue": Continue,
	"do":       Do,
	"else":     Else,
	"finally":  Finally,
	"for":      For,
	"if":       If,
	"new":      New,
	"return":   Return,
	"super":    Super,
	"switch":   Switch,
	"this":     This,
	"throw":    Throw,
	"try":      Try,
	"void":     Void,
	"when":     When,
	"while":    While,

	"delete":   Delete,
	"insert":   Insert,
	"merge":    Merge,
	"undelete": Undelete,
	"update":   Update,
	"upsert":   Upsert,

	"after":  After,
	"before": Before,
	"on":     On,

	"get": Get,
	"set": Set,

	"blob":     Blob,
	"boolean":  Boolean,
	"date":     Date,
	"datetime": Datetime,
	"decimal":  Decimal,
	"double":   Double,
	"id":       ID,
	"integer":  Integer,
	"list":     List,
	"long":     Long,
	"map":      Map,
	"object":   Object,
	"string":   StringType,
	"time":     Time,

	"false": False,
	"null":  Null,
	"true":  True,

	"instanceof": Instanceof,

	"and":       And,
	"asc":       Asc,
	"by":        By,
	"desc":      Desc,
	"excludes":  Excludes,
	"find":      Find,
	"first":     First,
	"from":      From,
	"group":     Group,
	"having":    Having,
	"in":        In,
	"includes":  Includes,
	"last":      Last,
	"like":      Like,
	"limit":     Limit,
	"not":       Not,
	"nulls":     Nulls,
	"offset":    Offset,
	"or":        Or,
	"order":     Order,
	"returning": Returning,
	"select":    Select,
	"where":     Where,
}

// LookupIdent returns the keyword kind for ident, or Ident when the word
// is not a keyword. Matching is case-insensitive.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[strings.ToLower(ident)]; ok {
		return k
	}
	return Ident
}

// IsKeyword returns true if ident is a reserved word (case-insensitive).
func IsKeyword(ident string) bool {
	_, ok := keywords[strings.ToLower(ident)]
	return ok
}
