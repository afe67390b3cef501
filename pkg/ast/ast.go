// Package ast defines the syntax tree produced by the Apex parser. Every
// node carries a half-open byte span into the original source. The tree is
// purely syntactic; no name resolution or type information is attached.
package ast

import "github.com/leapstack-labs/apexql/pkg/token"

// Node is the base interface for all syntax tree nodes.
type Node interface {
	// Pos returns the byte offset of the first character of the node.
	Pos() int
	// End returns the byte offset immediately after the node.
	End() int
}

// NodeInfo carries the source span and is embedded by every concrete node.
type NodeInfo struct {
	Span token.Span
}

// Pos implements Node.
func (n NodeInfo) Pos() int { return n.Span.Start }

// End implements Node.
func (n NodeInfo) End() int { return n.Span.End }

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a marker interface for top-level type declarations.
type Decl interface {
	Node
	declNode()
}

// Member is a marker interface for class and interface members.
type Member interface {
	Node
	memberNode()
}

// CompilationUnit is the root node for a single Apex source file. A file
// normally holds one declaration; the parser accepts any number.
type CompilationUnit struct {
	NodeInfo
	Declarations []Decl
}
