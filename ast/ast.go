// Package ast defines the syntax tree built by the parser and walked
// by the code generator. A tree is constructed for exactly one
// statement, consumed once by the generator, and then discarded -
// there is no cross-statement sharing of nodes.
package ast

import "github.com/skx/regc/token"

// Node is a single syntax tree node. Every internal node is one of
// the operator kinds; leaves are INT or ID. INCDEC nodes are unary
// with the operand in Right (Left is nil). Unary +/- are desugared
// by the parser into an ADDSUB node whose Left is a synthetic INT
// "0". ASSIGN and ADDSUB_ASSIGN keep the target identifier in Left
// and the expression in Right.
type Node struct {
	Kind   token.Kind
	Lexeme string
	Left   *Node
	Right  *Node
}

// NewLeaf builds a leaf node (INT or ID).
func NewLeaf(kind token.Kind, lexeme string) *Node {
	return &Node{Kind: kind, Lexeme: lexeme}
}

// NewUnary builds a node with only a Right child (INCDEC).
func NewUnary(kind token.Kind, lexeme string, right *Node) *Node {
	return &Node{Kind: kind, Lexeme: lexeme, Right: right}
}

// NewBinary builds a node with both children.
func NewBinary(kind token.Kind, lexeme string, left, right *Node) *Node {
	return &Node{Kind: kind, Lexeme: lexeme, Left: left, Right: right}
}

// ZeroLiteral is the synthetic INT "0" node the parser attaches as
// the left child of a desugared unary +/- expression.
func ZeroLiteral() *Node {
	return NewLeaf(token.INT, "0")
}

// ContainsIdentifier reports whether any node in the subtree rooted
// at n is an ID leaf. It is used by the code generator to implement
// the divide-by-literal-zero rule: division by a constant-zero
// subtree is only an error when that subtree has no identifiers in
// it.
func ContainsIdentifier(n *Node) bool {
	if n == nil {
		return false
	}
	if n.Kind == token.ID {
		return true
	}
	return ContainsIdentifier(n.Left) || ContainsIdentifier(n.Right)
}

// Prefix renders the tree as a prefix (node, then left, then right)
// sequence of lexemes, space-separated. The parser reads infix text,
// so only trees whose prefix and infix spellings coincide (a single
// leaf, or an increment/decrement such as "++ x") parse back to the
// same shape; a tree with a binary operator at its root renders in a
// form the parser rejects.
func (n *Node) Prefix() string {
	if n == nil {
		return ""
	}
	out := n.Lexeme
	if left := n.Left.Prefix(); left != "" {
		out += " " + left
	}
	if right := n.Right.Prefix(); right != "" {
		out += " " + right
	}
	return out
}
