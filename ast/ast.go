// Package ast implements the structural parser (spec component D): it
// folds a standard token stream into a tree of tokens and
// paren-balanced delimited groups.
package ast

import (
	"github.com/vippsas/structgrep/cursor"
	"github.com/vippsas/structgrep/token"
)

// Kind distinguishes the two Node variants.
type Kind uint8

const (
	TokenNode Kind = iota
	DelimitedNode
)

// Node is either a single Token, or a Delimited group with an opening
// token, an optional closing token (nil iff the file ended before a
// closer was found), and the content between them.
type Node struct {
	Kind    Kind
	Tok     token.StandardToken  // meaningful iff Kind == TokenNode
	Op      token.StandardToken  // meaningful iff Kind == DelimitedNode
	Cp      *token.StandardToken // meaningful iff Kind == DelimitedNode; nil iff EOF before closer
	Content []Node                // meaningful iff Kind == DelimitedNode
}

// Span is the merge of op and its closer, or (if there is no closer)
// of op and the last child's span, or just op's span if there are no
// children either.
func (n Node) Span() cursor.Span {
	if n.Kind == TokenNode {
		return n.Tok.Span
	}
	span := n.Op.Span
	if n.Cp != nil {
		return span.Merge(n.Cp.Span)
	}
	if len(n.Content) > 0 {
		return span.Merge(n.Content[len(n.Content)-1].Span())
	}
	return span
}
