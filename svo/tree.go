package svo

import (
	"errors"
	"fmt"
	"strings"

	sent "github.com/revelaction/relex/sentence"
)

var (
	ErrNoRoot        = errors.New("tree has no root token")
	ErrMultipleRoots = errors.New("tree has more than one root token")
	ErrCycle         = errors.New("head chain does not reach the root")
)

// Token is a parsed token linked to its head and its ordered dependents.
// It is read only once the Tree is built.
type Token struct {
	tok   sent.Token
	lower string

	head   *Token
	lefts  []*Token
	rights []*Token
}

var _ Item = (*Token)(nil)

func (t *Token) Text() string  { return t.tok.Text }
func (t *Token) Lower() string { return t.lower }
func (t *Token) Pos() string   { return t.tok.Pos }
func (t *Token) Dep() string   { return t.tok.Dep }
func (t *Token) Index() int    { return t.tok.Index }

// Head returns the governing token. The root returns itself.
func (t *Token) Head() *Token { return t.head }

// Lefts returns the dependents positioned before the token, in sentence order.
func (t *Token) Lefts() []*Token { return t.lefts }

// Rights returns the dependents positioned after the token, in sentence order.
func (t *Token) Rights() []*Token { return t.rights }

func (t *Token) hasChildren() bool {
	return len(t.lefts) > 0 || len(t.rights) > 0
}

// isHeadOfItself reports whether the token is the structural root.
func (t *Token) isHeadOfItself() bool {
	return t.head == t
}

// isRoot reports whether the token is the root, either structurally or by
// its dependency label.
func (t *Token) isRoot() bool {
	return t.isHeadOfItself() || strings.EqualFold(t.tok.Dep, depRoot)
}

// Tree is the dependency tree of one sentence.
type Tree struct {
	tokens []*Token
}

// NewTree links the tokens of a sentence. Token Index values must match their
// position and every Head must point to a token of the sentence. NewTree does
// not check for cycles, see Validate.
func NewTree(tokens []sent.Token) (*Tree, error) {
	nodes := make([]*Token, len(tokens))
	for i, tok := range tokens {
		if tok.Index != i {
			return nil, fmt.Errorf("token %q at position %d has index %d", tok.Text, i, tok.Index)
		}
		nodes[i] = &Token{tok: tok, lower: strings.ToLower(tok.Text)}
	}

	for i, n := range nodes {
		h := n.tok.Head
		if h < 0 || h >= len(nodes) {
			return nil, fmt.Errorf("token %q at position %d has head %d out of range", n.tok.Text, i, h)
		}
		n.head = nodes[h]
		if h == i {
			continue
		}

		// children are visited in index order, so both lists stay ordered
		if i < h {
			nodes[h].lefts = append(nodes[h].lefts, n)
		} else {
			nodes[h].rights = append(nodes[h].rights, n)
		}
	}

	return &Tree{tokens: nodes}, nil
}

// Tokens returns the tokens in sentence order.
func (t *Tree) Tokens() []*Token {
	return t.tokens
}

// Root returns the first token that is its own head, or nil.
func (t *Tree) Root() *Token {
	for _, n := range t.tokens {
		if n.isHeadOfItself() {
			return n
		}
	}
	return nil
}

// Validate checks that the tree has exactly one root and that every head
// chain reaches it.
func (t *Tree) Validate() error {
	if len(t.tokens) == 0 {
		return nil
	}

	roots := 0
	for _, n := range t.tokens {
		if n.isHeadOfItself() {
			roots++
		}
	}

	switch {
	case roots == 0:
		return ErrNoRoot
	case roots > 1:
		return ErrMultipleRoots
	}

	for _, n := range t.tokens {
		cur := n
		for hops := 0; !cur.isHeadOfItself(); hops++ {
			if hops >= len(t.tokens) {
				return fmt.Errorf("token %q at position %d: %w", n.tok.Text, n.tok.Index, ErrCycle)
			}
			cur = cur.head
		}
	}

	return nil
}
