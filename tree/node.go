// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package tree

// Label is the cryptographic name of a node: a domain-separated hash of
// its children (internal) or of its key/value pair (leaf). LabelOnly
// nodes carry a Label copied verbatim from a proof and nothing else.
type Label []byte

// Node is the tagged union of the three node shapes that can appear in
// a tree rooted at a digest: Leaf, Internal and LabelOnly. Only Leaf and
// Internal can be descended into; reaching a LabelOnly node during a
// walk means the walk left the region covered by the current proof.
type Node interface {
	Label() Label

	isNode()
}

// Leaf is a key/value pair. NextLeafKey is the key of the leaf
// immediately to the right of this one in key order; it lets a lookup
// prove the absence of a key by exhibiting the two leaves that bracket
// it. The leftmost leaf always has the NegInfinity sentinel as its key
// and the rightmost leaf's NextLeafKey is the PosInfinity sentinel, so
// the two sentinels bracket every real key; no leaf has PosInfinity as
// its key.
type Leaf struct {
	Key         []byte
	Value       []byte
	NextLeafKey []byte

	label   Label
	Visited bool
}

func (l *Leaf) Label() Label { return l.label }
func (*Leaf) isNode()        {}

// NewLeaf builds a fresh leaf and labels it. Callers never mutate a
// Leaf in place; every change produces a new value via one of the
// leafWith* helpers below, leaving the original untouched for anyone
// still holding a reference to it (an in-flight proof, e.g.).
func NewLeaf(lab Labeler, key, value, nextLeafKey []byte) *Leaf {
	l := &Leaf{Key: key, Value: value, NextLeafKey: nextLeafKey}
	l.label = lab.LeafLabel(l)
	return l
}

func leafWithValue(lab Labeler, l *Leaf, value []byte) *Leaf {
	return NewLeaf(lab, l.Key, value, l.NextLeafKey)
}

func leafWithNextLeafKey(lab Labeler, l *Leaf, nextLeafKey []byte) *Leaf {
	return NewLeaf(lab, l.Key, l.Value, nextLeafKey)
}

func leafWithKeyAndValue(lab Labeler, l *Leaf, key, value []byte) *Leaf {
	return NewLeaf(lab, key, value, l.NextLeafKey)
}

// Internal is a branch node. RoutingKey is the minimum key stored in
// the right subtree; a walk goes left when the sought key is strictly
// less than RoutingKey and right otherwise. Balance follows the AVL
// convention used throughout this package: height(Right) -
// height(Left), so a negative balance means the left subtree is
// taller and a positive balance means the right subtree is taller.
type Internal struct {
	RoutingKey []byte
	Balance    int8
	Left       Node
	Right      Node

	label   Label
	Visited bool
}

func (n *Internal) Label() Label { return n.label }
func (*Internal) isNode()        {}

func NewInternal(lab Labeler, routingKey []byte, balance int8, left, right Node) *Internal {
	n := &Internal{RoutingKey: routingKey, Balance: balance, Left: left, Right: right}
	n.label = lab.InternalLabel(n)
	return n
}

func internalWith(lab Labeler, n *Internal, balance int8, left, right Node) *Internal {
	return NewInternal(lab, n.RoutingKey, balance, left, right)
}

func internalWithRoutingKey(lab Labeler, n *Internal, routingKey []byte, balance int8, left, right Node) *Internal {
	return NewInternal(lab, routingKey, balance, left, right)
}

// LabelOnly is a stub standing in for a subtree that a proof did not
// open. It carries only the label needed to authenticate the part of
// the tree that was opened; walking into it is always a protocol
// error, since a correctly constructed proof never needs to descend
// past the frontier it committed to.
type LabelOnly struct {
	label Label
}

func NewLabelOnly(label Label) *LabelOnly { return &LabelOnly{label: label} }

func (n *LabelOnly) Label() Label { return n.label }
func (*LabelOnly) isNode()        {}

// markVisited sets the transient visited flag on n. Called only once a
// walk has committed to a successful outcome, in the post-order
// sequence §4.4/§4.5 describe; never called on an aborted branch.
func markVisited(n Node) {
	switch v := n.(type) {
	case *Leaf:
		v.Visited = true
	case *Internal:
		v.Visited = true
	}
}
