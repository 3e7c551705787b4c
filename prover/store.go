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

package prover

import (
	"errors"

	"github.com/authtree/avl/proof"
	"github.com/authtree/avl/tree"
)

// ErrNoBatchInProgress is returned by EndBatch when no operation has
// been applied since the previous EndBatch (or since the Store was
// created).
var ErrNoBatchInProgress = errors.New("prover: no batch in progress")

// Store holds the complete authenticated tree and answers operations
// against it, recording the proof obligation incrementally. Callers
// group a sequence of operations into one batch by calling Apply
// repeatedly and then EndBatch once to receive the proof covering all
// of them.
type Store struct {
	cfg    tree.Config
	lab    tree.Labeler
	hooks  *hooks
	engine *tree.Engine

	batchRoot   tree.Node
	batchHeight uint8
	inBatch     bool
}

// NewStore builds a Store with an empty tree.
func NewStore(cfg tree.Config, lab tree.Labeler) *Store {
	h := newHooks(lab)
	root := tree.NewEmptyRoot(cfg, lab)
	engine := tree.NewEngine(cfg, lab, h, root, 0)
	return &Store{cfg: cfg, lab: lab, hooks: h, engine: engine}
}

// Digest returns the current root digest.
func (s *Store) Digest() []byte { return s.engine.Digest() }

// Root returns the current root node, for callers that need to
// snapshot it (see Reset).
func (s *Store) Root() tree.Node { return s.engine.Root() }

// RootHeight returns the current tree height.
func (s *Store) RootHeight() uint8 { return s.engine.RootHeight() }

// Reset rebuilds the Store's engine from a previously captured root
// and height, discarding any in-progress batch. It is how a dry run
// undoes a batch it decided not to keep.
func (s *Store) Reset(root tree.Node, height uint8) {
	s.engine = tree.NewEngine(s.cfg, s.lab, s.hooks, root, height)
	s.inBatch = false
}

// Apply executes one operation against the tree. The first Apply call
// after construction or after the last EndBatch implicitly starts a
// new batch.
func (s *Store) Apply(op tree.Operation) (oldValue []byte, present bool, err error) {
	if !s.inBatch {
		s.batchRoot = s.engine.Root()
		s.batchHeight = s.engine.RootHeight()
		s.inBatch = true
	}
	s.hooks.reset()
	return s.engine.Apply(op)
}

// EndBatch closes the in-progress batch and returns a proof of every
// operation applied since it started. The tree's transient visited
// flags are cleared from the live post-batch root, not batchRoot: a
// later operation in the same batch can walk back through an
// intermediate node an earlier operation just created, marking it
// visited without that node ever becoming reachable from batchRoot,
// and only the live root is guaranteed to still hold it.
func (s *Store) EndBatch() (*proof.Proof, error) {
	if !s.inBatch {
		return nil, ErrNoBatchInProgress
	}
	root := buildProofNode(s.batchRoot)
	clearVisited(s.engine.Root())
	s.inBatch = false
	return &proof.Proof{PreHeight: s.batchHeight, Root: root}, nil
}

func buildProofNode(n tree.Node) *proof.Node {
	switch v := n.(type) {
	case *tree.Leaf:
		if !v.Visited {
			return &proof.Node{Kind: proof.KindLabelOnly, Label: v.Label()}
		}
		return &proof.Node{
			Kind:        proof.KindLeaf,
			Key:         v.Key,
			Value:       v.Value,
			NextLeafKey: v.NextLeafKey,
		}
	case *tree.Internal:
		if !v.Visited {
			return &proof.Node{Kind: proof.KindLabelOnly, Label: v.Label()}
		}
		return &proof.Node{
			Kind:       proof.KindInternal,
			Balance:    v.Balance,
			RoutingKey: v.RoutingKey,
			Left:       buildProofNode(v.Left),
			Right:      buildProofNode(v.Right),
		}
	default:
		return &proof.Node{Kind: proof.KindLabelOnly, Label: n.Label()}
	}
}

// clearVisited resets every transient visited flag in n, which must
// be the live post-batch root. It walks the whole tree without
// pruning: a copy-on-write rebuild gives a walked path fresh,
// unvisited parents, so a node visited earlier in the batch (by a
// lookup, say) can sit below an unvisited one.
func clearVisited(n tree.Node) {
	switch v := n.(type) {
	case *tree.Leaf:
		v.Visited = false
	case *tree.Internal:
		v.Visited = false
		clearVisited(v.Left)
		clearVisited(v.Right)
	}
}
