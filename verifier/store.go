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

package verifier

import (
	"bytes"
	"errors"

	"github.com/authtree/avl/proof"
	"github.com/authtree/avl/tree"
)

var (
	// ErrMalformedProof is returned when a proof.Node has a Kind the
	// decoder does not recognize, or a required child is missing.
	ErrMalformedProof = errors.New("verifier: malformed proof")

	// ErrDigestMismatch is returned when the digest recomputed from a
	// proof's root does not match the claimed pre-batch digest.
	ErrDigestMismatch = errors.New("verifier: proof does not match claimed pre-batch digest")

	// ErrNoProofLoaded is returned by Apply or Digest before LoadProof
	// has established a starting root.
	ErrNoProofLoaded = errors.New("verifier: no proof loaded")
)

// Store reconstructs only the part of the tree a proof discloses and
// replays a batch of operations against it using the same tree.Engine
// and rotation logic the prover uses, so that a correct proof drives
// both to the same post-batch digest.
type Store struct {
	cfg   tree.Config
	lab   tree.Labeler
	hooks *hooks

	engine *tree.Engine
}

// NewStore builds a Store with no proof loaded yet; call LoadProof
// before Apply.
func NewStore(cfg tree.Config, lab tree.Labeler) *Store {
	return &Store{cfg: cfg, lab: lab, hooks: newHooks(lab)}
}

// LoadProof reconstructs the partial pre-batch tree from p, checks
// that its root digest matches preDigest, and if so makes the Store
// ready to Apply the batch the proof covers.
func (s *Store) LoadProof(preDigest []byte, p *proof.Proof) error {
	root, err := reconstruct(s.lab, p.Root)
	if err != nil {
		return err
	}

	got := append(append([]byte{}, root.Label()...), byte(p.PreHeight))
	if !bytes.Equal(got, preDigest) {
		return ErrDigestMismatch
	}

	s.engine = tree.NewEngine(s.cfg, s.lab, s.hooks, root, p.PreHeight)
	return nil
}

// Apply executes one operation against the partial tree loaded by
// LoadProof. Reaching a part of the tree the proof did not disclose
// surfaces as tree.ErrLabelOnlyReached: the proof was insufficient
// for this batch.
func (s *Store) Apply(op tree.Operation) (oldValue []byte, present bool, err error) {
	if s.engine == nil {
		return nil, false, ErrNoProofLoaded
	}
	s.hooks.reset()
	return s.engine.Apply(op)
}

// Digest returns the current root digest.
func (s *Store) Digest() ([]byte, error) {
	if s.engine == nil {
		return nil, ErrNoProofLoaded
	}
	return s.engine.Digest(), nil
}

func reconstruct(lab tree.Labeler, n *proof.Node) (tree.Node, error) {
	if n == nil {
		return nil, ErrMalformedProof
	}
	switch n.Kind {
	case proof.KindLeaf:
		return tree.NewLeaf(lab, n.Key, n.Value, n.NextLeafKey), nil
	case proof.KindInternal:
		left, err := reconstruct(lab, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := reconstruct(lab, n.Right)
		if err != nil {
			return nil, err
		}
		return tree.NewInternal(lab, n.RoutingKey, n.Balance, left, right), nil
	case proof.KindLabelOnly:
		return tree.NewLabelOnly(tree.Label(n.Label)), nil
	default:
		return nil, ErrMalformedProof
	}
}
