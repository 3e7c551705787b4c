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

// Engine runs the shared batch-operation algorithm over a single root
// node. It is purely functional over the node graph: Apply never
// mutates an existing node's fields other than the transient Visited
// flag, producing new nodes via copy-on-write constructors instead.
// The prover and verifier packages each construct one Engine, sharing
// this type and differing only in the Hooks and Labeler they supply
// and in how their root graph was populated (full tree vs. a proof's
// partial one).
type Engine struct {
	cfg   Config
	lab   Labeler
	hooks Hooks

	root       Node
	rootHeight uint8
}

// NewEngine constructs an Engine over an existing root and height. The
// caller is responsible for ensuring root already satisfies the tree
// invariants (for a brand new instance, use NewEmptyRoot to build a
// root that does).
func NewEngine(cfg Config, lab Labeler, hooks Hooks, root Node, rootHeight uint8) *Engine {
	return &Engine{cfg: cfg, lab: lab, hooks: hooks, root: root, rootHeight: rootHeight}
}

// NewEmptyRoot builds the root of a tree with no user keys: a single
// leaf whose key is the negative-infinity sentinel and whose
// next_leaf_key is the positive-infinity sentinel.
func NewEmptyRoot(cfg Config, lab Labeler) Node {
	return NewLeaf(lab, cfg.NegInfinity(), nil, cfg.PosInfinity())
}

// Root returns the current root node.
func (e *Engine) Root() Node { return e.root }

// RootHeight returns the current tree height.
func (e *Engine) RootHeight() uint8 { return e.rootHeight }

// Digest returns the externally visible commitment: the root label
// concatenated with the height as a single unsigned byte.
func (e *Engine) Digest() []byte {
	d := make([]byte, 0, len(e.root.Label())+1)
	d = append(d, e.root.Label()...)
	d = append(d, byte(e.rootHeight))
	return d
}

// Apply executes one operation against the current root, per §4.3:
// run the modify walk; if it deferred a deletion, run the deletion
// walk on the result; adjust the height counter by the walks'
// reported indicators; install the new root. It returns the value
// observed at the key before the operation, and whether the key was
// present at all.
func (e *Engine) Apply(op Operation) (oldValue []byte, present bool, err error) {
	if err := e.cfg.checkKey(op.Key); err != nil {
		return nil, false, err
	}

	result, err := e.modify(e.root, op)
	if err != nil {
		return nil, false, err
	}

	newRoot := result.node

	if result.toDelete {
		deleted, heightDecreased, _, err := e.deleteHelper(newRoot, false)
		if err != nil {
			return nil, false, err
		}
		newRoot = deleted
		if heightDecreased {
			if e.rootHeight == 0 {
				return nil, false, ErrHeightOutOfRange
			}
			e.rootHeight--
		}
	} else if result.changed && result.heightIncreased {
		if e.rootHeight == 255 {
			return nil, false, ErrHeightOutOfRange
		}
		e.rootHeight++
	}

	e.root = newRoot
	return result.oldValue, result.present, nil
}
