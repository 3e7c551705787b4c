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

// Package prover implements the node-store side of the authenticated
// dictionary that holds the full tree in memory and emits a proof for
// each batch of operations it applies.
package prover

import (
	"bytes"

	"github.com/authtree/avl/tree"
)

// hooks is the prover's tree.Hooks implementation. Every public
// operation's modify walk records the ternary sign of each routing
// comparison it makes, in NextDirectionIsLeft, onto comparisons; a
// subsequent deletion walk replays them in the same order. The queue
// is reset once per operation, not once per batch.
type hooks struct {
	lab         tree.Labeler
	comparisons []int
}

func newHooks(lab tree.Labeler) *hooks {
	return &hooks{lab: lab}
}

func (h *hooks) reset() {
	h.comparisons = h.comparisons[:0]
}

func (h *hooks) KeyMatchesLeaf(key []byte, leaf *tree.Leaf) bool {
	return bytes.Equal(key, leaf.Key)
}

func (h *hooks) NextDirectionIsLeft(key []byte, inode *tree.Internal) bool {
	cmp := bytes.Compare(key, inode.RoutingKey)
	h.comparisons = append(h.comparisons, cmp)
	return cmp < 0
}

func (h *hooks) MakeLeafPair(existing *tree.Leaf, newKey, newValue []byte) (*tree.Internal, error) {
	updatedExisting := tree.NewLeaf(h.lab, existing.Key, existing.Value, newKey)
	newLeaf := tree.NewLeaf(h.lab, newKey, newValue, existing.NextLeafKey)
	return tree.NewInternal(h.lab, newKey, 0, updatedExisting, newLeaf), nil
}

func (h *hooks) ReplayComparison() (int, error) {
	if len(h.comparisons) == 0 {
		return 0, tree.ErrProtocolReplayMismatch
	}
	cmp := h.comparisons[0]
	h.comparisons = h.comparisons[1:]
	return cmp, nil
}
