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

// Hooks is the role-specific behavior the shared walk delegates to.
// The prover and verifier packages each supply their own
// implementation; the walk itself never branches on which role is
// running, so pairing the same sequence of operations with the two
// implementations over starting states that agree must yield
// identical digests.
type Hooks interface {
	// KeyMatchesLeaf reports whether key belongs at leaf, the unique
	// candidate slot the descent so far has identified. The verifier's
	// implementation recomputes this from the leaf's own Key field
	// exactly like the prover's; it exists as a hook only because the
	// two roles may source the leaf differently.
	KeyMatchesLeaf(key []byte, leaf *Leaf) bool

	// NextDirectionIsLeft reports whether descent from inode should go
	// left for key. Must be consistent with KeyMatchesLeaf.
	NextDirectionIsLeft(key []byte, inode *Internal) bool

	// MakeLeafPair builds the two-leaf subtree that replaces existing
	// when inserting a key strictly past it, preserving the
	// next-leaf-key chain.
	MakeLeafPair(existing *Leaf, newKey, newValue []byte) (*Internal, error)

	// ReplayComparison yields, one call at a time, the sign of
	// key-vs-routing-key that NextDirectionIsLeft already decided for
	// the current position during the modify walk. The deletion walk
	// calls this once per internal node it revisits, in the same order
	// NextDirectionIsLeft was consulted on the way down. Returning a
	// value whose sign disagrees with what the node's own contents
	// imply is a protocol error on the verifier side.
	ReplayComparison() (int, error)
}
