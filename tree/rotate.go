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

// Rotation helpers. Every routing key below is reused verbatim from an
// existing node rather than recomputed by walking a subtree: for any
// of the four shapes here, the three routing keys needed after the
// rotation are exactly the pre-rotation routing keys of the old root,
// the pivot, and the untouched outer node, in that correspondence.
// internalWith already carries a node's own RoutingKey forward, which
// is what makes that reuse implicit in the calls below.

// singleRightRotationInsert handles the going-left insert case where
// cur.Balance was already negative and its rebuilt left child p is
// itself left-heavy. Both resulting balances are zero.
func singleRightRotationInsert(lab Labeler, cur, p *Internal) *Internal {
	newCurRight := internalWith(lab, cur, 0, p.Right, cur.Right)
	return internalWith(lab, p, 0, p.Left, newCurRight)
}

// singleLeftRotationInsert is the mirror image for the going-right
// insert case.
func singleLeftRotationInsert(lab Labeler, cur, p *Internal) *Internal {
	newCurLeft := internalWith(lab, cur, 0, cur.Left, p.Left)
	return internalWith(lab, p, 0, newCurLeft, p.Right)
}

// The deletion walk's single-rotation case is handled directly by
// deleteRotateShortenRight / deleteRotateShortenLeft in delete.go,
// since a predecessor-substitution deletion can also change the
// routing key the rotation needs to carry forward, and there is no
// delete-side equivalent of internalWith's implicit key reuse.

// doubleRotationBalances maps a pivot's own balance to the
// (newLeftBalance, newRightBalance) pair shared by both double
// rotations, in insert and delete contexts alike.
func doubleRotationBalances(pivotBalance int8) (newLeft, newRight int8) {
	switch pivotBalance {
	case -1:
		return 0, 1
	case 1:
		return -1, 0
	default:
		return 0, 0
	}
}

// doubleLeftRotation rebalances (cur, L, R) where R = cur.Right is
// internal and R.Left is internal. It is a pure node-graph transform
// used by the insert walk's going-right double-rotation branch; the
// deletion walk does its double rotations in deleteRotateShortenRight
// and deleteRotateShortenLeft, sharing only doubleRotationBalances.
func doubleLeftRotation(lab Labeler, cur, r *Internal) (*Internal, error) {
	p, ok := r.Left.(*Internal)
	if !ok {
		return nil, ErrUnbalanced
	}
	markVisited(p)
	newLeftBalance, newRightBalance := doubleRotationBalances(p.Balance)
	newLeft := internalWith(lab, cur, newLeftBalance, cur.Left, p.Left)
	newRight := internalWith(lab, r, newRightBalance, p.Right, r.Right)
	return internalWith(lab, p, 0, newLeft, newRight), nil
}

// doubleRightRotation is the mirror image, pivoting on L = cur.Left's
// right child.
func doubleRightRotation(lab Labeler, cur, l *Internal) (*Internal, error) {
	p, ok := l.Right.(*Internal)
	if !ok {
		return nil, ErrUnbalanced
	}
	markVisited(p)
	newLeftBalance, newRightBalance := doubleRotationBalances(p.Balance)
	newLeft := internalWith(lab, l, newLeftBalance, l.Left, p.Left)
	newRight := internalWith(lab, cur, newRightBalance, p.Right, cur.Right)
	return internalWith(lab, p, 0, newLeft, newRight), nil
}
