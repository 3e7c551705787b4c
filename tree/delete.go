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

// deleteHelper implements the second pass of the deletion protocol: it
// is entered only when the modify walk set toDelete, and it replays
// the comparisons that walk already made (via Hooks.ReplayComparison)
// to re-descend the same path, perform the predecessor-substitution
// copy-over when the target has two internal children, and run the
// deletion-side AVL fixup on the way back up.
//
// saved shuttles the stashed maximum leaf of a delete_max recursion up
// to the parent frame that requested it; it is nil except immediately
// after a delete_max=true call returns.
func (e *Engine) deleteHelper(n Node, deleteMax bool) (newNode Node, heightDecreased bool, saved *Leaf, err error) {
	r, ok := n.(*Internal)
	if !ok {
		return nil, false, nil, ErrLabelOnlyReached
	}

	var direction int
	if deleteMax {
		direction = 1
	} else {
		direction, err = e.hooks.ReplayComparison()
		if err != nil {
			return nil, false, nil, err
		}
	}

	if direction < 0 {
		if _, isLeaf := r.Left.(*Leaf); isLeaf {
			return nil, false, nil, ErrProtocolReplayMismatch
		}
	}

	// Easy deletion: the targeted side is a leaf.
	if direction >= 0 {
		if rightLeaf, isLeaf := r.Right.(*Leaf); isLeaf {
			markVisited(r)
			markVisited(rightLeaf)
			if deleteMax {
				return r.Left, true, rightLeaf, nil
			}
			newLeft, err := changeNextLeafKeyOfMaxNode(e, r.Left, rightLeaf.NextLeafKey)
			if err != nil {
				return nil, false, nil, err
			}
			return newLeft, true, nil, nil
		}
	}
	if direction == 0 {
		if leftLeaf, isLeaf := r.Left.(*Leaf); isLeaf {
			markVisited(r)
			markVisited(leftLeaf)
			newRight, err := changeKeyAndValueOfMinNode(e, r.Right, leftLeaf.Key, leftLeaf.Value)
			if err != nil {
				return nil, false, nil, err
			}
			return newRight, true, nil, nil
		}
	}

	// Hard deletion: descend further.
	markVisited(r)

	if direction <= 0 {
		childDeleteMax := direction == 0
		newLeft, childHeightDecreased, childSaved, err := e.deleteHelper(r.Left, childDeleteMax)
		if err != nil {
			return nil, false, nil, err
		}

		routingKey := r.RoutingKey
		right := r.Right
		if childDeleteMax {
			routingKey = childSaved.Key
			right, err = changeKeyAndValueOfMinNode(e, r.Right, childSaved.Key, childSaved.Value)
			if err != nil {
				return nil, false, nil, err
			}
		}

		if !childHeightDecreased {
			return internalWithRoutingKey(e.lab, r, routingKey, r.Balance, newLeft, right), false, nil, nil
		}

		if r.Balance+1 > 1 {
			rightInternal, ok := right.(*Internal)
			if !ok {
				return nil, false, nil, ErrUnbalanced
			}
			markVisited(rightInternal)
			rotated, err := deleteRotateShortenRight(e.lab, routingKey, newLeft, rightInternal)
			if err != nil {
				return nil, false, nil, err
			}
			return rotated, rotated.Balance == 0, nil, nil
		}

		newBalance := r.Balance + 1
		newNode := internalWithRoutingKey(e.lab, r, routingKey, newBalance, newLeft, right)
		return newNode, newBalance == 0, nil, nil
	}

	// direction > 0: descend right. A delete_max recursion always goes
	// this way, so deleteMax is passed on and the stashed leaf it
	// returns is handed back up unchanged.
	newRight, childHeightDecreased, saved, err := e.deleteHelper(r.Right, deleteMax)
	if err != nil {
		return nil, false, nil, err
	}

	if !childHeightDecreased {
		return internalWith(e.lab, r, r.Balance, r.Left, newRight), false, saved, nil
	}

	if r.Balance-1 < -1 {
		leftInternal, ok := r.Left.(*Internal)
		if !ok {
			return nil, false, nil, ErrUnbalanced
		}
		markVisited(leftInternal)
		rotated, err := deleteRotateShortenLeft(e.lab, r.RoutingKey, leftInternal, newRight)
		if err != nil {
			return nil, false, nil, err
		}
		return rotated, rotated.Balance == 0, saved, nil
	}

	newBalance := r.Balance - 1
	newNode = internalWith(e.lab, r, newBalance, r.Left, newRight)
	return newNode, newBalance == 0, saved, nil
}

// deleteRotateShortenRight rebuilds the subtree rooted at a node whose
// left child is newLeft (already accounting for the routingKey
// substitution a predecessor copy-over may have caused) when its
// right side, r, needs to give up height.
func deleteRotateShortenRight(lab Labeler, routingKey []byte, newLeft Node, r *Internal) (*Internal, error) {
	if r.Balance < 0 {
		p, ok := r.Left.(*Internal)
		if !ok {
			return nil, ErrUnbalanced
		}
		markVisited(p)
		pLeftBalance, pRightBalance := doubleRotationBalances(p.Balance)
		rebuiltLeft := NewInternal(lab, routingKey, pLeftBalance, newLeft, p.Left)
		rebuiltRight := internalWith(lab, r, pRightBalance, p.Right, r.Right)
		return internalWith(lab, p, 0, rebuiltLeft, rebuiltRight), nil
	}
	newCurBalance := 1 - r.Balance
	newRootBalance := r.Balance - 1
	rebuiltLeft := NewInternal(lab, routingKey, newCurBalance, newLeft, r.Left)
	return internalWith(lab, r, newRootBalance, rebuiltLeft, r.Right), nil
}

// deleteRotateShortenLeft is the mirror image, used when the left
// side (l) needs to give up height to balance a right-ward deletion.
func deleteRotateShortenLeft(lab Labeler, routingKey []byte, l *Internal, newRight Node) (*Internal, error) {
	if l.Balance > 0 {
		p, ok := l.Right.(*Internal)
		if !ok {
			return nil, ErrUnbalanced
		}
		markVisited(p)
		pLeftBalance, pRightBalance := doubleRotationBalances(p.Balance)
		rebuiltLeft := internalWith(lab, l, pLeftBalance, l.Left, p.Left)
		rebuiltRight := NewInternal(lab, routingKey, pRightBalance, p.Right, newRight)
		return internalWith(lab, p, 0, rebuiltLeft, rebuiltRight), nil
	}
	newCurBalance := -1 - l.Balance
	newRootBalance := l.Balance + 1
	rebuiltRight := NewInternal(lab, routingKey, newCurBalance, l.Right, newRight)
	return internalWith(lab, l, newRootBalance, l.Left, rebuiltRight), nil
}

// changeNextLeafKeyOfMaxNode walks the right spine of n until it
// reaches the maximum leaf and rebuilds it with nextLeafKey, marking
// every node on the spine visited.
func changeNextLeafKeyOfMaxNode(e *Engine, n Node, nextLeafKey []byte) (Node, error) {
	switch v := n.(type) {
	case *Leaf:
		markVisited(v)
		return leafWithNextLeafKey(e.lab, v, nextLeafKey), nil
	case *Internal:
		markVisited(v)
		newRight, err := changeNextLeafKeyOfMaxNode(e, v.Right, nextLeafKey)
		if err != nil {
			return nil, err
		}
		return internalWith(e.lab, v, v.Balance, v.Left, newRight), nil
	default:
		return nil, ErrLabelOnlyReached
	}
}

// changeKeyAndValueOfMinNode walks the left spine of n until it
// reaches the minimum leaf and rebuilds it with key and value, marking
// every node on the spine visited.
func changeKeyAndValueOfMinNode(e *Engine, n Node, key, value []byte) (Node, error) {
	switch v := n.(type) {
	case *Leaf:
		markVisited(v)
		return leafWithKeyAndValue(e.lab, v, key, value), nil
	case *Internal:
		markVisited(v)
		newLeft, err := changeKeyAndValueOfMinNode(e, v.Left, key, value)
		if err != nil {
			return nil, err
		}
		return internalWith(e.lab, v, v.Balance, newLeft, v.Right), nil
	default:
		return nil, ErrLabelOnlyReached
	}
}
