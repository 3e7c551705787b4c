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

// modifyResult is the tuple the modify walk returns at every level of
// recursion: the (possibly rebuilt) node, whether it changed, whether
// its height grew, whether a deletion was discovered and deferred,
// and the value observed at the key before the operation.
type modifyResult struct {
	node            Node
	changed         bool
	heightIncreased bool
	toDelete        bool
	oldValue        []byte
	present         bool
}

// modify implements the shared insert/update/lookup/discover-delete
// descent. It never itself deletes a node; when the operation is a
// delete, it locates the target leaf, reports toDelete=true and
// leaves the tree otherwise untouched, for apply to hand off to
// deleteHelper.
func (e *Engine) modify(n Node, op Operation) (modifyResult, error) {
	switch v := n.(type) {
	case *Leaf:
		return e.modifyLeaf(v, op)
	case *Internal:
		return e.modifyInternal(v, op)
	default:
		return modifyResult{}, ErrLabelOnlyReached
	}
}

func (e *Engine) modifyLeaf(leaf *Leaf, op Operation) (modifyResult, error) {
	if e.hooks.KeyMatchesLeaf(op.Key, leaf) {
		if op.Kind == Lookup {
			markVisited(leaf)
			return modifyResult{node: leaf, oldValue: leaf.Value, present: true}, nil
		}
		next, keep, err := op.Update(leaf.Value, true)
		if err != nil {
			return modifyResult{}, err
		}
		if !keep {
			markVisited(leaf)
			return modifyResult{node: leaf, toDelete: true, oldValue: leaf.Value, present: true}, nil
		}
		if err := e.cfg.checkValue(next); err != nil {
			return modifyResult{}, err
		}
		markVisited(leaf)
		newLeaf := leafWithValue(e.lab, leaf, next)
		return modifyResult{node: newLeaf, changed: true, oldValue: leaf.Value, present: true}, nil
	}

	// key belongs strictly past this leaf.
	if op.Kind == Lookup {
		markVisited(leaf)
		return modifyResult{node: leaf}, nil
	}
	next, keep, err := op.Update(nil, false)
	if err != nil {
		return modifyResult{}, err
	}
	if !keep {
		markVisited(leaf)
		return modifyResult{node: leaf}, nil
	}
	if err := e.cfg.checkValue(next); err != nil {
		return modifyResult{}, err
	}
	markVisited(leaf)
	pair, err := e.hooks.MakeLeafPair(leaf, op.Key, next)
	if err != nil {
		return modifyResult{}, err
	}
	return modifyResult{node: pair, changed: true, heightIncreased: true}, nil
}

func (e *Engine) modifyInternal(inode *Internal, op Operation) (modifyResult, error) {
	goLeft := e.hooks.NextDirectionIsLeft(op.Key, inode)

	var child Node
	if goLeft {
		child = inode.Left
	} else {
		child = inode.Right
	}

	childResult, err := e.modify(child, op)
	if err != nil {
		return modifyResult{}, err
	}

	markVisited(inode)

	if !childResult.changed {
		return modifyResult{
			node:     inode,
			toDelete: childResult.toDelete,
			oldValue: childResult.oldValue,
			present:  childResult.present,
		}, nil
	}

	if !childResult.heightIncreased {
		var newNode *Internal
		if goLeft {
			newNode = internalWith(e.lab, inode, inode.Balance, childResult.node, inode.Right)
		} else {
			newNode = internalWith(e.lab, inode, inode.Balance, inode.Left, childResult.node)
		}
		return modifyResult{
			node:     newNode,
			changed:  true,
			oldValue: childResult.oldValue,
			present:  childResult.present,
		}, nil
	}

	result := modifyResult{changed: true, oldValue: childResult.oldValue, present: childResult.present}

	if goLeft {
		if inode.Balance < 0 {
			p, ok := childResult.node.(*Internal)
			if !ok {
				return modifyResult{}, ErrUnbalanced
			}
			if p.Balance < 0 {
				result.node = singleRightRotationInsert(e.lab, inode, p)
			} else {
				newNode, err := doubleRightRotation(e.lab, inode, p)
				if err != nil {
					return modifyResult{}, err
				}
				result.node = newNode
			}
			result.heightIncreased = false
		} else {
			newBalance := inode.Balance - 1
			result.node = internalWith(e.lab, inode, newBalance, childResult.node, inode.Right)
			result.heightIncreased = inode.Balance == 0
		}
	} else {
		if inode.Balance > 0 {
			p, ok := childResult.node.(*Internal)
			if !ok {
				return modifyResult{}, ErrUnbalanced
			}
			if p.Balance > 0 {
				result.node = singleLeftRotationInsert(e.lab, inode, p)
			} else {
				newNode, err := doubleLeftRotation(e.lab, inode, p)
				if err != nil {
					return modifyResult{}, err
				}
				result.node = newNode
			}
			result.heightIncreased = false
		} else {
			newBalance := inode.Balance + 1
			result.node = internalWith(e.lab, inode, newBalance, inode.Left, childResult.node)
			result.heightIncreased = inode.Balance == 0
		}
	}

	return result, nil
}
