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

package prover_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authtree/avl/label"
	"github.com/authtree/avl/prover"
	"github.com/authtree/avl/tree"
)

func insertOp(key, value []byte) tree.Operation {
	return tree.Operation{
		Key:  key,
		Kind: tree.Modification,
		Update: func(current []byte, present bool) ([]byte, bool, error) {
			return value, true, nil
		},
	}
}

func deleteOp(key []byte) tree.Operation {
	return tree.Operation{
		Key:  key,
		Kind: tree.Modification,
		Update: func(current []byte, present bool) ([]byte, bool, error) {
			return nil, false, nil
		},
	}
}

func TestEndBatchWithoutApplyFails(t *testing.T) {
	store := prover.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	_, err := store.EndBatch()
	require.ErrorIs(t, err, prover.ErrNoBatchInProgress)
}

func TestEndBatchClosesTheBatch(t *testing.T) {
	store := prover.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	_, _, err := store.Apply(insertOp([]byte{1, 0, 0, 0}, []byte("v1")))
	require.NoError(t, err)

	p, err := store.EndBatch()
	require.NoError(t, err)
	require.NotNil(t, p.Root)

	_, err = store.EndBatch()
	require.ErrorIs(t, err, prover.ErrNoBatchInProgress)
}

func TestSecondBatchStartsFromCurrentRoot(t *testing.T) {
	store := prover.NewStore(tree.Config{KeyLength: 4}, label.Sha256())

	_, _, err := store.Apply(insertOp([]byte{1, 0, 0, 0}, []byte("v1")))
	require.NoError(t, err)
	_, err = store.EndBatch()
	require.NoError(t, err)
	midDigest := store.Digest()

	_, _, err = store.Apply(insertOp([]byte{2, 0, 0, 0}, []byte("v2")))
	require.NoError(t, err)
	p, err := store.EndBatch()
	require.NoError(t, err)

	// The proof's declared PreHeight must match the height captured
	// right before this second batch began, since that is the state
	// the proof claims to be rooted in.
	require.Equal(t, midDigest[len(midDigest)-1], byte(p.PreHeight))
}

func TestReset(t *testing.T) {
	store := prover.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	initialDigest := store.Digest()
	root, height := store.Root(), store.RootHeight()

	_, _, err := store.Apply(insertOp([]byte{1, 0, 0, 0}, []byte("v1")))
	require.NoError(t, err)
	require.NotEqual(t, initialDigest, store.Digest())

	store.Reset(root, height)
	require.Equal(t, initialDigest, store.Digest())
}

func TestDeleteThenLookupReportsAbsent(t *testing.T) {
	store := prover.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	key := []byte{5, 0, 0, 0}

	_, _, err := store.Apply(insertOp(key, []byte("v")))
	require.NoError(t, err)
	old, present, err := store.Apply(deleteOp(key))
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, []byte("v"), old)

	_, present, err = store.Apply(tree.Operation{Key: key, Kind: tree.Lookup})
	require.NoError(t, err)
	require.False(t, present)
}

func TestMultiOperationBatchClearsAllVisitedFlags(t *testing.T) {
	store := prover.NewStore(tree.Config{KeyLength: 4}, label.Sha256())

	_, _, err := store.Apply(insertOp([]byte{1, 0, 0, 0}, []byte("v1")))
	require.NoError(t, err)
	_, _, err = store.Apply(insertOp([]byte{2, 0, 0, 0}, []byte("v2")))
	require.NoError(t, err)
	_, _, err = store.Apply(insertOp([]byte{3, 0, 0, 0}, []byte("v3")))
	require.NoError(t, err)
	_, _, err = store.Apply(tree.Operation{Key: []byte{2, 0, 0, 0}, Kind: tree.Lookup})
	require.NoError(t, err)

	_, err = store.EndBatch()
	require.NoError(t, err)

	requireNoVisitedFlags(t, store.Root())
}

func requireNoVisitedFlags(t *testing.T, n tree.Node) {
	t.Helper()
	switch v := n.(type) {
	case *tree.Leaf:
		require.False(t, v.Visited, "leaf %x left visited after EndBatch", v.Key)
	case *tree.Internal:
		require.False(t, v.Visited, "internal node %x left visited after EndBatch", v.RoutingKey)
		requireNoVisitedFlags(t, v.Left)
		requireNoVisitedFlags(t, v.Right)
	}
}
