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

package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/authtree/avl/batch"
	"github.com/authtree/avl/label"
	"github.com/authtree/avl/prover"
	"github.com/authtree/avl/tree"
	"github.com/authtree/avl/verifier"
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

func failingOp(key []byte) tree.Operation {
	return tree.Operation{
		Key:  key,
		Kind: tree.Modification,
		Update: func(current []byte, present bool) ([]byte, bool, error) {
			return nil, false, errors.New("deliberate failure")
		},
	}
}

func newProverStore() *prover.Store {
	return prover.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
}

func newVerifierStore() *verifier.Store {
	return verifier.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
}

func TestRunAppliesInOrder(t *testing.T) {
	store := newProverStore()
	driver := batch.New(zerolog.Nop())

	results, err := driver.Run(context.Background(), store, []tree.Operation{
		insertOp([]byte{1, 0, 0, 0}, []byte("a")),
		insertOp([]byte{2, 0, 0, 0}, []byte("b")),
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.False(t, results[0].Present)
	require.False(t, results[1].Present)
}

func TestRunStopsAtFirstError(t *testing.T) {
	store := newProverStore()
	driver := batch.New(zerolog.Nop())

	results, err := driver.Run(context.Background(), store, []tree.Operation{
		insertOp([]byte{1, 0, 0, 0}, []byte("a")),
		failingOp([]byte{2, 0, 0, 0}),
		insertOp([]byte{3, 0, 0, 0}, []byte("c")),
	})
	require.Error(t, err)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.Error(t, results[1].Err)
}

func TestRunRespectsCancellation(t *testing.T) {
	store := newProverStore()
	driver := batch.New(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := driver.Run(ctx, store, []tree.Operation{
		insertOp([]byte{1, 0, 0, 0}, []byte("a")),
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, results)
}

func TestDryRunRestoresStateOnSuccess(t *testing.T) {
	store := newProverStore()
	driver := batch.New(zerolog.Nop())
	before := store.Digest()

	_, err := driver.DryRun(context.Background(), store, []tree.Operation{
		insertOp([]byte{1, 0, 0, 0}, []byte("a")),
	})
	require.NoError(t, err)
	require.Equal(t, before, store.Digest())
}

func TestDryRunRestoresStateAndAggregatesErrors(t *testing.T) {
	store := newProverStore()
	driver := batch.New(zerolog.Nop())
	before := store.Digest()

	_, err := driver.DryRun(context.Background(), store, []tree.Operation{
		insertOp([]byte{1, 0, 0, 0}, []byte("a")),
		failingOp([]byte{2, 0, 0, 0}),
		insertOp([]byte{3, 0, 0, 0}, []byte("c")),
	})
	require.Error(t, err)
	require.Equal(t, before, store.Digest())
}

func TestVerifyRoundTrip(t *testing.T) {
	store := newProverStore()
	driver := batch.New(zerolog.Nop())
	ctx := context.Background()

	preDigest := store.Digest()
	ops := []tree.Operation{insertOp([]byte{1, 0, 0, 0}, []byte("a"))}
	_, err := driver.Run(ctx, store, ops)
	require.NoError(t, err)
	p, err := store.EndBatch()
	require.NoError(t, err)
	postDigest := store.Digest()

	verifierStore := newVerifierStore()
	gotDigest, err := driver.Verify(ctx, verifierStore, preDigest, p, ops)
	require.NoError(t, err)
	require.Equal(t, postDigest, gotDigest)
}
