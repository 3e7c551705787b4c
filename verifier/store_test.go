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

package verifier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/authtree/avl/label"
	"github.com/authtree/avl/proof"
	"github.com/authtree/avl/tree"
	"github.com/authtree/avl/verifier"
)

func TestApplyBeforeLoadProofFails(t *testing.T) {
	store := verifier.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	_, _, err := store.Apply(lookupOp(intKey(1)))
	require.ErrorIs(t, err, verifier.ErrNoProofLoaded)
}

func TestDigestBeforeLoadProofFails(t *testing.T) {
	store := verifier.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	_, err := store.Digest()
	require.ErrorIs(t, err, verifier.ErrNoProofLoaded)
}

func TestLoadProofRejectsWrongDigest(t *testing.T) {
	store := verifier.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	p := &proof.Proof{
		PreHeight: 0,
		Root:      &proof.Node{Kind: proof.KindLabelOnly, Label: []byte{1, 2, 3}},
	}
	err := store.LoadProof([]byte("not the right digest"), p)
	require.ErrorIs(t, err, verifier.ErrDigestMismatch)
}

func TestLoadProofRejectsMalformedNode(t *testing.T) {
	store := verifier.NewStore(tree.Config{KeyLength: 4}, label.Sha256())
	p := &proof.Proof{PreHeight: 0, Root: &proof.Node{Kind: proof.Kind(99)}}
	err := store.LoadProof([]byte{0}, p)
	require.ErrorIs(t, err, verifier.ErrMalformedProof)
}

func TestApplyOutsideProofFrontierFails(t *testing.T) {
	cfg := tree.Config{KeyLength: 4, ValueLength: intPtr(4)}
	store := verifier.NewStore(cfg, label.Sha256())

	// A proof that discloses nothing but the root label: valid for
	// authenticating the digest, but any real operation must descend
	// past it.
	stub := tree.NewEmptyRoot(cfg, label.Sha256())
	p := &proof.Proof{
		PreHeight: 0,
		Root:      &proof.Node{Kind: proof.KindLabelOnly, Label: stub.Label()},
	}
	preDigest := append(append([]byte{}, stub.Label()...), byte(0))
	require.NoError(t, store.LoadProof(preDigest, p))

	_, _, err := store.Apply(lookupOp(intKey(1)))
	require.ErrorIs(t, err, tree.ErrLabelOnlyReached)
}
