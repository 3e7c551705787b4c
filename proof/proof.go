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

// Package proof defines the wire format a prover emits and a verifier
// consumes: a CBOR encoding of the subset of the pre-batch tree that
// the batch's operations actually touched, rooted so the verifier can
// rebuild exactly the partial graph (tree.Leaf / tree.Internal nodes
// for everything visited, tree.LabelOnly stubs everywhere else) that
// the shared walk needs to reproduce the batch's effect on the digest.
package proof

import (
	"github.com/fxamacker/cbor/v2"
)

// Kind tags which variant a Node encodes.
type Kind uint8

const (
	KindLeaf Kind = iota
	KindInternal
	KindLabelOnly
)

// Node is the wire representation of one tree node. Only the fields
// relevant to Kind are populated; the rest are omitted from the
// encoding.
type Node struct {
	Kind Kind `cbor:"1,keyasint"`

	// Leaf fields.
	Key         []byte `cbor:"2,keyasint,omitempty"`
	Value       []byte `cbor:"3,keyasint,omitempty"`
	NextLeafKey []byte `cbor:"4,keyasint,omitempty"`

	// Internal fields.
	Balance    int8   `cbor:"5,keyasint,omitempty"`
	RoutingKey []byte `cbor:"6,keyasint,omitempty"`
	Left       *Node  `cbor:"7,keyasint,omitempty"`
	Right      *Node  `cbor:"8,keyasint,omitempty"`

	// LabelOnly field, and the label every variant carries implicitly
	// (recomputing it is the verifier's job, so it is only actually
	// transmitted for LabelOnly stubs).
	Label []byte `cbor:"9,keyasint,omitempty"`
}

// Proof is everything a verifier needs, beyond the pre-batch digest
// and the batch's own operations, to recompute the post-batch digest.
type Proof struct {
	// PreHeight is the tree height before the batch was applied.
	PreHeight uint8 `cbor:"1,keyasint"`

	// Root is the pre-batch tree, pruned to the nodes the batch
	// touched.
	Root *Node `cbor:"2,keyasint"`
}

// Marshal encodes a Proof as CBOR.
func Marshal(p *Proof) ([]byte, error) {
	return cbor.Marshal(p)
}

// Unmarshal decodes a Proof from CBOR.
func Unmarshal(data []byte) (*Proof, error) {
	var p Proof
	if err := cbor.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
