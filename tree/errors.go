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

import "errors"

var (
	// ErrKeyWrongLength is returned when a key does not match the
	// configured key length.
	ErrKeyWrongLength = errors.New("tree: key has wrong length")

	// ErrValueWrongLength is returned when a value does not match the
	// configured value length, if one is configured.
	ErrValueWrongLength = errors.New("tree: value has wrong length")

	// ErrKeyIsNegInfSentinel is returned when a caller tries to use the
	// all-zero sentinel key as an operand of a public operation.
	ErrKeyIsNegInfSentinel = errors.New("tree: key equals the negative-infinity sentinel")

	// ErrKeyIsPosInfSentinel is returned when a caller tries to use the
	// all-0xFF sentinel key as an operand of a public operation.
	ErrKeyIsPosInfSentinel = errors.New("tree: key equals the positive-infinity sentinel")

	// ErrLabelOnlyReached is returned when a walk needs to descend into
	// a LabelOnly node. On the prover this can never happen; on the
	// verifier it means the supplied proof did not cover the path the
	// operation needed.
	ErrLabelOnlyReached = errors.New("tree: walk reached an unopened subtree")

	// ErrProtocolReplayMismatch is returned when the deletion walk
	// cannot replay the modify walk's comparisons: a Hooks
	// implementation (prover or verifier) has no recorded comparison
	// left, or a replayed direction leads to a leaf where an internal
	// node is required. On the verifier it means the proof is
	// inconsistent with the claimed root digest.
	ErrProtocolReplayMismatch = errors.New("tree: proof replay does not match node contents")

	// ErrUnbalanced is an internal consistency check: it fires if a
	// rotation is invoked on a node whose balance does not warrant one.
	// Seeing it means the implementation has a bug, not that the
	// caller misused the API.
	ErrUnbalanced = errors.New("tree: rotation invoked on a node that was already balanced")

	// ErrHeightOutOfRange signals a height byte outside the single-byte
	// range a digest can encode.
	ErrHeightOutOfRange = errors.New("tree: tree height exceeds the range a digest can encode")

	// ErrKeyNotFound reports that a key is absent. Engine.Apply never
	// returns it on its own; an UpdateFn may return it to abort an
	// operation on a missing key, and Apply passes it through as-is.
	ErrKeyNotFound = errors.New("tree: key not found")
)
