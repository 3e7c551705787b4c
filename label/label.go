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

// Package label computes node labels for the authenticated dictionary
// in tree. It follows the pooled-hasher pattern used elsewhere in this
// codebase's lineage (see fasmat-merkle's Hasher): a sync.Pool of
// hash.Hash instances avoids a fresh allocation per label while
// remaining safe for concurrent use by independent trees.
package label

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"sync"

	"github.com/authtree/avl/tree"
)

const (
	leafDomain     = 0x00
	internalDomain = 0x01
)

// Sha256 returns a tree.Labeler that derives every label from SHA-256
// over a domain-separated, length-prefixed encoding of the node's
// contents. The domain byte keeps a leaf's label from ever colliding
// with an internal node's label even if their raw field bytes happen
// to coincide.
func Sha256() tree.Labeler {
	return &sha256Labeler{
		pool: &sync.Pool{
			New: func() any { return sha256.New() },
		},
	}
}

type sha256Labeler struct {
	pool *sync.Pool
}

func (l *sha256Labeler) LeafLabel(leaf *tree.Leaf) tree.Label {
	h := l.acquire()
	defer l.release(h)

	h.Write([]byte{leafDomain})
	writeLengthPrefixed(h, leaf.Key)
	writeLengthPrefixed(h, leaf.Value)
	writeLengthPrefixed(h, leaf.NextLeafKey)
	return tree.Label(h.Sum(nil))
}

func (l *sha256Labeler) InternalLabel(n *tree.Internal) tree.Label {
	h := l.acquire()
	defer l.release(h)

	h.Write([]byte{internalDomain})
	h.Write([]byte{byte(n.Balance)})
	writeLengthPrefixed(h, n.RoutingKey)
	writeLengthPrefixed(h, n.Left.Label())
	writeLengthPrefixed(h, n.Right.Label())
	return tree.Label(h.Sum(nil))
}

func (l *sha256Labeler) acquire() hash.Hash {
	h := l.pool.Get().(hash.Hash)
	h.Reset()
	return h
}

func (l *sha256Labeler) release(h hash.Hash) {
	l.pool.Put(h)
}

func writeLengthPrefixed(h hash.Hash, b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	h.Write(lenBuf[:])
	h.Write(b)
}
