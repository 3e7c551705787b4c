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

import "bytes"

// Config fixes the shape of keys and values for one tree instance. It
// is immutable once an Engine is constructed from it.
type Config struct {
	// KeyLength is the fixed byte length of every key, including the
	// two sentinels.
	KeyLength int

	// ValueLength, when non-nil, is the fixed byte length every stored
	// value must match. A nil ValueLength means values may be any
	// length.
	ValueLength *int
}

// NegInfinity returns the all-zero sentinel key bracketing the bottom
// of the keyspace.
func (c Config) NegInfinity() []byte {
	return make([]byte, c.KeyLength)
}

// PosInfinity returns the all-0xFF sentinel key bracketing the top of
// the keyspace.
func (c Config) PosInfinity() []byte {
	b := make([]byte, c.KeyLength)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

func (c Config) isSentinel(key []byte) (negInf, posInf bool) {
	return bytes.Equal(key, c.NegInfinity()), bytes.Equal(key, c.PosInfinity())
}

// checkKey enforces the key-length and non-sentinel preconditions
// shared by every public operation.
func (c Config) checkKey(key []byte) error {
	if len(key) != c.KeyLength {
		return ErrKeyWrongLength
	}
	negInf, posInf := c.isSentinel(key)
	if negInf {
		return ErrKeyIsNegInfSentinel
	}
	if posInf {
		return ErrKeyIsPosInfSentinel
	}
	return nil
}

// checkValue enforces the fixed-value-length precondition when one is
// configured.
func (c Config) checkValue(value []byte) error {
	if c.ValueLength != nil && len(value) != *c.ValueLength {
		return ErrValueWrongLength
	}
	return nil
}
