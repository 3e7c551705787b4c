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

// Kind distinguishes a read-only descent from one that may mutate the
// tree.
type Kind int

const (
	Lookup Kind = iota
	Modification
)

// UpdateFn is supplied with a Modification operation. current is the
// value currently stored at the key, and present reports whether the
// key exists at all (current is nil and meaningless when !present).
// The three return shapes mirror §4.2 of the operation contract:
//
//	present=true,  next=nil,  keep=false -> delete the key
//	present=true,  next=v',   keep=true  -> replace the value with v'
//	present=false, next=nil,  keep=false -> no-op
//	present=false, next=v,    keep=true  -> insert the key with value v
//
// Returning a non-nil error aborts the operation: the tree is left
// unchanged, no node is marked visited, and the error is returned to
// the caller of Apply.
type UpdateFn func(current []byte, present bool) (next []byte, keep bool, err error)

// Operation is one unit of work passed to Engine.Apply.
type Operation struct {
	Key  []byte
	Kind Kind

	// Update is required when Kind == Modification and ignored for
	// Lookup.
	Update UpdateFn
}
