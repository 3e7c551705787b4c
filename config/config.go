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

// Package config defines the instance-wide settings for an
// authenticated dictionary and validates them before a tree.Engine is
// built from them.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/authtree/avl/tree"
)

// Config is the user-facing configuration for one dictionary
// instance. KeyLength is mandatory; ValueLength is optional and, when
// set, fixes every stored value to that length.
type Config struct {
	KeyLength   int  `validate:"required,gt=0"`
	ValueLength *int `validate:"omitempty,gt=0"`
}

var validate = validator.New()

// Validate checks KeyLength is a positive integer and, if
// ValueLength is set, that it is also positive. A nil ValueLength
// (meaning variable-length values) is always accepted.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TreeConfig converts a validated Config into the tree package's
// narrower Config type.
func (c Config) TreeConfig() tree.Config {
	return tree.Config{KeyLength: c.KeyLength, ValueLength: c.ValueLength}
}
