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

// Package batch replays a sequence of operations against either a
// prover.Store or a verifier.Store, one Apply call per operation, and
// reports what each one observed. It is the top-level collaborator
// the core tree package describes but intentionally does not
// implement.
package batch

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/authtree/avl/proof"
	"github.com/authtree/avl/tree"
	"github.com/authtree/avl/verifier"
)

// Applier is the surface both prover.Store and verifier.Store expose;
// Driver depends only on this, not on either concrete type, so the
// same replay logic runs on both sides.
type Applier interface {
	Apply(op tree.Operation) (oldValue []byte, present bool, err error)
}

// Snapshotter is implemented by stores that can capture and restore
// their root, which DryRun needs to undo a batch it does not commit.
type Snapshotter interface {
	Root() tree.Node
	RootHeight() uint8
	Reset(root tree.Node, height uint8)
}

// Result records the outcome of one operation within a batch.
type Result struct {
	Key      []byte
	OldValue []byte
	Present  bool
	Err      error
}

// Driver replays batches of operations, checking for caller
// cancellation between operations (never in the middle of a single
// tree.Engine.Apply call, which must run to completion or not at all
// per the engine's own atomicity).
type Driver struct {
	log zerolog.Logger
}

// New builds a Driver that logs through logger.
func New(logger zerolog.Logger) *Driver {
	return &Driver{log: logger}
}

// Run applies every operation in ops in order, stopping at the first
// error or at caller cancellation. It returns the results observed up
// to and including the failing operation, if any.
func (d *Driver) Run(ctx context.Context, applier Applier, ops []tree.Operation) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		old, present, err := applier.Apply(op)
		results = append(results, Result{Key: op.Key, OldValue: old, Present: present, Err: err})
		if err != nil {
			d.log.Error().Err(err).Int("index", i).Msg("batch: operation failed")
			return results, fmt.Errorf("batch: operation %d: %w", i, err)
		}
	}
	return results, nil
}

// DryRun applies every operation, continuing past individual failures
// instead of stopping, then always restores applier to its pre-batch
// root and height. It is for validating a prospective batch (e.g.
// before asking a prover to commit to it) without mutating state.
// Every operation's error, if any, is aggregated into the returned
// multierror.Error; a nil return means the whole batch would succeed.
func (d *Driver) DryRun(ctx context.Context, applier Snapshotter, ops []tree.Operation) ([]Result, error) {
	root, height := applier.Root(), applier.RootHeight()
	defer applier.Reset(root, height)

	a, ok := applier.(Applier)
	if !ok {
		return nil, fmt.Errorf("batch: %T does not implement Applier", applier)
	}

	var errs *multierror.Error
	results := make([]Result, 0, len(ops))
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("operation %d: %w", i, err))
			break
		}
		old, present, err := a.Apply(op)
		results = append(results, Result{Key: op.Key, OldValue: old, Present: present, Err: err})
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("operation %d: %w", i, err))
		}
	}
	return results, errs.ErrorOrNil()
}

// Verify loads proof against preDigest, replays ops against it with
// Run, and returns the resulting post-batch digest.
func (d *Driver) Verify(ctx context.Context, store *verifier.Store, preDigest []byte, p *proof.Proof, ops []tree.Operation) ([]byte, error) {
	if err := store.LoadProof(preDigest, p); err != nil {
		return nil, fmt.Errorf("batch: loading proof: %w", err)
	}
	if _, err := d.Run(ctx, store, ops); err != nil {
		return nil, err
	}
	return store.Digest()
}
