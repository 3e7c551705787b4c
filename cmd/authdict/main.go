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

// Command authdict drives an authenticated AVL dictionary from the
// command line: "apply" runs a batch of operations against a fresh
// in-memory prover and prints the resulting digest and proof; "verify"
// replays the same batch against a verifier loaded from a pre-batch
// digest and a proof file, and prints the post-batch digest.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/authtree/avl/batch"
	"github.com/authtree/avl/config"
	"github.com/authtree/avl/label"
	"github.com/authtree/avl/proof"
	"github.com/authtree/avl/prover"
	"github.com/authtree/avl/tree"
	"github.com/authtree/avl/verifier"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: authdict <apply|verify> [flags]")
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	switch args[0] {
	case "apply":
		return runApply(logger, args[1:])
	case "verify":
		return runVerify(logger, args[1:])
	default:
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

// opSpec is one line of a batch file: "insert <hexkey> <hexvalue>",
// "update <hexkey> <hexvalue>", "delete <hexkey>", or "lookup
// <hexkey>".
type opSpec struct {
	Verb  string
	Key   string
	Value string
}

func runApply(logger zerolog.Logger, args []string) error {
	fs := pflag.NewFlagSet("apply", pflag.ContinueOnError)
	keyLength := fs.Int("key-length", 4, "fixed key length in bytes")
	valueLength := fs.Int("value-length", 4, "fixed value length in bytes, 0 for variable-length")
	batchFile := fs.String("batch", "", "path to a batch file, one operation per line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var valueLen *int
	if *valueLength > 0 {
		valueLen = valueLength
	}
	appCfg := config.Config{KeyLength: *keyLength, ValueLength: valueLen}
	if err := appCfg.Validate(); err != nil {
		return err
	}
	cfg := appCfg.TreeConfig()

	specs, err := readBatchFile(*batchFile)
	if err != nil {
		return err
	}

	ops, err := toOperations(specs)
	if err != nil {
		return err
	}

	lab := label.Sha256()
	store := prover.NewStore(cfg, lab)

	driver := batch.New(logger)
	ctx := context.Background()

	preDigest := store.Digest()
	results, err := driver.Run(ctx, store, ops)
	if err != nil {
		return err
	}

	p, err := store.EndBatch()
	if err != nil {
		return err
	}
	postDigest := store.Digest()

	return printApplyResult(preDigest, postDigest, results, p)
}

func runVerify(logger zerolog.Logger, args []string) error {
	fs := pflag.NewFlagSet("verify", pflag.ContinueOnError)
	keyLength := fs.Int("key-length", 4, "fixed key length in bytes")
	valueLength := fs.Int("value-length", 4, "fixed value length in bytes, 0 for variable-length")
	batchFile := fs.String("batch", "", "path to the batch file the proof covers")
	preDigestHex := fs.String("pre-digest", "", "hex-encoded pre-batch digest")
	proofFile := fs.String("proof", "", "path to a CBOR-encoded proof file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var valueLen *int
	if *valueLength > 0 {
		valueLen = valueLength
	}
	appCfg := config.Config{KeyLength: *keyLength, ValueLength: valueLen}
	if err := appCfg.Validate(); err != nil {
		return err
	}
	cfg := appCfg.TreeConfig()

	preDigest, err := hex.DecodeString(*preDigestHex)
	if err != nil {
		return fmt.Errorf("decoding --pre-digest: %w", err)
	}

	proofBytes, err := os.ReadFile(*proofFile)
	if err != nil {
		return fmt.Errorf("reading --proof: %w", err)
	}
	p, err := proof.Unmarshal(proofBytes)
	if err != nil {
		return fmt.Errorf("decoding proof: %w", err)
	}

	specs, err := readBatchFile(*batchFile)
	if err != nil {
		return err
	}
	ops, err := toOperations(specs)
	if err != nil {
		return err
	}

	lab := label.Sha256()
	store := verifier.NewStore(cfg, lab)
	driver := batch.New(logger)

	postDigest, err := driver.Verify(context.Background(), store, preDigest, p, ops)
	if err != nil {
		return err
	}

	fmt.Println(hex.EncodeToString(postDigest))
	return nil
}

func readBatchFile(path string) ([]opSpec, error) {
	if path == "" {
		return nil, fmt.Errorf("--batch is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var specs []opSpec
	for lineNo, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("batch file line %d: expected at least verb and key", lineNo+1)
		}
		spec := opSpec{Verb: fields[0], Key: fields[1]}
		if len(fields) > 2 {
			spec.Value = fields[2]
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func toOperations(specs []opSpec) ([]tree.Operation, error) {
	ops := make([]tree.Operation, 0, len(specs))
	for i, spec := range specs {
		key, err := hex.DecodeString(spec.Key)
		if err != nil {
			return nil, fmt.Errorf("line %d: decoding key: %w", i+1, err)
		}

		switch spec.Verb {
		case "lookup":
			ops = append(ops, tree.Operation{Key: key, Kind: tree.Lookup})
		case "insert", "update":
			value, err := hex.DecodeString(spec.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: decoding value: %w", i+1, err)
			}
			ops = append(ops, tree.Operation{
				Key:  key,
				Kind: tree.Modification,
				Update: func(_ []byte, _ bool) ([]byte, bool, error) {
					return value, true, nil
				},
			})
		case "delete":
			ops = append(ops, tree.Operation{
				Key:  key,
				Kind: tree.Modification,
				Update: func(_ []byte, _ bool) ([]byte, bool, error) {
					return nil, false, nil
				},
			})
		default:
			return nil, fmt.Errorf("line %d: unknown verb %q", i+1, spec.Verb)
		}
	}
	return ops, nil
}

type applyResultLine struct {
	Key      string `json:"key"`
	OldValue string `json:"old_value,omitempty"`
	Present  bool   `json:"present"`
	Err      string `json:"error,omitempty"`
}

type applyOutput struct {
	PreDigest  string            `json:"pre_digest"`
	PostDigest string            `json:"post_digest"`
	Results    []applyResultLine `json:"results"`
	Proof      []byte            `json:"proof"`
}

func printApplyResult(preDigest, postDigest []byte, results []batch.Result, p *proof.Proof) error {
	lines := make([]applyResultLine, len(results))
	for i, r := range results {
		line := applyResultLine{Key: hex.EncodeToString(r.Key), Present: r.Present}
		if r.OldValue != nil {
			line.OldValue = hex.EncodeToString(r.OldValue)
		}
		if r.Err != nil {
			line.Err = r.Err.Error()
		}
		lines[i] = line
	}

	encodedProof, err := proof.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding proof: %w", err)
	}

	out := applyOutput{
		PreDigest:  hex.EncodeToString(preDigest),
		PostDigest: hex.EncodeToString(postDigest),
		Results:    lines,
		Proof:      encodedProof,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
