package memo

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/jonwraymond/callops/call"
)

// Keyer generates deterministic cache keys from invocation arguments.
//
// Contract:
//   - Determinism: the same arguments must produce the same key,
//     regardless of map iteration order.
//   - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key from callable identity and arguments.
	Key(meta call.Meta, args call.Args) (string, error)
}

// DefaultKeyer generates SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key generates a deterministic cache key.
// Format: memo:<id>:<hash>
// where hash is the first 16 hex characters of SHA-256 over the
// canonical encoding of the arguments: positional values in order,
// named values sorted by name.
func (k *DefaultKeyer) Key(meta call.Meta, args call.Args) (string, error) {
	encoded, err := canonicalArgs(args)
	if err != nil {
		return "", fmt.Errorf("memo: failed to canonicalize arguments: %w", err)
	}

	hash := sha256.Sum256(encoded)
	hashStr := hex.EncodeToString(hash[:8]) // First 8 bytes = 16 hex chars

	return fmt.Sprintf("memo:%s:%s", meta.ID(), hashStr), nil
}

// canonicalArgs encodes Args as a two-element JSON array: the positional
// list (order preserved) and the named mapping (keys sorted).
func canonicalArgs(args call.Args) ([]byte, error) {
	positional, err := canonicalizeSlice(args.Positional)
	if err != nil {
		return nil, err
	}

	named := make(map[string]any, len(args.Named))
	for k, v := range args.Named {
		named[k] = v
	}
	namedBytes, err := canonicalizeMap(named)
	if err != nil {
		return nil, err
	}

	result := append([]byte("["), positional...)
	result = append(result, ',')
	result = append(result, namedBytes...)
	result = append(result, ']')
	return result, nil
}

// canonicalize produces a deterministic JSON representation of a value.
// Maps are sorted by key to ensure consistent ordering.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
