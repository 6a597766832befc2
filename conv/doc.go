// Package conv provides the scalar coercion table used by the mapper.
// It converts decoded JSON scalars (bool, numbers, strings, json.Number) into
// Go primitives and time.Time with explicit, deterministic numeric rules,
// and formats primitives back into their raw representation.
package conv
