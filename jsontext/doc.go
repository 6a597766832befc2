// Package jsontext converts JSON text to raw value trees and back.
//
// Decoding produces map[string]interface{}, []interface{}, string, float64, bool and nil values.
// Encoding writes object keys in sorted order so output is deterministic.
package jsontext
