// Package visitor offers generic visitors over decoded and typed containers.
// It provides reflection-backed iteration over maps, slices and arrays with
// callback-based traversal, and a read-mostly concurrent map used for caches.
package visitor
