// Package option provides an optional value type with asynchronous adapters.
//
// The adapters run a transformation only when a value is present. For an
// absent value they return an already-resolved future and never call the
// transformation.
package option
