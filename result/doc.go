// Package result provides a success-or-failure value type with asynchronous
// adapters.
//
// A Result carries either a value or an error as data. This is distinct from
// the error returned by Await on the futures produced here: that error reports
// a failure of the computation itself (the transformation failed, the context
// was cancelled) and is always passed through unchanged.
package result
