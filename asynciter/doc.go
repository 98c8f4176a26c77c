// Package asynciter applies blocking, context-aware transformations to the
// elements of a sequence, one element at a time and in order.
//
// Adapters are lazy. Building a chain does no work; the work happens when a
// driver (Collect, Fold, Resolve, ForEach, ProcessResults) pulls elements.
// Each element is resolved completely before the next is requested, so the
// transformation for element i+1 never starts before element i is done.
//
// # Sources
//
//   - FromSlice: iterate a slice
//   - FromSeq: iterate an iter.Seq
//   - FromFunc: pull from a generator function
//   - Empty: a sequence with no elements
//
// # Adapters
//
//   - MapAsync: transform each element
//   - FilterAsync: keep elements accepted by an async predicate
//   - TapAsync: run an async side effect, pass the element through
//   - Concat: join sequences end to end
//
// # Drivers
//
//   - Collect: gather all elements into a slice
//   - Fold: gather into any caller-chosen collection
//   - Resolve: gather, then hand back a synchronous iter.Seq
//   - ForEach: await a callback per element
//   - ProcessResults: split a sequence of result.Result values
//
// A driver stops at the first error, discards whatever it gathered so far and
// returns the error unchanged. It always closes the iterator it drove.
//
// # Usage
//
//	src := asynciter.FromSlice([]int{1, 2, 3, 4})
//	doubled := asynciter.MapAsync(src, func(ctx context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	out, err := asynciter.Collect(ctx, doubled) // [2 4 6 8]
package asynciter
