// Package future is the suspension substrate the asyncext adapters compose over.
//
// A suspension in Go is a blocking call that takes a context.Context and
// returns (T, error). Future[T] names such a call so that it can be handed
// around, chained, and awaited later:
//
//	fut := future.Lazy(func(ctx context.Context) (*User, error) {
//	    return repo.GetByID(ctx, id)
//	})
//
//	// nothing has run yet
//
//	user, err := fut.Await(ctx)
//
// # Constructors
//
//   - [Ready] and [Failed] are already-resolved futures; Await never blocks.
//   - [Func] adapts a blocking function; every Await calls it again.
//   - [Lazy] runs its function on the first Await that is not already
//     cancelled and memoizes the outcome for every later Await.
//   - [Go] starts the function in a goroutine immediately and lets any number
//     of callers wait for it, each bounded by its own context.
//   - [Then] chains a transformation onto a future without running either.
//
// Errors returned by the wrapped functions are passed through unchanged. The
// only error this package creates itself is the one produced by [Go] when the
// spawned function panics.
package future
