// Package bootstrap runs a finite asyncext task with a uniform lifecycle:
// config defaults and validation, logger setup, start hooks, the task itself
// under signal-driven cancellation, then stop hooks.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.OnStart(initTracing)
//	app.OnStop(flushTracing)
//	err = app.RunTask(ctx, func(ctx context.Context) error {
//	    _, err := asynciter.Collect(ctx, it)
//	    return err
//	})
package bootstrap
