package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/kbukum/asyncext/bootstrap"
	"github.com/kbukum/asyncext/config"
	"github.com/kbukum/asyncext/logger"
	"github.com/kbukum/asyncext/observability"
	"github.com/kbukum/asyncext/version"
)

const serviceName = "asyncdemo"

func main() {
	flags := pflag.NewFlagSet(serviceName, pflag.ExitOnError)
	configFile := flags.StringP("config", "c", "", "path to config.yml")
	envFile := flags.String("env", "", "path to a .env file")
	showVersion := flags.BoolP("version", "v", false, "print version and exit")
	_ = flags.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println(version.Get().Short())
		return
	}

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}

	if err := run(context.Background(), opts...); err != nil {
		logger.Error("asyncdemo failed", logger.ErrorFields("run", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts ...config.LoaderOption) error {
	var cfg DemoConfig
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	app.Logger.Info("build", version.Get().Fields())

	d := &demo{
		cfg:     cfg.Demo,
		service: cfg.Name,
		log:     app.Logger.WithComponent("demo"),
		tracing: cfg.Tracing.Enabled,
	}

	app.OnStart(func(ctx context.Context) error {
		if cfg.Tracing.Enabled {
			tp, err := observability.InitTracer(ctx, cfg.Tracing)
			if err != nil {
				return err
			}
			app.OnStop(tp.Shutdown)
		}
		if cfg.Metrics.Enabled {
			mp, err := observability.InitMeter(ctx, cfg.meterConfig())
			if err != nil {
				return err
			}
			app.OnStop(mp.Shutdown)
			if d.metrics, err = observability.NewMetrics(observability.Meter(serviceName)); err != nil {
				return err
			}
		}
		return nil
	})

	return app.RunTask(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, cfg.Demo.Timeout)
		defer cancel()
		_, err := d.run(ctx)
		return err
	})
}
