package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitlab.com/slon/lockdemo/geometry"
	"gitlab.com/slon/lockdemo/lockdemo"
)

type options struct {
	configPath  string
	logLevel    string
	development bool
	metrics     bool

	counter   lockdemo.CounterConfig
	readWrite lockdemo.ReadWriteConfig
}

// app holds everything a subcommand needs after flags are parsed.
type app struct {
	config   *lockdemo.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	runner   *lockdemo.Runner
	stdout   io.Writer
	stderr   io.Writer
}

func newLogger(level string, development bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// overrideCounter copies explicitly set flags on top of the config file.
func overrideCounter(flags *pflag.FlagSet, dst *lockdemo.CounterConfig, src lockdemo.CounterConfig) {
	if flags.Changed("initial") {
		dst.Initial = src.Initial
	}
	if flags.Changed("increments") {
		dst.Increments = src.Increments
	}
}

func overrideReadWrite(flags *pflag.FlagSet, dst *lockdemo.ReadWriteConfig, src lockdemo.ReadWriteConfig) {
	if flags.Changed("readers") {
		dst.Readers = src.Readers
	}
	if flags.Changed("reads") {
		dst.Reads = src.Reads
	}
	if flags.Changed("writes") {
		dst.Writes = src.Writes
	}
	if flags.Changed("exclusive") {
		dst.Exclusive = src.Exclusive
	}
}

func (o *options) setup(cmd *cobra.Command) (*app, error) {
	logger, err := newLogger(o.logLevel, o.development)
	if err != nil {
		return nil, err
	}

	config, err := lockdemo.LoadConfig(o.configPath)
	if err != nil {
		logger.Error("failed to load config", zap.Error(err), zap.String("path", o.configPath))
		return nil, err
	}
	overrideCounter(cmd.Flags(), &config.Counter, o.counter)
	overrideReadWrite(cmd.Flags(), &config.ReadWrite, o.readWrite)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	a := &app{
		config:   config,
		logger:   logger,
		registry: registry,
		stdout:   cmd.OutOrStdout(),
		stderr:   cmd.ErrOrStderr(),
	}
	a.runner = lockdemo.NewRunner(
		lockdemo.WithLogger(logger),
		lockdemo.WithObserver(lockdemo.NewLineObserver(a.stdout)),
		lockdemo.WithMetrics(lockdemo.NewMetrics(registry)),
	)
	return a, nil
}

func (a *app) close(dumpMetrics bool) error {
	defer func() { _ = a.logger.Sync() }()
	if !dumpMetrics {
		return nil
	}

	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(a.stderr, mf); err != nil {
			return err
		}
	}
	return nil
}

// run wraps a subcommand body with setup and teardown.
func (o *options) run(body func(a *app) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := o.setup(cmd)
		if err != nil {
			return err
		}
		err = body(a)
		if cerr := a.close(o.metrics); err == nil {
			err = cerr
		}
		return err
	}
}

func runCounter(a *app) error {
	_, err := a.runner.RunCounter(a.config.Counter)
	return err
}

func runReadWrite(a *app) error {
	_, err := a.runner.RunReadWrite(a.config.ReadWrite)
	return err
}

func runCompare(a *app) error {
	cfg := a.config.ReadWrite
	cfg.Exclusive = false
	rw, err := a.runner.RunReadWrite(cfg)
	if err != nil {
		return err
	}

	cfg.Exclusive = true
	ex, err := a.runner.RunReadWrite(cfg)
	if err != nil {
		return err
	}

	for _, rep := range []lockdemo.Report{rw, ex} {
		fmt.Fprintf(a.stderr, "%-20s reads=%d writes=%d elapsed=%s\n", rep.Demo, rep.Reads, rep.Writes, rep.Elapsed)
	}
	return nil
}

func runGeometry(a *app) error {
	shapes := make([]geometry.Shape, 0, len(a.config.Shapes))
	for _, spec := range a.config.Shapes {
		s, err := spec.Build()
		if err != nil {
			return err
		}
		shapes = append(shapes, s)
		fmt.Fprintf(a.stdout, "%s area: %.2f\n", s.Name(), s.Area())
	}
	fmt.Fprintf(a.stdout, "Total area: %.2f\n", geometry.TotalArea(shapes...))
	return nil
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:           "lockdemo",
		Short:         "Compare a mutex and a reader/writer lock on a shared counter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: o.run(func(a *app) error {
			if err := runCounter(a); err != nil {
				return err
			}
			return runReadWrite(a)
		}),
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "conf", "", "путь к .yaml конфигу демонстраций")
	pf.StringVar(&o.logLevel, "log-level", "warn", "log level")
	pf.BoolVar(&o.development, "dev", false, "human readable logs")
	pf.BoolVar(&o.metrics, "metrics", false, "print lock metrics to stderr on exit")

	counterFlags := func(fs *pflag.FlagSet) {
		fs.IntVar(&o.counter.Initial, "initial", 0, "initial counter value")
		fs.IntVar(&o.counter.Increments, "increments", 50, "increments per actor")
	}
	readWriteFlags := func(fs *pflag.FlagSet) {
		fs.IntVar(&o.readWrite.Readers, "readers", 10, "number of reader workers")
		fs.IntVar(&o.readWrite.Reads, "reads", 20, "reads per reader")
		fs.IntVar(&o.readWrite.Writes, "writes", 20, "writes by the caller")
	}

	counterCmd := &cobra.Command{
		Use:   "counter",
		Short: "Two actors increment a mutex-guarded counter",
		Args:  cobra.NoArgs,
		RunE:  o.run(runCounter),
	}
	counterFlags(counterCmd.Flags())

	readWriteCmd := &cobra.Command{
		Use:   "readwrite",
		Short: "Readers share a reader/writer lock with a single writer",
		Args:  cobra.NoArgs,
		RunE:  o.run(runReadWrite),
	}
	readWriteFlags(readWriteCmd.Flags())
	readWriteCmd.Flags().BoolVar(&o.readWrite.Exclusive, "exclusive", false, "use a plain mutex instead")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the read/write workload over both locks and report timings",
		Args:  cobra.NoArgs,
		RunE:  o.run(runCompare),
	}
	readWriteFlags(compareCmd.Flags())

	geometryCmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print areas of the shapes listed in the config",
		Args:  cobra.NoArgs,
		RunE:  o.run(runGeometry),
	}

	root.AddCommand(counterCmd, readWriteCmd, compareCmd, geometryCmd)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lockdemo:", err)
		os.Exit(1)
	}
}
