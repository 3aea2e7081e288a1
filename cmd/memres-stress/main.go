// Command memres-stress drives a growable vector over one of the memres
// allocation policies and reports what the allocator did.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pavanmanishd/memres"
)

type config struct {
	Policy    string
	Resources int
	Pushes    int
	LogLevel  string
	Arena     memres.ArenaConfig
}

func (c *config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.Policy, "policy", "arena", "Allocation policy: heap, arena, pool or pages.")
	f.IntVar(&c.Resources, "resources", 64, "Number of vectors to build.")
	f.IntVar(&c.Pushes, "pushes", 10000, "Elements pushed into each vector.")
	f.StringVar(&c.LogLevel, "log.level", "info", "Only log messages with the given severity or above: debug, info, warn, error.")
	c.Arena.RegisterFlags(f)
}

func (c *config) Validate() error {
	if c.Resources <= 0 {
		return errors.New("resources must be positive")
	}
	if c.Pushes < 0 {
		return errors.New("pushes must not be negative")
	}
	if _, err := levelOption(c.LogLevel); err != nil {
		return err
	}
	return c.Arena.Validate()
}

func levelOption(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Errorf("unrecognized log level %q", s)
}

func main() {
	var cfg config
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if err := cfg.Validate(); err != nil {
		level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}
	opt, _ := levelOption(cfg.LogLevel)
	logger = level.NewFilter(logger, opt)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	reg := prometheus.NewRegistry()
	if err := run(cfg, logger, reg); err != nil {
		level.Error(logger).Log("msg", "stress run failed", "err", err)
		os.Exit(1)
	}
	if err := report(os.Stdout, reg); err != nil {
		level.Error(logger).Log("msg", "failed to gather metrics", "err", err)
		os.Exit(1)
	}
}

// newPolicy builds the allocator named by cfg.Policy. release frees any
// memory the policy retains beyond its chunks.
func newPolicy(cfg config, reg prometheus.Registerer) (a memres.Allocator, release func(), err error) {
	release = func() {}
	switch cfg.Policy {
	case "heap":
		return memres.Heap{}, release, nil
	case "arena":
		ar, err := memres.NewArenaFromConfig(cfg.Arena)
		if err != nil {
			return nil, nil, err
		}
		reg.MustRegister(memres.NewArenaCollector(cfg.Policy, ar))
		return ar, ar.Release, nil
	case "pool":
		return memres.NewPool(int(cfg.Arena.AutoSize.Bytes()), int(cfg.Arena.BlockSize.Bytes()), 2), release, nil
	case "pages":
		return memres.Pages{}, release, nil
	}
	return nil, nil, errors.Errorf("unknown policy %q", cfg.Policy)
}

func run(cfg config, logger log.Logger, reg prometheus.Registerer) error {
	base, release, err := newPolicy(cfg, reg)
	if err != nil {
		return err
	}
	defer release()

	var a memres.Allocator = memres.NewInstrumented(base, cfg.Policy, logger, reg)

	vectors := make([]*vector[uint64], 0, cfg.Resources+1)
	defer func() {
		for _, v := range vectors {
			v.free()
		}
	}()

	for i := 0; i < cfg.Resources; i++ {
		v, err := newVector[uint64](a)
		if err != nil {
			return errors.Wrapf(err, "creating vector %d", i)
		}
		vectors = append(vectors, v)
		for j := 0; j < cfg.Pushes; j++ {
			if err := v.push(uint64(i*cfg.Pushes + j)); err != nil {
				return errors.Wrapf(err, "pushing element %d into vector %d", j, i)
			}
		}
		level.Debug(logger).Log("msg", "vector filled", "vector", i, "capacity", v.res.Cap())
	}

	dup, err := vectors[0].clone()
	if err != nil {
		return errors.Wrap(err, "cloning vector")
	}
	vectors = append(vectors, dup)
	if err := verify(vectors[0], dup); err != nil {
		return err
	}

	if ar, ok := base.(*memres.Arena); ok {
		m := ar.Metrics()
		level.Info(logger).Log(
			"msg", "arena usage",
			"in_use", humanize.IBytes(uint64(m.SizeInUse)),
			"capacity", humanize.IBytes(uint64(m.Capacity)),
			"wasted", humanize.IBytes(uint64(m.Wasted)),
			"blocks", m.NumBlocks,
			"utilization", fmt.Sprintf("%.1f%%", m.Utilization*100),
		)
	}
	level.Info(logger).Log(
		"msg", "stress run complete",
		"policy", cfg.Policy,
		"vectors", cfg.Resources,
		"elements", humanize.Comma(int64(cfg.Resources)*int64(cfg.Pushes)),
	)
	return nil
}

func verify(src, dup *vector[uint64]) error {
	a, b := src.elems(), dup.elems()
	if len(a) != len(b) {
		return errors.Errorf("clone holds %d elements, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			return errors.Errorf("clone differs at element %d: %d != %d", i, b[i], a[i])
		}
	}
	return nil
}

// report prints the allocator counters and gauges.
func report(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			var v float64
			switch {
			case m.GetCounter() != nil:
				v = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				v = m.GetGauge().GetValue()
			default:
				continue
			}
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			fmt.Fprintf(w, "%s{%s} %s\n", mf.GetName(), strings.Join(labels, ","), humanize.Ftoa(v))
		}
	}
	return nil
}
