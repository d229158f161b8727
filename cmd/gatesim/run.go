package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/db47h/gatesim"
	"github.com/db47h/gatesim/clock"
	"github.com/db47h/gatesim/gatelib"
	"github.com/db47h/gatesim/internal/logging"
	"github.com/db47h/gatesim/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var clockCmd = &cobra.Command{
	Use:   "clock KIND",
	Short: "Run a clocked part",
	Long: `Instantiates a part with a clk input, binds a clock to it and prints the
part's outputs after every clock tick.`,
	Args: cobra.ExactArgs(1),
	RunE: runClock,
}

func init() {
	rootCmd.AddCommand(clockCmd)
	f := clockCmd.Flags()
	f.IntP("size", "n", 0, "size of sized parts (0 for the default)")
	f.Int("ticks", 16, "number of clock ticks (two ticks per cycle)")
	f.Duration("period", 0, "clock period (defaults to clock.period from the configuration)")
	f.StringSlice("set", nil, "input values set before the clock starts, e.g. --set en=1,d[0]=0")
	f.String("metrics", "", "address of the metrics endpoint (defaults to metrics.addr)")
}

// tracer decorates an Executor: it prints the outputs of a circuit after
// every command and reports when the given number of ticks have run.
type tracer struct {
	clock.Executor
	w     io.Writer
	clk   gatesim.Terminal
	outs  []gatesim.Terminal
	m     *metrics.Collector
	ticks int
	n     int
	once  sync.Once
	done  chan struct{}
}

func (t *tracer) Do(ctx context.Context, fn gatesim.Command) error {
	return t.Executor.Do(ctx, func(s *gatesim.Sim) error {
		err := fn(s)
		t.n++
		var b strings.Builder
		fmt.Fprintf(&b, "%4d clk=%s", t.n, s.Get(t.clk))
		for _, o := range t.outs {
			fmt.Fprintf(&b, " %s=%s", s.Name(o), s.Get(o))
		}
		fmt.Fprintln(t.w, b.String())
		if t.m != nil {
			t.m.Update(s)
		}
		if t.n >= t.ticks {
			t.once.Do(func() { close(t.done) })
		}
		return err
	})
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}

func parseSet(s *gatesim.Sim, c gatesim.Circuit, pairs []string) error {
	for _, p := range pairs {
		i := strings.IndexByte(p, '=')
		if i < 0 {
			return errors.Errorf("invalid input assignment %q", p)
		}
		name := strings.TrimSpace(p[:i])
		t, ok := s.Lookup(c, name)
		if !ok || s.Direction(t) != gatesim.Input {
			return errors.Errorf("%s has no input named %q", s.CircuitName(c), name)
		}
		v, err := gatesim.ParseValue(p[i+1:])
		if err != nil {
			return err
		}
		if err = s.Set(t, v); err != nil {
			return err
		}
	}
	return nil
}

func runClock(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	n, _ := f.GetInt("size")
	ticks, _ := f.GetInt("ticks")
	period, _ := f.GetDuration("period")
	sets, _ := f.GetStringSlice("set")
	addr, _ := f.GetString("metrics")
	if period <= 0 {
		period = cfg.Clock.Period
	}
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	if ticks <= 0 {
		return errors.Errorf("invalid tick count %d", ticks)
	}

	k, err := gatelib.ParseKind(args[0])
	if err != nil {
		return err
	}

	opts := append(cfg.SimOptions(), gatesim.WithObserver(logging.Observer(logger)))
	reg := prometheus.NewRegistry()
	var m *metrics.Collector
	if addr != "" {
		if m, err = metrics.New(reg); err != nil {
			return err
		}
		opts = append(opts, gatesim.WithObserver(m))
	}
	s := gatesim.New(opts...)

	dut, err := gatelib.New(s, k, n, "", gatesim.Top)
	if err != nil {
		return err
	}
	clkIn, ok := s.Lookup(dut, "clk")
	if !ok || s.Direction(clkIn) != gatesim.Input {
		return errors.Errorf("%s has no clk input", k)
	}
	src, err := s.Instantiate(gatelib.Source(), "clock", gatesim.Top)
	if err != nil {
		return err
	}
	clk := s.Pin(src, "out")
	if err = s.Set(clk, gatesim.Low); err != nil {
		return err
	}
	if err = s.Connect(clk, clkIn); err != nil {
		return err
	}
	if err = parseSet(s, dut, sets); err != nil {
		return err
	}

	q := gatesim.NewQueue(s, 0)
	defer q.Dispose()
	tr := &tracer{
		Executor: q,
		w:        cmd.OutOrStdout(),
		clk:      clk,
		outs:     s.Outputs(dut),
		m:        m,
		ticks:    ticks,
		done:     make(chan struct{}),
	}
	drv := clock.New(tr, clk, period, clock.WithLogger(logger))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsHandler(reg), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			logger.Info("metrics endpoint", "addr", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			return srv.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		defer cancel()
		logger.Info("clock started", "kind", k.String(), "period", period, "ticks", ticks)
		if err := drv.Start(ctx); err != nil {
			return err
		}
		defer drv.Stop()
		select {
		case <-tr.done:
		case <-ctx.Done():
		}
		return nil
	})
	return g.Wait()
}
