// Copyright 2024 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/segdeque/pkg/common/moerr"
	"github.com/matrixorigin/segdeque/pkg/config"
	"github.com/matrixorigin/segdeque/pkg/container/deque"
	"github.com/matrixorigin/segdeque/pkg/container/pool"
	"github.com/matrixorigin/segdeque/pkg/logutil"
	v2 "github.com/matrixorigin/segdeque/pkg/util/metric/v2"
)

// cyclesPerRound runs the batch twice per deque so the second cycle is
// served from recycled segments.
const cyclesPerRound = 2

const benchPoolName = "bench"

type benchResult struct {
	Rounds       int
	Pushes       uint64
	Pops         uint64
	PeakSegments int
	Pool         pool.Stats
	Elapsed      time.Duration
}

func (r *benchResult) merge(o benchResult) {
	r.Rounds += o.Rounds
	r.Pushes += o.Pushes
	r.Pops += o.Pops
	r.PeakSegments = max(r.PeakSegments, o.PeakSegments)
	r.Pool.Allocated += o.Pool.Allocated
	r.Pool.Reused += o.Pool.Reused
	r.Pool.Released += o.Pool.Released
	r.Pool.Dropped += o.Pool.Dropped
}

func benchCommand() *cobra.Command {
	var (
		cfgFile string
		metrics bool
		flags   config.BenchConfig
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the deque churn benchmark",
		Long:  "Churn independent deques on a worker pool, verify element order on every pop and report throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if cfgFile != "" {
				var err error
				if cfg, err = config.Load(cfgFile); err != nil {
					return err
				}
			}
			fs := cmd.Flags()
			if fs.Changed("workers") {
				cfg.Bench.Workers = flags.Workers
			}
			if fs.Changed("rounds") {
				cfg.Bench.Rounds = flags.Rounds
			}
			if fs.Changed("batch") {
				cfg.Bench.Batch = flags.Batch
			}
			if fs.Changed("pattern") {
				cfg.Bench.Pattern = flags.Pattern
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logutil.SetupMOLogger(&cfg.Log)

			res, err := runBench(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printResult(out, cfg, res)
			if metrics {
				return printMetrics(out, v2.GetPrometheusGatherer())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "toml configuration file")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "size of the worker pool")
	cmd.Flags().IntVar(&flags.Rounds, "rounds", 0, "number of deques to churn")
	cmd.Flags().IntVar(&flags.Batch, "batch", 0, "elements pushed per cycle")
	cmd.Flags().StringVar(&flags.Pattern, "pattern", "", "fifo, lifo or mixed")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print the collected metrics")
	return cmd
}

func runBench(cfg *config.Config) (benchResult, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		total    benchResult
		firstErr error
	)
	record := func(res benchResult, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		total.merge(res)
	}

	workers, err := ants.NewPool(cfg.Bench.Workers, ants.WithPreAlloc(true))
	if err != nil {
		return total, moerr.ConvertGoError(context.Background(), err)
	}
	defer workers.Release()

	start := time.Now()
	for i := 0; i < cfg.Bench.Rounds; i++ {
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			// container misuse panics with a moerr error, report it as the
			// round's failure
			defer func() {
				if v := recover(); v != nil {
					record(benchResult{}, moerr.ConvertPanicError(context.Background(), v))
				}
			}()
			record(runRound(cfg, i))
		}); err != nil {
			wg.Done()
			record(benchResult{}, moerr.ConvertGoError(context.Background(), err))
			break
		}
	}
	wg.Wait()
	total.Elapsed = time.Since(start)

	if firstErr != nil {
		logutil.Error("bench failed", zap.Error(firstErr))
		return total, firstErr
	}
	logutil.Info("bench finished",
		zap.String("pattern", cfg.Bench.Pattern),
		zap.Int("rounds", total.Rounds),
		zap.Uint64("pushes", total.Pushes),
		zap.Uint64("pops", total.Pops),
		zap.Duration("elapsed", total.Elapsed),
	)
	return total, nil
}

// runRound churns one deque on its own segment pool.
func runRound(cfg *config.Config, round int) (benchResult, error) {
	start := time.Now()
	sp := deque.NewSegmentPool[int64](benchPoolName, cfg.Pool.MaxIdle)
	sp.Reserve(cfg.Pool.Prealloc)
	d := deque.New(deque.WithPool(sp))

	res := benchResult{Rounds: 1}
	var err error
	for c := 0; c < cyclesPerRound && err == nil; c++ {
		switch cfg.Bench.Pattern {
		case config.PatternFIFO:
			err = churnFIFO(d, cfg.Bench.Batch, &res)
		case config.PatternLIFO:
			err = churnLIFO(d, cfg.Bench.Batch, &res)
		default:
			err = churnMixed(d, cfg.Bench.Batch, &res)
		}
	}
	d.Close()
	res.Pool = sp.Stats()
	sp.Close()
	if err != nil {
		return res, moerr.NewInternalErrorNoCtx("round %d: %v", round, err)
	}

	v2.BenchPushCounter.Add(float64(res.Pushes))
	v2.BenchPopCounter.Add(float64(res.Pops))
	v2.BenchRoundDurationHistogram.Observe(time.Since(start).Seconds())
	return res, nil
}

func mismatch(got, want int64) error {
	return moerr.NewInternalErrorNoCtx("popped %d, want %d", got, want)
}

func churnFIFO(d *deque.Deque[int64], batch int, res *benchResult) error {
	for i := 0; i < batch; i++ {
		d.PushBack(int64(i))
	}
	res.Pushes += uint64(batch)
	res.PeakSegments = max(res.PeakSegments, d.Segments())
	for i := 0; i < batch; i++ {
		if v := d.PopFront(); v != int64(i) {
			return mismatch(v, int64(i))
		}
	}
	res.Pops += uint64(batch)
	return nil
}

func churnLIFO(d *deque.Deque[int64], batch int, res *benchResult) error {
	for i := 0; i < batch; i++ {
		d.PushBack(int64(i))
	}
	res.Pushes += uint64(batch)
	res.PeakSegments = max(res.PeakSegments, d.Segments())
	for i := batch - 1; i >= 0; i-- {
		if v := d.PopBack(); v != int64(i) {
			return mismatch(v, int64(i))
		}
	}
	res.Pops += uint64(batch)
	return nil
}

// churnMixed grows the deque at both ends, giving -batch..-1, 0..batch-1,
// then drains it alternately from the front and the back.
func churnMixed(d *deque.Deque[int64], batch int, res *benchResult) error {
	for i := 0; i < batch; i++ {
		d.PushBack(int64(i))
		d.PushFront(int64(-i - 1))
	}
	res.Pushes += uint64(2 * batch)
	res.PeakSegments = max(res.PeakSegments, d.Segments())
	for i := 0; i < batch; i++ {
		if v, want := d.PopFront(), int64(i-batch); v != want {
			return mismatch(v, want)
		}
		if v, want := d.PopBack(), int64(batch-1-i); v != want {
			return mismatch(v, want)
		}
	}
	res.Pops += uint64(2 * batch)
	return nil
}

func printResult(w io.Writer, cfg *config.Config, res benchResult) {
	ops := float64(res.Pushes + res.Pops)
	fmt.Fprintf(w, "pattern %s, workers %d, rounds %d, batch %d\n",
		cfg.Bench.Pattern, cfg.Bench.Workers, res.Rounds, cfg.Bench.Batch)
	fmt.Fprintf(w, "pushes %d, pops %d, elapsed %s, %.0f ops/s\n",
		res.Pushes, res.Pops, res.Elapsed, ops/max(res.Elapsed.Seconds(), 1e-9))
	fmt.Fprintf(w, "segments allocated %d, reused %d, dropped %d, peak per deque %d\n",
		res.Pool.Allocated, res.Pool.Reused, res.Pool.Dropped, res.PeakSegments)
}

// printMetrics writes the segdeque metric families in a compact form.
func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "segdeque_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			sort.Strings(labels)
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
