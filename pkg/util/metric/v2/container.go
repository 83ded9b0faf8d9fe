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

package v2

import "github.com/prometheus/client_golang/prometheus"

var (
	containerPoolAcquireCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "segdeque",
			Subsystem: "container",
			Name:      "pool_acquire_total",
			Help:      "Total number of blocks handed out by a pool.",
		}, []string{"pool", "source"})

	containerPoolReleaseCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "segdeque",
			Subsystem: "container",
			Name:      "pool_release_total",
			Help:      "Total number of blocks given back to a pool.",
		}, []string{"pool", "dest"})

	containerPoolIdleGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "segdeque",
			Subsystem: "container",
			Name:      "pool_idle_blocks",
			Help:      "Number of idle blocks retained by the pools of this name.",
		}, []string{"pool"})
)

// PoolMetrics is the set of collectors bound to one pool name.
type PoolMetrics struct {
	AcquireReuse prometheus.Counter
	AcquireAlloc prometheus.Counter
	ReleaseIdle  prometheus.Counter
	ReleaseDrop  prometheus.Counter
	Idle         prometheus.Gauge
}

func GetPoolMetrics(pool string) PoolMetrics {
	return PoolMetrics{
		AcquireReuse: containerPoolAcquireCounter.WithLabelValues(pool, "reuse"),
		AcquireAlloc: containerPoolAcquireCounter.WithLabelValues(pool, "alloc"),
		ReleaseIdle:  containerPoolReleaseCounter.WithLabelValues(pool, "idle"),
		ReleaseDrop:  containerPoolReleaseCounter.WithLabelValues(pool, "drop"),
		Idle:         containerPoolIdleGauge.WithLabelValues(pool),
	}
}
