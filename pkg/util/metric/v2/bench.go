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
	benchOpsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "segdeque",
			Subsystem: "bench",
			Name:      "ops_total",
			Help:      "Total number of deque operations run by the benchmark.",
		}, []string{"op"})
	BenchPushCounter = benchOpsCounter.WithLabelValues("push")
	BenchPopCounter  = benchOpsCounter.WithLabelValues("pop")

	BenchRoundDurationHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "segdeque",
			Subsystem: "bench",
			Name:      "round_duration_seconds",
			Help:      "Bucketed histogram of one benchmark round.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20), // 10us to 5s
		})
)
