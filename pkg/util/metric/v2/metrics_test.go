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

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPoolMetrics(t *testing.T) {
	m := GetPoolMetrics("metrics-test")
	m.AcquireAlloc.Inc()
	m.AcquireReuse.Add(2)
	m.ReleaseIdle.Add(3)
	m.ReleaseDrop.Inc()
	m.Idle.Set(4)

	require.Equal(t, float64(1), testutil.ToFloat64(m.AcquireAlloc))
	require.Equal(t, float64(2), testutil.ToFloat64(m.AcquireReuse))
	require.Equal(t, float64(3), testutil.ToFloat64(m.ReleaseIdle))
	require.Equal(t, float64(1), testutil.ToFloat64(m.ReleaseDrop))
	require.Equal(t, float64(4), testutil.ToFloat64(m.Idle))

	// same label values resolve to the same collectors
	require.Equal(t, float64(1), testutil.ToFloat64(GetPoolMetrics("metrics-test").AcquireAlloc))
}

func TestRegistry(t *testing.T) {
	GetPoolMetrics("registry-test").AcquireAlloc.Inc()
	BenchPushCounter.Inc()

	families, err := GetPrometheusGatherer().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	require.True(t, names["segdeque_container_pool_acquire_total"])
	require.True(t, names["segdeque_bench_ops_total"])
}
