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

package config

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/segdeque/pkg/common/moerr"
	"github.com/matrixorigin/segdeque/pkg/logutil"
)

const (
	PatternFIFO  = "fifo"
	PatternLIFO  = "lifo"
	PatternMixed = "mixed"
)

var (
	defaultMaxIdle  = 120
	defaultPrealloc = 0
	defaultWorkers  = 4
	defaultRounds   = 64
	defaultBatch    = 4096
	defaultPattern  = PatternMixed
)

// Config is the segdeque tool configuration.
type Config struct {
	Log   logutil.LogConfig `toml:"log"`
	Pool  PoolConfig        `toml:"pool"`
	Bench BenchConfig       `toml:"bench"`
}

// PoolConfig sizes the segment pool of each benchmark deque.
type PoolConfig struct {
	// MaxIdle is the number of idle segments retained by the pool.
	MaxIdle int `toml:"max-idle"`
	// Prealloc is the number of segments allocated up front.
	Prealloc int `toml:"prealloc"`
}

type BenchConfig struct {
	// Workers is the size of the goroutine pool.
	Workers int `toml:"workers"`
	// Rounds is the number of independent deques churned.
	Rounds int `toml:"rounds"`
	// Batch is the number of elements pushed per round.
	Batch int `toml:"batch"`
	// Pattern is one of fifo, lifo or mixed.
	Pattern string `toml:"pattern"`
}

// Default returns a config with every field set to its default.
func Default() *Config {
	c := &Config{
		Pool: PoolConfig{
			MaxIdle:  defaultMaxIdle,
			Prealloc: defaultPrealloc,
		},
		Bench: BenchConfig{
			Workers: defaultWorkers,
			Rounds:  defaultRounds,
			Batch:   defaultBatch,
			Pattern: defaultPattern,
		},
	}
	c.Log.Level = "info"
	c.Log.Format = "console"
	return c
}

// Load reads a toml file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	c := Default()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return nil, moerr.NewBadConfigNoCtx("%s: %v", path, err)
	}
	c.SetDefaultValues()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetDefaultValues fills fields left empty by a partial config.
func (c *Config) SetDefaultValues() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Bench.Pattern == "" {
		c.Bench.Pattern = defaultPattern
	}
}

func (c *Config) Validate() error {
	switch {
	case c.Pool.MaxIdle < 0:
		return moerr.NewBadConfigNoCtx("pool.max-idle %d is negative", c.Pool.MaxIdle)
	case c.Pool.Prealloc < 0:
		return moerr.NewBadConfigNoCtx("pool.prealloc %d is negative", c.Pool.Prealloc)
	case c.Pool.Prealloc > c.Pool.MaxIdle:
		return moerr.NewBadConfigNoCtx("pool.prealloc %d exceeds pool.max-idle %d", c.Pool.Prealloc, c.Pool.MaxIdle)
	case c.Bench.Workers < 1:
		return moerr.NewBadConfigNoCtx("bench.workers must be positive, got %d", c.Bench.Workers)
	case c.Bench.Rounds < 1:
		return moerr.NewBadConfigNoCtx("bench.rounds must be positive, got %d", c.Bench.Rounds)
	case c.Bench.Batch < 1:
		return moerr.NewBadConfigNoCtx("bench.batch must be positive, got %d", c.Bench.Batch)
	}
	switch c.Bench.Pattern {
	case PatternFIFO, PatternLIFO, PatternMixed:
	default:
		return moerr.NewBadConfigNoCtx("bench.pattern %q not in fifo, lifo, mixed", c.Bench.Pattern)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return moerr.NewBadConfigNoCtx("log.format %q not in console, json", c.Log.Format)
	}
	return nil
}

// Write encodes c as toml.
func Write(w io.Writer, c *Config) error {
	return toml.NewEncoder(w).Encode(c)
}
