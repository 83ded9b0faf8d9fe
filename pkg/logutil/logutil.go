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

package logutil

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _globalLogger atomic.Value

func init() {
	SetupMOLogger(&LogConfig{
		Level:  zapcore.InfoLevel.String(),
		Format: "console",
	})
}

// SetupMOLogger sets up the global logger.
func SetupMOLogger(conf *LogConfig) {
	logger := initMOLogger(conf)
	replaceGlobalLogger(logger)
	logger.Debug("logger setup", zap.String("level", conf.Level), zap.String("format", conf.Format))
}

func initMOLogger(cfg *LogConfig) *zap.Logger {
	return GetLoggerWithOptions(cfg.getLevel(), cfg.getSinks(), cfg.getOptions()...)
}

// GetLoggerWithOptions builds a logger writing every entry at or above
// level to each of the sinks.
func GetLoggerWithOptions(level zapcore.LevelEnabler, sinks []ZapSink, opts ...zap.Option) *zap.Logger {
	cores := make([]zapcore.Core, 0, len(sinks))
	for _, sink := range sinks {
		cores = append(cores, zapcore.NewCore(sink.enc, sink.out, level))
	}
	return zap.New(zapcore.NewTee(cores...), opts...)
}

func replaceGlobalLogger(logger *zap.Logger) {
	_globalLogger.Store(logger)
}

// GetGlobalLogger returns the current global zap Logger.
func GetGlobalLogger() *zap.Logger {
	return _globalLogger.Load().(*zap.Logger)
}

// GetNamedLogger returns a child of the global logger with the given name.
func GetNamedLogger(name string) *zap.Logger {
	return GetGlobalLogger().Named(name)
}
