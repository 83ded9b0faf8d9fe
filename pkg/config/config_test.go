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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/segdeque/pkg/common/moerr"
)

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "segdeque.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, 120, c.Pool.MaxIdle)
	assert.Equal(t, PatternMixed, c.Bench.Pattern)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoadPartial(t *testing.T) {
	path := writeFile(t, `
[bench]
workers = 8
pattern = "fifo"

[log]
level = "debug"
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Bench.Workers)
	assert.Equal(t, PatternFIFO, c.Bench.Pattern)
	assert.Equal(t, defaultRounds, c.Bench.Rounds)
	assert.Equal(t, defaultMaxIdle, c.Pool.MaxIdle)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format)
}

func TestLoadEmptyStrings(t *testing.T) {
	path := writeFile(t, `
[bench]
pattern = ""
[log]
format = ""
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, PatternMixed, c.Bench.Pattern)
	assert.Equal(t, "console", c.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":            "[bench\nworkers = 1",
		"negative max idle": "[pool]\nmax-idle = -1",
		"prealloc too big":  "[pool]\nmax-idle = 2\nprealloc = 3",
		"zero workers":      "[bench]\nworkers = 0",
		"zero rounds":       "[bench]\nrounds = 0",
		"zero batch":        "[bench]\nbatch = 0",
		"bad pattern":       "[bench]\npattern = \"random\"",
		"bad log format":    "[log]\nformat = \"xml\"",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, content))
			require.Error(t, err)
			assert.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig), err.Error())
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))
}

func TestWriteRoundTrip(t *testing.T) {
	c := Default()
	c.Bench.Workers = 3
	c.Log.Filename = "segdeque.log"
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, c))
	assert.Contains(t, buf.String(), "[bench]")
	assert.Contains(t, buf.String(), "max-idle = 120")

	loaded, err := Load(writeFile(t, buf.String()))
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}
