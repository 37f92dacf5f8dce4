// Copyright 2026 The Hexmake Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hexmake

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDot(t *testing.T) {
	tasks := planTasks(t, diamondSpec(), "out/app")

	var buf bytes.Buffer
	require.NoError(t, WriteDot(&buf, tasks))

	out := buf.String()
	assert.Contains(t, out, "digraph hexmake {")
	assert.Contains(t, out, `label="out/base.o"`)
	assert.Contains(t, out, `label="out/app"`)
	assert.Contains(t, out, "->")
	assert.Contains(t, out, "}")
}
