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
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStatus is a Status that records the order tasks finish in,
// guarded by a mutex since Conductor calls it from worker goroutines.
type recordingStatus struct {
	mu       sync.Mutex
	finished []string
}

func (r *recordingStatus) PlanHasTotalTasks(int)   {}
func (r *recordingStatus) TaskStarted(*Rule)       {}
func (r *recordingStatus) BuildFinished()          {}
func (r *recordingStatus) TaskFinished(rule *Rule, success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, rule.Outputs[0].String())
}

func planTasks(t *testing.T, spec *Spec, targets ...string) []*Task {
	t.Helper()
	planner, err := NewPlanner(spec)
	require.NoError(t, err)
	paths := make([]Path, len(targets))
	for i, s := range targets {
		paths[i] = NewPath(s)
	}
	tasks, err := planner.Plan(paths)
	require.NoError(t, err)
	return tasks
}

func TestConductorRunsDiamondToCompletion(t *testing.T) {
	root := t.TempDir()
	spec := diamondSpec()
	// diamondSpec's commands reference a real compiler; swap in commands
	// that only need /bin/sh so the test has no toolchain dependency.
	spec.Rules[0].Commands = []string{"echo base > out/base.o"}
	spec.Rules[1].Commands = []string{"cat out/base.o > out/left.o"}
	spec.Rules[2].Commands = []string{"cat out/base.o > out/right.o"}
	spec.Rules[3].Commands = []string{"cat out/left.o out/right.o > out/app"}
	// base.o's rule declares src/base.c as an input, which must exist to be
	// staged into its sandbox.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o777))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "base.c"), []byte("int base;\n"), 0o666))

	tasks := planTasks(t, spec, "out/app")

	mgr := NewSandboxManager(root)
	require.NoError(t, mgr.Clean())
	status := &recordingStatus{}
	conductor := &Conductor{
		Concurrency: 2,
		Executor:    &RuleExecutor{Sandboxes: mgr, WorkspaceRoot: root},
		Status:      status,
	}

	ok := conductor.Run(context.Background(), tasks)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"out/base.o", "out/left.o", "out/right.o", "out/app"}, status.finished)
}

func TestConductorStopsDispatchingAfterFailure(t *testing.T) {
	root := t.TempDir()
	spec := &Spec{
		Rules: []Rule{
			{Outputs: []Path{NewPath("out/fails")}, Commands: []string{"exit 1"}},
			{Outputs: []Path{NewPath("out/downstream")}, Inputs: []Path{NewPath("out/fails")}, Commands: []string{"echo never > out/downstream"}},
			{Outputs: []Path{NewPath("out/independent")}, Commands: []string{"echo ok > out/independent"}},
		},
	}
	tasks := planTasks(t, spec, "out/downstream", "out/independent")

	mgr := NewSandboxManager(root)
	require.NoError(t, mgr.Clean())
	conductor := &Conductor{
		Concurrency: 1,
		Executor:    &RuleExecutor{Sandboxes: mgr, WorkspaceRoot: root},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ok := conductor.Run(ctx, tasks)
	assert.False(t, ok)
	// With one worker, out/independent is still waiting for the slot when
	// out/fails fails, so it is never dispatched.
	assert.NoFileExists(t, filepath.Join(root, "out", "independent"))
}

func TestConductorEmptyPlanSucceeds(t *testing.T) {
	conductor := &Conductor{Concurrency: 1, Executor: &RuleExecutor{}}
	assert.True(t, conductor.Run(context.Background(), nil))
}
