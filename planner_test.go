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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamondSpec() *Spec {
	return &Spec{
		Rules: []Rule{
			{Outputs: []Path{NewPath("out/base.o")}, Inputs: []Path{NewPath("src/base.c")}, Commands: []string{"cc -c src/base.c -o out/base.o"}},
			{Outputs: []Path{NewPath("out/left.o")}, Inputs: []Path{NewPath("out/base.o")}, Commands: []string{"cc -c out/base.o -o out/left.o"}},
			{Outputs: []Path{NewPath("out/right.o")}, Inputs: []Path{NewPath("out/base.o")}, Commands: []string{"cc -c out/base.o -o out/right.o"}},
			{Outputs: []Path{NewPath("out/app")}, Inputs: []Path{NewPath("out/left.o"), NewPath("out/right.o")}, Commands: []string{"ld out/left.o out/right.o -o out/app"}},
		},
	}
}

func taskOutputs(tasks []*Task) []string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Payload.Outputs[0].String()
	}
	return names
}

// TestPlannerTwoLevelBuildOrder is spec.md §8 scenario 1 verbatim: a task's
// own entry in the planner's output precedes its dependency's, since
// ensureTask appends a rule's task to the order before recursing into its
// inputs.
func TestPlannerTwoLevelBuildOrder(t *testing.T) {
	spec := &Spec{
		Rules: []Rule{
			{Outputs: []Path{NewPath("out/foo.o")}, Inputs: []Path{NewPath("foo.c")}, Commands: []string{"cc -c foo.c -o out/foo.o"}},
			{Outputs: []Path{NewPath("out/foo")}, Inputs: []Path{NewPath("out/foo.o")}, Commands: []string{"cc out/foo.o -o out/foo"}},
		},
	}
	planner, err := NewPlanner(spec)
	require.NoError(t, err)

	tasks, err := planner.Plan([]Path{NewPath("out/foo")})
	require.NoError(t, err)

	assert.Equal(t, []string{"out/foo", "out/foo.o"}, taskOutputs(tasks))
	require.Len(t, tasks, 2)
	assert.Equal(t, []*Task{tasks[1]}, tasks[0].Dependencies())
}

func TestPlannerDiamondSharesBaseTask(t *testing.T) {
	spec := diamondSpec()
	planner, err := NewPlanner(spec)
	require.NoError(t, err)

	tasks, err := planner.Plan([]Path{NewPath("out/app")})
	require.NoError(t, err)

	// app is appended to the order before its dependencies are recursed
	// into; left.o is visited (and appended) before right.o, per the
	// rule's declared input order, and base.o's second visit (via right.o)
	// finds the task already built rather than appending again.
	assert.Equal(t, []string{"out/app", "out/left.o", "out/base.o", "out/right.o"}, taskOutputs(tasks))

	var base *Task
	for _, t := range tasks {
		if t.Payload.Outputs[0].String() == "out/base.o" {
			base = t
		}
	}
	require.NotNil(t, base)
	assert.Len(t, base.ReverseDependencies(), 2, "base.o task must be shared, not duplicated")
}

func TestPlannerIsDeterministic(t *testing.T) {
	spec := diamondSpec()

	p1, err := NewPlanner(spec)
	require.NoError(t, err)
	tasks1, err := p1.Plan([]Path{NewPath("out/app")})
	require.NoError(t, err)

	p2, err := NewPlanner(spec)
	require.NoError(t, err)
	tasks2, err := p2.Plan([]Path{NewPath("out/app")})
	require.NoError(t, err)

	if diff := cmp.Diff(taskOutputs(tasks1), taskOutputs(tasks2)); diff != "" {
		t.Errorf("planning the same spec twice produced different orders (-first +second):\n%s", diff)
	}
}

func TestPlannerSourceTargetIsNoop(t *testing.T) {
	spec := diamondSpec()
	planner, err := NewPlanner(spec)
	require.NoError(t, err)

	tasks, err := planner.Plan([]Path{NewPath("src/base.c")})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

// TestPlannerMultiOutputRule is spec.md §8 scenario 3: one rule producing
// two outputs is a single shared task for both downstream consumers.
func TestPlannerMultiOutputRule(t *testing.T) {
	spec := &Spec{
		Rules: []Rule{
			{Outputs: []Path{NewPath("out/foo.c"), NewPath("out/bar.c")}, Inputs: []Path{NewPath("gensources")}, Commands: []string{"./gensources"}},
			{Outputs: []Path{NewPath("out/foo")}, Inputs: []Path{NewPath("out/foo.c")}, Commands: []string{"cc out/foo.c -o out/foo"}},
		},
	}
	planner, err := NewPlanner(spec)
	require.NoError(t, err)

	tasks, err := planner.Plan([]Path{NewPath("out/foo")})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	foo := tasks[0]
	assert.Equal(t, "out/foo", foo.Payload.Outputs[0].String())
	require.Len(t, foo.Dependencies(), 1)

	generator := foo.Dependencies()[0]
	var generatorOutputs []string
	for _, o := range generator.Payload.Outputs {
		generatorOutputs = append(generatorOutputs, o.String())
	}
	assert.Equal(t, []string{"out/foo.c", "out/bar.c"}, generatorOutputs)
}

// TestPlannerDuplicateTargetRequest is spec.md §8 scenario 4.
func TestPlannerDuplicateTargetRequest(t *testing.T) {
	spec := diamondSpec()
	planner, err := NewPlanner(spec)
	require.NoError(t, err)

	tasks, err := planner.Plan([]Path{NewPath("out/app"), NewPath("out/app")})
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestPlannerUnknownOutput(t *testing.T) {
	spec := diamondSpec()
	planner, err := NewPlanner(spec)
	require.NoError(t, err)

	_, err = planner.Plan([]Path{NewPath("out/bas.o")})
	require.Error(t, err)

	var herr *Error
	require.True(t, asHexmakeError(err, &herr))
	assert.Equal(t, UnknownOutput, herr.Kind)
	assert.Contains(t, herr.Message, "out/base.o")
}

func TestPlannerDuplicateOutput(t *testing.T) {
	spec := &Spec{
		Rules: []Rule{
			{Outputs: []Path{NewPath("out/a")}, Commands: []string{"true"}},
			{Outputs: []Path{NewPath("out/a")}, Commands: []string{"false"}},
		},
	}
	_, err := NewPlanner(spec)
	require.Error(t, err)

	var herr *Error
	require.True(t, asHexmakeError(err, &herr))
	assert.Equal(t, DuplicateOutput, herr.Kind)
}

func TestPlannerCycleDetected(t *testing.T) {
	spec := &Spec{
		Rules: []Rule{
			{Outputs: []Path{NewPath("out/a")}, Inputs: []Path{NewPath("out/b")}, Commands: []string{"true"}},
			{Outputs: []Path{NewPath("out/b")}, Inputs: []Path{NewPath("out/a")}, Commands: []string{"true"}},
		},
	}
	planner, err := NewPlanner(spec)
	require.NoError(t, err)

	_, err = planner.Plan([]Path{NewPath("out/a")})
	require.Error(t, err)

	var herr *Error
	require.True(t, asHexmakeError(err, &herr))
	assert.Equal(t, CycleDetected, herr.Kind)
}
