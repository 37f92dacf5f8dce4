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
	"sync/atomic"

	"golang.org/x/exp/slices"
)

// TaskNode is a vertex in the build graph carrying a payload of type T (in
// hexmake, always a *Rule). It tracks the edges the spec calls dependencies
// and reverseDependencies, plus an atomic count of unfinished dependencies.
//
// addDependency is only ever called while the graph is being built, single
// threaded, by the Planner. dependencyFinished is called concurrently by
// Conductor worker goroutines and must be atomic; dependencies() and
// reverseDependencies() return snapshots safe to read concurrently with
// dependencyFinished since the underlying slices are never mutated once
// planning completes.
type TaskNode[T any] struct {
	Payload T

	dependencies        []*TaskNode[T]
	reverseDependencies []*TaskNode[T]
	pendingCount        atomic.Int64
}

// NewTaskNode wraps payload in a fresh, edge-less TaskNode.
func NewTaskNode[T any](payload T) *TaskNode[T] {
	return &TaskNode[T]{Payload: payload}
}

// AddDependency inserts other into n's dependency set if it is not already
// present, and updates other's reverse-dependency set and n's pending count
// to match. Idempotent: adding the same dependency twice has no further
// effect past the first call. Called only during graph construction, never
// concurrently with itself.
func (n *TaskNode[T]) AddDependency(other *TaskNode[T]) {
	if slices.Contains(n.dependencies, other) {
		return
	}
	n.dependencies = append(n.dependencies, other)
	other.reverseDependencies = append(other.reverseDependencies, n)
	n.pendingCount.Add(1)
}

// DependencyFinished atomically decrements n's pending count and returns the
// new value. A return of zero means n is now ready to run.
func (n *TaskNode[T]) DependencyFinished() int64 {
	return n.pendingCount.Add(-1)
}

// PendingCount returns the current count of unfinished dependencies.
func (n *TaskNode[T]) PendingCount() int64 {
	return n.pendingCount.Load()
}

// Dependencies returns a read-only, insertion-ordered view of n's
// dependencies.
func (n *TaskNode[T]) Dependencies() []*TaskNode[T] {
	return n.dependencies
}

// ReverseDependencies returns a read-only, insertion-ordered view of the
// nodes that depend on n.
func (n *TaskNode[T]) ReverseDependencies() []*TaskNode[T] {
	return n.reverseDependencies
}
