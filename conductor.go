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
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/hexmake-build/hexmake/internal/hexlog"
)

// Conductor runs a set of Tasks with bounded concurrency, respecting
// dependencies, and aborts promptly on the first failure. Bounded
// concurrency is enforced with golang.org/x/sync/semaphore rather than a
// fixed-size goroutine pool: one dispatcher goroutine drains a buffered
// ready channel (the spec's ready_queue) and spawns one goroutine per
// dispatched task, gated by the semaphore; a nil value on the channel is
// this Conductor's SHUTDOWN sentinel, used only to unstick the dispatcher
// when aborting early with tasks still unaccounted for.
type Conductor struct {
	Concurrency int
	Executor    *RuleExecutor
	Status      Status
	Metrics     MetricsRecorder
}

// MetricsRecorder is the narrow interface the Conductor needs from a
// metrics backend; internal/metrics.Recorder implements it.
type MetricsRecorder interface {
	ObserveTask(success bool, duration time.Duration)
}

// Run executes every node in nodes, respecting dependency edges, and
// returns true iff every task succeeded. It never dispatches a task before
// every one of its dependencies has completed successfully (safety), and
// executes every task exactly once when the graph is acyclic and no task
// fails (liveness).
func (c *Conductor) Run(ctx context.Context, nodes []*Task) bool {
	total := len(nodes)
	if total == 0 {
		return true
	}
	status := c.Status
	if status == nil {
		status = noopStatus{}
	}
	status.PlanHasTotalTasks(total)

	readyCh := make(chan *Task, total+1)
	completionCh := make(chan struct{}, total)
	var anyFailed atomic.Bool
	sem := semaphore.NewWeighted(int64(c.Concurrency))
	var wg sync.WaitGroup

	for _, n := range nodes {
		if n.PendingCount() == 0 {
			readyCh <- n
		}
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		accounted := 0
		for accounted < total {
			task := <-readyCh
			if task == nil {
				return
			}
			accounted++

			if err := sem.Acquire(ctx, 1); err != nil {
				anyFailed.Store(true)
				completionCh <- struct{}{}
				continue
			}
			if anyFailed.Load() {
				sem.Release(1)
				return
			}

			wg.Add(1)
			go func(t *Task) {
				defer wg.Done()
				defer sem.Release(1)

				status.TaskStarted(t.Payload)
				start := time.Now()
				var err error
				func() {
					defer func() {
						if r := recover(); r != nil {
							err = fmt.Errorf("hexmake: unexpected error building %q: %v", t.Payload.Outputs[0].String(), r)
							hexlog.Error("%v", err)
						}
					}()
					_, err = c.Executor.Execute(ctx, t.Payload)
				}()
				duration := time.Since(start)
				if c.Metrics != nil {
					c.Metrics.ObserveTask(err == nil, duration)
				}
				status.TaskFinished(t.Payload, err == nil)

				if err != nil {
					anyFailed.Store(true)
					hexlog.Explain("%q failed, not scheduling its %d dependents", t.Payload.Outputs[0].String(), len(t.ReverseDependencies()))
				} else {
					for _, rd := range t.ReverseDependencies() {
						if remaining := rd.DependencyFinished(); remaining == 0 {
							hexlog.Explain("%q has no pending dependencies left, scheduling it", rd.Payload.Outputs[0].String())
							readyCh <- rd
						} else {
							hexlog.Explain("%q still has %d pending dependencies", rd.Payload.Outputs[0].String(), remaining)
						}
					}
				}
				completionCh <- struct{}{}
			}(task)
		}
	}()

	completed := 0
	for completed < total {
		<-completionCh
		completed++
		if anyFailed.Load() {
			break
		}
	}

	// Unstick the dispatcher if it is still waiting for tasks that will
	// never become ready because of the failure above; harmless no-op if
	// the dispatcher already exited on its own.
	select {
	case readyCh <- nil:
	default:
	}
	wg.Wait()

	status.BuildFinished()
	return !anyFailed.Load()
}
