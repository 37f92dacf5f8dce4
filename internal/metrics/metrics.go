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

// Package metrics replaces the teacher's ad hoc Metric/ScopedMetric/
// METRIC_RECORD trio (metrics.go) with github.com/prometheus/client_golang,
// grounded in the pack's yesoreyeram-thaiyyal module. It plays the same
// role: counting how many tasks ran and how long they took. The counts are
// exposed only for scraping while a run is in progress, when Serve is
// started; nothing prints them at the end of a run.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder accumulates per-task outcome counts and duration histograms for
// one hexmake invocation.
type Recorder struct {
	registry *prometheus.Registry

	tasksTotal   *prometheus.CounterVec
	taskDuration prometheus.Histogram
}

// NewRecorder builds a Recorder registered against its own private
// registry, so a run's metrics never collide with anything else linked
// into the process.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.tasksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hexmake_tasks_total",
		Help: "Number of rule executions, by outcome.",
	}, []string{"outcome"})

	r.taskDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "hexmake_task_duration_seconds",
		Help:    "Wall-clock duration of one rule execution.",
		Buckets: prometheus.DefBuckets,
	})

	r.registry.MustRegister(r.tasksTotal, r.taskDuration)
	return r
}

// ObserveTask records one completed task. It satisfies
// hexmake.MetricsRecorder.
func (r *Recorder) ObserveTask(success bool, duration time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.tasksTotal.WithLabelValues(outcome).Inc()
	r.taskDuration.Observe(duration.Seconds())
}

// Handler returns an http.Handler serving this Recorder's metrics in the
// Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve starts a metrics listener on addr for the lifetime of stop. It is
// meant to be run for the duration of a single build, never left running
// once hexmake exits — see the "no daemon modes" non-goal.
func Serve(addr string, r *Recorder, stop <-chan struct{}) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		return srv.Close()
	}
}
