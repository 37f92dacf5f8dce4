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

// Command hexmake builds the targets named on its command line from the
// rules declared in a Hexmake file, the way cmd/nin drives the teacher's
// ninja engine from a .ninja file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/google/uuid"

	"github.com/hexmake-build/hexmake"
	"github.com/hexmake-build/hexmake/internal/hexlog"
	"github.com/hexmake-build/hexmake/internal/metrics"
)

// options mirrors the teacher's options struct in cmd/nin/ninja.go: every
// flag hexmake accepts, parsed once up front.
type options struct {
	file        string
	chdir       string
	concurrency int
	verbose     bool
	metricsAddr string
	tool        string
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts options
	fs := flag.NewFlagSet("hexmake", flag.ContinueOnError)
	fs.StringVar(&opts.file, "f", "Hexmake", "input build file")
	fs.StringVar(&opts.chdir, "C", "", "change to DIR before doing anything else")
	fs.IntVar(&opts.concurrency, "j", guessParallelism(), "run N commands in parallel")
	fs.BoolVar(&opts.verbose, "v", false, "explain what hexmake is doing")
	fs.BoolVar(&opts.verbose, "verbose", false, "same as -v")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics at this address for the life of the run")
	fs.StringVar(&opts.tool, "t", "", "run a subtool instead of building: list, clean, graph")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		return 2
	}

	hexlog.SetExplaining(opts.verbose)

	if opts.chdir != "" {
		if err := os.Chdir(opts.chdir); err != nil {
			hexlog.Fatal("changing directory to %s: %v", opts.chdir, err)
		}
	}

	_ = hexmake.LoadDotenv(".env")

	runID := uuid.New().String()
	if opts.verbose {
		hexlog.Explain("run %s starting", runID)
	}

	spec, err := hexmake.LoadSpec(opts.file)
	if err != nil {
		hexlog.Error("%v", err)
		return hexmake.ExitCode(err)
	}
	if opts.verbose {
		for _, pair := range hexmake.ResolveEnviron(spec) {
			hexlog.Explain("environ: %s", pair)
		}
	}

	planner, err := hexmake.NewPlanner(spec)
	if err != nil {
		hexlog.Error("%v", err)
		return hexmake.ExitCode(err)
	}

	if opts.tool != "" {
		return runTool(opts.tool, spec, planner, fs.Args())
	}

	targets, err := targetPaths(fs.Args())
	if err != nil {
		hexlog.Error("%v", err)
		return hexmake.ExitCode(err)
	}

	tasks, err := planner.Plan(targets)
	if err != nil {
		hexlog.Error("%v", err)
		return hexmake.ExitCode(err)
	}
	if len(tasks) == 0 {
		hexlog.Info("nothing to do")
		return 0
	}

	workspaceRoot, err := os.Getwd()
	if err != nil {
		hexlog.Fatal("getwd: %v", err)
	}

	sandboxes := hexmake.NewSandboxManager(workspaceRoot)
	if err := sandboxes.Clean(); err != nil {
		hexlog.Error("%v", err)
		return 1
	}

	recorder := metrics.NewRecorder()
	if opts.metricsAddr != "" {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			if err := metrics.Serve(opts.metricsAddr, recorder, stop); err != nil {
				hexlog.Explain("metrics server: %v", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	conductor := &hexmake.Conductor{
		Concurrency: opts.concurrency,
		Executor: &hexmake.RuleExecutor{
			Sandboxes:     sandboxes,
			WorkspaceRoot: workspaceRoot,
		},
		Status:  hexmake.NewStatusPrinter(),
		Metrics: recorder,
	}

	if conductor.Run(ctx, tasks) {
		return 0
	}
	return 1
}

// targetPaths wraps the command-line target arguments as Paths, failing
// with InvocationError per §6's "at least one target required" rule.
func targetPaths(args []string) ([]hexmake.Path, error) {
	if len(args) == 0 {
		return nil, hexmake.NewInvocationError("no targets named and no default target configured")
	}
	paths := make([]hexmake.Path, len(args))
	for i, a := range args {
		paths[i] = hexmake.NewPath(a)
	}
	return paths, nil
}

// guessParallelism mirrors the teacher's GuessParallelism in
// cmd/nin/ninja.go: default concurrency tracks the machine's CPU count.
func guessParallelism() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "usage: hexmake [options] [targets...]\n\n")
	fs.PrintDefaults()
}
