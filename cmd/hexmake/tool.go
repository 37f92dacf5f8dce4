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

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/hexmake-build/hexmake"
	"github.com/hexmake-build/hexmake/internal/hexlog"
)

// runTool dispatches a -t subcommand, mirroring the teacher's toolFunc/tool
// table in cmd/nin/ninja.go: each subtool gets the parsed Spec and Planner
// rather than reparsing anything itself.
func runTool(name string, spec *hexmake.Spec, planner *hexmake.Planner, args []string) int {
	switch name {
	case "list":
		return toolList(spec)
	case "clean":
		return toolClean()
	case "graph":
		return toolGraph(planner, args)
	default:
		hexlog.Error("unknown tool %q (choices: list, clean, graph)", name)
		return 2
	}
}

// toolList prints every output path any rule produces, one per line,
// sorted for stable output.
func toolList(spec *hexmake.Spec) int {
	var outputs []string
	for _, rule := range spec.Rules {
		for _, out := range rule.Outputs {
			outputs = append(outputs, out.String())
		}
	}
	sort.Strings(outputs)
	for _, o := range outputs {
		fmt.Println(o)
	}
	return 0
}

// toolClean removes the out/ tree entirely, including published outputs and
// the sandbox scratch space, so the next build starts from nothing.
func toolClean() int {
	if err := os.RemoveAll(hexmake.OutRoot); err != nil {
		hexlog.Error("cleaning %s: %v", hexmake.OutRoot, err)
		return 1
	}
	return 0
}

// toolGraph plans the named targets and writes the resulting graph as
// Graphviz dot to stdout.
func toolGraph(planner *hexmake.Planner, args []string) int {
	targets, err := targetPaths(args)
	if err != nil {
		hexlog.Error("hexmake -t graph requires at least one target")
		return 2
	}
	tasks, err := planner.Plan(targets)
	if err != nil {
		hexlog.Error("%v", err)
		return hexmake.ExitCode(err)
	}
	if err := hexmake.WriteDot(os.Stdout, tasks); err != nil {
		hexlog.Error("writing graph: %v", err)
		return 1
	}
	return 0
}
