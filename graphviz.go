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
	"fmt"
	"io"
	"strings"
)

// WriteDot renders tasks as a Graphviz "dot" graph, one node per rule and
// one edge per dependency, adapted from the teacher's graphviz.go (which
// walked Edge/Node pairs the same way over a build_log). Node labels are the
// rule's declared outputs, joined by a newline when there is more than one.
func WriteDot(w io.Writer, tasks []*Task) error {
	if _, err := fmt.Fprintln(w, "digraph hexmake {"); err != nil {
		return err
	}
	fmt.Fprintln(w, `  rankdir="LR";`)
	fmt.Fprintln(w, `  node [fontsize=10, shape=box, style=filled, fillcolor="#f0f0f0"];`)

	ids := make(map[*Task]string, len(tasks))
	for i, t := range tasks {
		ids[t] = fmt.Sprintf("n%d", i)
	}

	for _, t := range tasks {
		label := strings.Join(outputNames(t.Payload), "\n")
		fmt.Fprintf(w, "  %s [label=%q];\n", ids[t], label)
	}
	for _, t := range tasks {
		for _, dep := range t.Dependencies() {
			fmt.Fprintf(w, "  %s -> %s;\n", ids[dep], ids[t])
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
