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
	"strings"

	"github.com/hexmake-build/hexmake/internal/hexlog"
)

// Task is the concrete TaskNode type planning and execution deal in: a
// vertex wrapping one Rule.
type Task = TaskNode[*Rule]

// visitMark tracks a rule's position in the recursion stack during
// planning, the same three-state walk the teacher's graph.go uses on
// Edge.mark_ (VisitNone/VisitInStack/VisitDone) to detect cycles without a
// separate pass over the graph.
type visitMark int

const (
	visitNone visitMark = iota
	visitInStack
	visitDone
)

// Planner turns a Spec and a list of requested target paths into the
// minimal set of Tasks needed to build them, wired with dependency edges.
type Planner struct {
	spec *Spec

	rulesByOutput map[string]*Rule
	taskForRule   map[*Rule]*Task
	order         []*Task

	marks map[*Rule]visitMark
	stack []Path
}

// NewPlanner builds the RulesByOutput index for spec, failing with
// DuplicateOutput if two rules claim the same output path.
func NewPlanner(spec *Spec) (*Planner, error) {
	p := &Planner{
		spec:          spec,
		rulesByOutput: make(map[string]*Rule),
		taskForRule:   make(map[*Rule]*Task),
		marks:         make(map[*Rule]visitMark),
	}
	for i := range spec.Rules {
		rule := &spec.Rules[i]
		for _, out := range rule.Outputs {
			if existing, ok := p.rulesByOutput[out.String()]; ok && existing != rule {
				return nil, newError(DuplicateOutput, "output %q is produced by more than one rule", out.String())
			}
			p.rulesByOutput[out.String()] = rule
		}
	}
	return p, nil
}

// Plan builds the minimal set of Tasks needed to produce targets, in the
// order their owning rules were first reached, per §4.3.
func (p *Planner) Plan(targets []Path) ([]*Task, error) {
	for _, t := range targets {
		if _, err := p.ensureTask(t); err != nil {
			return nil, err
		}
	}
	return p.order, nil
}

// ensureTask returns the Task that builds target, creating it (and
// recursing into its inputs) if necessary. It returns (nil, nil) for source
// paths, which contribute no node and no edge to the graph.
func (p *Planner) ensureTask(target Path) (*Task, error) {
	if !target.IsOutput() {
		hexlog.Explain("%q is a source file, no task needed", target.String())
		return nil, nil
	}

	rule, ok := p.rulesByOutput[target.String()]
	if !ok {
		return nil, p.unknownOutput(target)
	}

	if p.marks[rule] == visitInStack {
		return nil, p.cycleError(target)
	}

	if task, ok := p.taskForRule[rule]; ok {
		hexlog.Explain("%q already planned via another output of the same rule, reusing its task", target.String())
		return task, nil
	}

	hexlog.Explain("planning %q", target.String())
	task := NewTaskNode(rule)
	p.taskForRule[rule] = task
	p.order = append(p.order, task)

	p.marks[rule] = visitInStack
	p.stack = append(p.stack, target)

	for _, in := range rule.Inputs {
		dep, err := p.ensureTask(in)
		if err != nil {
			return nil, err
		}
		if dep != nil {
			task.AddDependency(dep)
		}
	}

	p.stack = p.stack[:len(p.stack)-1]
	p.marks[rule] = visitDone

	return task, nil
}

func (p *Planner) unknownOutput(target Path) error {
	candidates := make([]string, 0, len(p.rulesByOutput))
	for out := range p.rulesByOutput {
		candidates = append(candidates, out)
	}
	if hint := suggestClosest(target.String(), candidates); hint != "" {
		return newError(UnknownOutput, "no rule produces %q; did you mean %q?", target.String(), hint)
	}
	return newError(UnknownOutput, "no rule produces %q", target.String())
}

// cycleError composes a "a -> b -> a" style message, mirroring the
// teacher's VerifyDAG: it reports the cycle's start as the node that closes
// it, not as whichever sibling output of the starting edge triggered the
// walk.
func (p *Planner) cycleError(closing Path) error {
	rule := p.rulesByOutput[closing.String()]
	start := 0
	for start < len(p.stack) && p.rulesByOutput[p.stack[start].String()] != rule {
		start++
	}
	if start == len(p.stack) {
		start = 0
	}
	parts := make([]string, 0, len(p.stack)-start+1)
	parts = append(parts, closing.String())
	for _, n := range p.stack[start+1:] {
		parts = append(parts, n.String())
	}
	parts = append(parts, closing.String())
	return newError(CycleDetected, "dependency cycle: %s", strings.Join(parts, " -> "))
}
