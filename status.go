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
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Status is the Conductor's narrow view of a progress reporter, adapted
// from the teacher's Status interface in status.go. hexmake trims it to
// the events the Conductor actually raises.
type Status interface {
	PlanHasTotalTasks(total int)
	TaskStarted(rule *Rule)
	TaskFinished(rule *Rule, success bool)
	BuildFinished()
}

type noopStatus struct{}

func (noopStatus) PlanHasTotalTasks(int)   {}
func (noopStatus) TaskStarted(*Rule)       {}
func (noopStatus) TaskFinished(*Rule, bool) {}
func (noopStatus) BuildFinished()          {}

// StatusPrinter prints human-readable build progress to stdout, following
// the teacher's StatusPrinter/LinePrinter split: a single overwritten
// status line on a smart terminal, otherwise one line per started task plus
// a FAILED line per failed task. Terminal
// detection uses mattn/go-isatty instead of the teacher's hand-rolled
// ioctl/GetConsoleScreenBufferInfo calls.
type StatusPrinter struct {
	mu sync.Mutex

	smartTerminal bool

	total, started, finished, running int
}

// NewStatusPrinter builds a StatusPrinter, auto-detecting whether stdout is
// a smart (interactive) terminal.
func NewStatusPrinter() *StatusPrinter {
	return &StatusPrinter{
		smartTerminal: isatty.IsTerminal(os.Stdout.Fd()) && os.Getenv("TERM") != "dumb",
	}
}

func (s *StatusPrinter) PlanHasTotalTasks(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
}

func (s *StatusPrinter) TaskStarted(rule *Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started++
	s.running++
	s.printLocked(rule)
}

func (s *StatusPrinter) TaskFinished(rule *Rule, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished++
	s.running--
	if !success {
		s.printLine(fmt.Sprintf("FAILED: %s", strings.Join(outputNames(rule), " ")))
	}
}

func (s *StatusPrinter) BuildFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.smartTerminal {
		fmt.Println()
	}
}

func (s *StatusPrinter) printLocked(rule *Rule) {
	prefix := fmt.Sprintf("[%d/%d] ", s.finished, s.total)
	label := strings.Join(outputNames(rule), " ")
	if s.smartTerminal {
		fmt.Printf("\r%s%s\x1b[K", prefix, label)
	} else {
		s.printLine(prefix + label)
	}
}

func (s *StatusPrinter) printLine(line string) {
	if s.smartTerminal {
		fmt.Printf("\r\x1b[K%s\n", line)
	} else {
		fmt.Println(line)
	}
}

func outputNames(rule *Rule) []string {
	names := make([]string, len(rule.Outputs))
	for i, o := range rule.Outputs {
		names[i] = o.String()
	}
	return names
}
