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

// Package hexlog holds the handful of stderr/stdout diagnostic helpers used
// across hexmake. It deliberately mirrors the teacher's plain printf-style
// logging rather than pulling in a structured logging library: a build tool
// that prints to a terminal shares the same needs as the teacher's
// infof/warningf/errorf/fatalf quartet.
package hexlog

import (
	"fmt"
	"os"
	"sync/atomic"
)

// explaining toggles the Explain() verbose trail, set by -v/--verbose.
var explaining atomic.Bool

// SetExplaining turns the Explain() output on or off for the process.
func SetExplaining(on bool) {
	explaining.Store(on)
}

// Info prints an informational message to stdout, prefixed like the
// teacher's infof.
func Info(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "hexmake: "+format+"\n", args...)
}

// Warning prints a warning message to stderr.
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "hexmake: warning: "+format+"\n", args...)
}

// Error prints an error message to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "hexmake: error: "+format+"\n", args...)
}

// Fatal prints an error message to stderr and exits the process with status
// 2, matching the InvocationError exit code from the CLI contract.
func Fatal(format string, args ...interface{}) {
	Error(format, args...)
	os.Exit(2)
}

// Explain prints a verbose "why" diagnostic when explaining is enabled, the
// same role as the teacher's EXPLAIN() macro used by the dependency scan.
func Explain(format string, args ...interface{}) {
	if explaining.Load() {
		fmt.Fprintf(os.Stderr, "hexmake explain: "+format+"\n", args...)
	}
}
