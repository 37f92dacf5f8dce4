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

import "fmt"

// Kind identifies one of the error classes from the error handling design,
// each mapped to an exit code by the CLI front-end.
type Kind int

const (
	// InvocationError covers a missing Hexmake file or an empty target list.
	InvocationError Kind = iota
	// SpecParseError covers malformed JSON or a spec failing structural
	// validation.
	SpecParseError
	// DuplicateOutput is raised by the planner when two rules claim the same
	// output path.
	DuplicateOutput
	// UnknownOutput is raised by the planner when a requested or depended-on
	// output path has no owning rule.
	UnknownOutput
	// CycleDetected is raised by the planner when a rule's outputs
	// transitively feed back into its own inputs.
	CycleDetected
	// MissingInput is raised by the executor when a declared input does not
	// exist on disk at stage time.
	MissingInput
	// CommandFailed is raised by the executor when a rule's command exits
	// non-zero.
	CommandFailed
	// MissingDeclaredOutput is raised by the executor when a declared output
	// was not produced inside the sandbox.
	MissingDeclaredOutput
)

func (k Kind) String() string {
	switch k {
	case InvocationError:
		return "InvocationError"
	case SpecParseError:
		return "SpecParseError"
	case DuplicateOutput:
		return "DuplicateOutput"
	case UnknownOutput:
		return "UnknownOutput"
	case CycleDetected:
		return "CycleDetected"
	case MissingInput:
		return "MissingInput"
	case CommandFailed:
		return "CommandFailed"
	case MissingDeclaredOutput:
		return "MissingDeclaredOutput"
	default:
		return "UnknownError"
	}
}

// Error is the typed error carried through planning and execution. It
// always names enough context (an output path, a rule, an exit code) to
// reproduce the diagnostics §7/§8 of the spec require.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewInvocationError builds an InvocationError, exported for the cmd/hexmake
// front end to report command-line-level mistakes (no targets, bad flags)
// with the same diagnostic shape as errors raised deeper in the package.
func NewInvocationError(format string, args ...interface{}) error {
	return newError(InvocationError, format, args...)
}

// ExitCode maps an error's Kind to the process exit code from §6 and the
// worked example in §8 scenario 6 (an UnknownOutput target exits 2, the
// same as a missing spec file): invocation, spec-loading, and planning
// failures — everything raised before any command has run — exit 2;
// failures raised once execution has begun (RuleExecutor's stage/run/
// publish steps) exit 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *Error
	if !asHexmakeError(err, &e) {
		return 1
	}
	switch e.Kind {
	case InvocationError, SpecParseError, DuplicateOutput, UnknownOutput, CycleDetected:
		return 2
	default:
		return 1
	}
}

func asHexmakeError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
