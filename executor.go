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
	"os"
	"path/filepath"

	"github.com/hexmake-build/hexmake/internal/hexlog"
)

// RuleExecutor runs one Rule to completion inside a fresh sandbox: it
// stages inputs, prepares output parent directories, runs the rule's
// commands sequentially, and publishes outputs back to the real out/ tree.
type RuleExecutor struct {
	Sandboxes *SandboxManager
	// WorkspaceRoot is the real directory inputs resolve against and
	// outputs publish into.
	WorkspaceRoot string
}

// Execute runs rule per §4.5 and returns the sandbox directory it used
// (preserved on disk regardless of outcome, per the spec's deliberate
// retain-for-debugging policy) along with any error.
func (e *RuleExecutor) Execute(ctx context.Context, rule *Rule) (sandboxDir string, err error) {
	sandboxDir, err = e.Sandboxes.MakeBuildDir()
	if err != nil {
		return "", err
	}

	if err := e.stageInputs(ctx, rule, sandboxDir); err != nil {
		return sandboxDir, err
	}
	if err := e.prepareOutputParents(rule, sandboxDir); err != nil {
		return sandboxDir, err
	}
	if err := e.runCommands(ctx, rule, sandboxDir); err != nil {
		return sandboxDir, err
	}
	if err := e.publishOutputs(rule, sandboxDir); err != nil {
		return sandboxDir, err
	}
	return sandboxDir, nil
}

// stageInputs copies every declared input into the sandbox, mirroring its
// relative path. Directory inputs are copied recursively, verbatim.
func (e *RuleExecutor) stageInputs(ctx context.Context, rule *Rule, sandboxDir string) error {
	for _, in := range rule.Inputs {
		src := filepath.Join(e.WorkspaceRoot, filepath.FromSlash(in.String()))
		if _, statErr := os.Stat(src); statErr != nil {
			return newError(MissingInput, "input %q does not exist (%v)", in.String(), statErr)
		}
		dst := filepath.Join(sandboxDir, filepath.FromSlash(in.String()))
		if err := copyTree(ctx, src, dst); err != nil {
			return newError(MissingInput, "staging input %q: %v", in.String(), err)
		}
	}
	return nil
}

// prepareOutputParents creates, under the sandbox, the parent directory of
// every declared output so commands can write to $out-style paths without
// mkdir -p of their own.
func (e *RuleExecutor) prepareOutputParents(rule *Rule, sandboxDir string) error {
	for _, out := range rule.Outputs {
		parent := filepath.Dir(filepath.Join(sandboxDir, filepath.FromSlash(out.String())))
		if err := os.MkdirAll(parent, 0o777); err != nil {
			return fmt.Errorf("hexmake: preparing output directory for %q: %w", out.String(), err)
		}
	}
	return nil
}

// runCommands runs rule's commands in declared order inside the sandbox. A
// command is echoed to stdout before it runs, matching the spec's
// user-visible diagnostics; the first non-zero exit aborts the rule
// without running the remaining commands.
func (e *RuleExecutor) runCommands(ctx context.Context, rule *Rule, sandboxDir string) error {
	for _, command := range rule.Commands {
		fmt.Println(command)
		cmd := newShellCmd(ctx, sandboxDir, command)
		if err := cmd.Run(); err != nil {
			exitCode := -1
			if exitErr, ok := err.(interface{ ExitCode() int }); ok {
				exitCode = exitErr.ExitCode()
			}
			hexlog.Error("command failed (exit %d), sandbox retained at %s", exitCode, sandboxDir)
			return newError(CommandFailed, "command %q exited %d (sandbox: %s)", command, exitCode, sandboxDir)
		}
	}
	return nil
}

// publishOutputs copies every declared output from the sandbox to its real
// destination under out/, in declared order. Outputs are always single
// files, never directories.
func (e *RuleExecutor) publishOutputs(rule *Rule, sandboxDir string) error {
	for _, out := range rule.Outputs {
		src := filepath.Join(sandboxDir, filepath.FromSlash(out.String()))
		if _, err := os.Stat(src); err != nil {
			return newError(MissingDeclaredOutput, "declared output %q was not produced (%v)", out.String(), err)
		}
		dst := filepath.Join(e.WorkspaceRoot, filepath.FromSlash(out.String()))
		if err := publishFile(src, dst); err != nil {
			return newError(MissingDeclaredOutput, "publishing output %q: %v", out.String(), err)
		}
	}
	return nil
}
