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

//go:build !windows
// +build !windows

package hexmake

import (
	"context"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// newShellCmd builds the subshell that runs one declared command string,
// the way the teacher's createCmd does in subprocess_posix.go: always via a
// Bourne-compatible shell with -c, since the commands in a Hexmake rule may
// rely on shell redirection or globbing. No environment scrubbing is
// performed: leaving cmd.Env nil inherits the full parent environment,
// matching the present implementation's stated behavior — the spec's
// Environ allow-list is reserved for a future cache-key scheme, not for
// gating what a command can see.
func newShellCmd(ctx context.Context, dir, command string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Run each command in its own process group so that, should a future
	// revision choose to kill in-flight work on abort (see the design notes
	// on in-flight task survival), it can signal the whole group rather than
	// just the shell.
	cmd.SysProcAttr = &unix.SysProcAttr{Setpgid: true}
	return cmd
}
