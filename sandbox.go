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
	"path/filepath"
	"sync/atomic"
)

// SandboxRoot is the fixed scratch directory, relative to the real
// workspace root, that holds one build directory per dispatched task.
const SandboxRoot = OutRoot + "/.hex"

// SandboxManager hands out fresh, uniquely-numbered build directories under
// out/.hex/ and wipes that tree once at the start of a run.
type SandboxManager struct {
	root   string // absolute path to the real workspace root
	nextID atomic.Int64
}

// NewSandboxManager returns a manager rooted at workspaceRoot.
func NewSandboxManager(workspaceRoot string) *SandboxManager {
	return &SandboxManager{root: workspaceRoot}
}

// scratchDir is the absolute path to out/.hex.
func (m *SandboxManager) scratchDir() string {
	return filepath.Join(m.root, filepath.FromSlash(SandboxRoot))
}

// Clean recursively deletes out/.hex and recreates it empty. Called exactly
// once before a run begins.
func (m *SandboxManager) Clean() error {
	dir := m.scratchDir()
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("hexmake: cleaning %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return fmt.Errorf("hexmake: recreating %s: %w", dir, err)
	}
	m.nextID.Store(0)
	return nil
}

// MakeBuildDir atomically allocates the next build directory, creates it,
// and returns its absolute path. Two concurrent calls always return two
// distinct directories.
func (m *SandboxManager) MakeBuildDir() (string, error) {
	id := m.nextID.Add(1) - 1
	dir := filepath.Join(m.scratchDir(), fmt.Sprintf("build%d", id))
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return "", fmt.Errorf("hexmake: allocating sandbox %s: %w", dir, err)
	}
	return dir, nil
}
