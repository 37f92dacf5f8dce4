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
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"golang.org/x/sync/errgroup"
)

// copyTree mirrors src (a file or a directory) into dst, creating parent
// directories as needed. Directory entries are copied concurrently with an
// errgroup.Group, one goroutine per sibling entry, the same fan-out the
// teacher's manifest parser uses for independent subninja files.
func copyTree(ctx context.Context, src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if err := os.MkdirAll(dst, 0o777); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		g, ctx := errgroup.WithContext(ctx)
		for _, entry := range entries {
			entry := entry
			g.Go(func() error {
				return copyTree(ctx, filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name()))
			})
		}
		return g.Wait()
	}
	return copyFile(src, dst, info.Mode())
}

// copyFile copies one regular file, creating dst's parent directory first.
func copyFile(src, dst string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// publishFile places src (a file inside a sandbox) at dst under the real
// out/ tree, replacing anything already there. It prefers an atomic rename
// (via google/renameio, grounded on distr1-distri's go.mod) when src and
// dst share a filesystem, and falls back to a delete-then-copy when they
// don't — the destructive path the design notes flag as a hazard, kept
// only as the cross-device fallback rather than the common case.
func publishFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o777); err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	t, err := renameio.TempFile("", dst)
	if err != nil {
		return deleteThenCopy(src, dst, info.Mode())
	}
	defer t.Cleanup()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if _, err := io.Copy(t, in); err != nil {
		return err
	}
	if err := t.Chmod(info.Mode()); err != nil {
		return err
	}
	if err := t.CloseAtomicallyReplace(); err != nil {
		return deleteThenCopy(src, dst, info.Mode())
	}
	return nil
}

func deleteThenCopy(src, dst string, mode os.FileMode) error {
	if err := os.RemoveAll(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return copyFile(src, dst, mode)
}
