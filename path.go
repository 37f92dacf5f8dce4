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

import "strings"

// OutRoot is the reserved first path segment that marks an output artifact.
const OutRoot = "out"

// Path is an opaque, immutable path string. Two Paths are equal iff their
// text is equal.
type Path struct {
	text string
}

// NewPath wraps a raw path string. Paths are always forward-slash separated,
// matching the Hexmake spec file's on-disk representation.
func NewPath(text string) Path {
	return Path{text: text}
}

// String returns the raw path text.
func (p Path) String() string {
	return p.text
}

// IsOutput reports whether p names an output artifact: its text begins with
// the literal segment "out/". The bare string "out" is not an output path,
// since it has no trailing separator; neither is "output/..." since it does
// not match the reserved segment exactly.
func (p Path) IsOutput() bool {
	return strings.HasPrefix(p.text, OutRoot+"/")
}

// Child appends name to p with a separator, e.g. Child("out/.hex", "build3")
// yields "out/.hex/build3".
func (p Path) Child(name string) Path {
	if p.text == "" {
		return Path{text: name}
	}
	return Path{text: p.text + "/" + name}
}
