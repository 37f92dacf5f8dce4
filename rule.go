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

// Rule is one build rule: a fixed set of outputs produced by running a
// sequence of shell commands against a fixed set of inputs. Rules are
// immutable once parsed; order of Outputs, Inputs, and Commands is
// significant (§3 of the spec) and preserved exactly as declared in the
// Hexmake file.
type Rule struct {
	Outputs  []Path
	Inputs   []Path
	Commands []string
}

// Spec is the parsed contents of a Hexmake build file.
type Spec struct {
	// Environ names environment variables whose values participate in a
	// future content-addressed cache key. Reserved: the executor does not
	// read it, and nothing consults it to decide whether to skip a rule;
	// cmd/hexmake only prints the resolved values under -v.
	Environ []string
	Rules   []Rule
}
