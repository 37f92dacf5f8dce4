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
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotenv merges the key/value pairs from a .env file at path into the
// process environment, skipping any key already set. It is a no-op,
// returning nil, if no such file exists. This is purely a developer
// convenience for populating variables an Environ allow-list later reads;
// hexmake never requires a .env file to exist.
func LoadDotenv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return newError(InvocationError, "reading %s: %v", path, err)
	}
	for k, v := range vars {
		if _, set := os.LookupEnv(k); !set {
			os.Setenv(k, v)
		}
	}
	return nil
}

// EnvironDigest returns a short hex digest over the current values of the
// names in allowList, sorted for determinism. It is informational only —
// a convenience for a human diffing two runs, or a future cache
// implementation — and never gates or skips a rule's execution.
func EnvironDigest(allowList []string) string {
	names := append([]string(nil), allowList...)
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(os.Getenv(name)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// ResolveEnviron returns the current values of spec's Environ allow-list as
// NAME=value pairs, in declared order, for logging and for a future
// cache-key computation. It does not gate what a rule's commands can see —
// commands inherit the full parent environment regardless (see
// cmd_posix.go) — since the present implementation performs no environment
// scrubbing. Unset variables are omitted.
func ResolveEnviron(spec *Spec) []string {
	var pairs []string
	for _, name := range spec.Environ {
		if v, ok := os.LookupEnv(name); ok {
			pairs = append(pairs, strings.Join([]string{name, v}, "="))
		}
	}
	return pairs
}
