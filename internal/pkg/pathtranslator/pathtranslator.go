// Copyright 2023 Google LLC
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

// Package pathtranslator provides path translation functions.
package pathtranslator

import (
	"os"
	"path/filepath"
	"strings"
)

// AbsFromWorkingDir converts p to an absolute path. A relative p is joined
// onto workingDir; an absolute p is only cleaned. It returns empty string if p
// is empty.
// Output path is operating system defined file path.
func AbsFromWorkingDir(workingDir, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workingDir, p)
}

// JoinWorkingDir prefixes the relative path p with workingDir and a
// separator. Unlike AbsFromWorkingDir the result is not cleaned: "." and ".."
// segments are kept as written, since the compiler resolves ".." after
// following symlinks.
func JoinWorkingDir(workingDir, p string) string {
	return strings.TrimSuffix(workingDir, string(os.PathSeparator)) + string(os.PathSeparator) + p
}

// ConfigDir returns the absolute directory containing the file at path.
// A relative path is resolved against the process working directory.
func ConfigDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Dir(abs), nil
}
