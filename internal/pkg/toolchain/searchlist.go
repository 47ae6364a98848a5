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

package toolchain

import (
	"errors"
	"regexp"
	"strings"
)

const frameworkMarker = "(framework directory)"

var (
	// ErrNoSearchList is returned when compiler output lacks the include
	// search list markers.
	ErrNoSearchList = errors.New("no #include <...> search list in compiler output")

	searchListRe = regexp.MustCompile(`(?s)#include <\.\.\.> search starts here:(.*?)End of search list`)
)

// ParseSearchList extracts the "#include <...>" search directories from the
// verbose output of a gcc or clang preprocessor run. Blank lines and macOS
// framework directories are skipped.
func ParseSearchList(output string) ([]string, error) {
	m := searchListRe.FindStringSubmatch(output)
	if m == nil {
		return nil, ErrNoSearchList
	}
	var dirs []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, frameworkMarker) {
			continue
		}
		dirs = append(dirs, line)
	}
	return dirs, nil
}
