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

// Package rsp provides the ability to parse rsp files.
//
// An rsp file holds compiler arguments separated by whitespace, split with
// shell quoting rules within each line: a single or double quoted span is one
// argument with the quotes removed, and a backslash escapes the next
// character. Lines whose first non-blank character is '#' are comments.
package rsp

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
)

// Parse parses the given rsp file to return the list of arguments specified in the file,
// in order.
func Parse(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data))
}

// ParseString parses rsp file content.
func ParseString(content string) ([]string, error) {
	var res []string
	scan := bufio.NewScanner(strings.NewReader(content))
	scan.Buffer(nil, 1024*1024)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("failed to split %q: %w", line, err)
		}
		res = append(res, args...)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
