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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ccflags/ccflags/internal/pkg/pathtranslator"
	"github.com/ccflags/ccflags/internal/pkg/resolver"
	"github.com/ccflags/ccflags/internal/pkg/rsp"
)

// hostResponse is what a completion engine asks for: the flags, and whether
// it may reuse them for later requests.
type hostResponse struct {
	File    string   `json:"file,omitempty"`
	Flags   []string `json:"flags"`
	DoCache bool     `json:"do_cache"`
}

func writeResult(w io.Writer, format, file string, res *resolver.Result) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(hostResponse{File: file, Flags: res.Flags, DoCache: res.Cacheable})
	case "lines":
		for _, f := range res.Flags {
			if _, err := fmt.Fprintln(w, f); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

// loadBaseline returns the baseline flags and the working directory they are
// relative to. Flags come from flagsFile if set, else resolver.DefaultFlags,
// followed by extra. The working directory is wd if set, else the directory
// of flagsFile, else the current directory.
func loadBaseline(flagsFile, wd string, extra []string) ([]string, string, error) {
	flags := resolver.DefaultFlags
	if flagsFile != "" {
		var err error
		flags, err = rsp.Parse(flagsFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read flags file: %w", err)
		}
	}
	flags = append(append([]string(nil), flags...), extra...)

	switch {
	case wd != "":
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		wd = pathtranslator.AbsFromWorkingDir(cwd, wd)
	case flagsFile != "":
		dir, err := pathtranslator.ConfigDir(flagsFile)
		if err != nil {
			return nil, "", err
		}
		wd = dir
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		wd = cwd
	}
	return flags, wd, nil
}

// filesFromCwd makes the file arguments absolute against the current
// directory, where the shell expanded them.
func filesFromCwd(files []string) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	res := make([]string, len(files))
	for i, f := range files {
		res[i] = pathtranslator.AbsFromWorkingDir(cwd, f)
	}
	return res, nil
}
