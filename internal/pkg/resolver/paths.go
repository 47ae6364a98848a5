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

package resolver

import (
	"fmt"
	"path/filepath"

	"github.com/ccflags/ccflags/internal/pkg/args"
	"github.com/ccflags/ccflags/internal/pkg/pathtranslator"
)

// PathFlagPrefixes are the flags whose value is a filesystem path, either in
// the next argument (`-I dir`) or joined (`-Idir`, `--sysroot=dir`).
var PathFlagPrefixes = []string{"-isystem", "-I", "-iquote", "--sysroot="}

// WarningReason says why a path flag value was passed through unchanged.
type WarningReason int

const (
	// EmptyPath means the value after a path flag was empty.
	EmptyPath WarningReason = iota
	// AlreadyAbsolute means the value after a path flag was already absolute.
	AlreadyAbsolute
	// MissingPath means a path flag was the last argument.
	MissingPath
)

func (r WarningReason) String() string {
	switch r {
	case EmptyPath:
		return "empty path"
	case AlreadyAbsolute:
		return "already absolute"
	case MissingPath:
		return "missing path"
	}
	return fmt.Sprintf("WarningReason(%d)", int(r))
}

// PathWarning reports a path flag value that was left as is. It is never fatal.
type PathWarning struct {
	// Index is the position of the value in the flag list, or of the flag
	// itself for MissingPath.
	Index  int
	Flag   string
	Value  string
	Reason WarningReason
}

func (w PathWarning) String() string {
	return fmt.Sprintf("flag %q at %d: %v %q kept unchanged", w.Flag, w.Index, w.Reason, w.Value)
}

func pathFlagScanner(flags []string) *args.Scanner {
	s := &args.Scanner{
		Args:  flags,
		Flags: make(map[string]int, len(PathFlagPrefixes)),
	}
	for _, p := range PathFlagPrefixes {
		s.Flags[p] = 1
		s.Joined = append(s.Joined, args.PrefixOption{Prefix: p})
	}
	args.SortPrefixes(s.Joined)
	return s
}

// MakeRelativePathsAbsolute rewrites the paths of path flags in flags to be
// absolute, relative to workingDir. Relative paths are prefixed with
// workingDir as written, without cleaning. The result has the same length and
// order as flags. If workingDir is empty, flags are returned unchanged.
func MakeRelativePathsAbsolute(flags []string, workingDir string) ([]string, []PathWarning) {
	res := make([]string, 0, len(flags))
	if workingDir == "" {
		return append(res, flags...), nil
	}
	var warnings []PathWarning
	s := pathFlagScanner(flags)
	for s.HasNext() {
		r := s.NextResult()
		switch {
		case r.NormalizedKey == "" || (len(r.Values) == 0 && r.Missing == 0):
			res = append(res, r.Args...)
		case r.Missing > 0:
			res = append(res, r.Args...)
			warnings = append(warnings, PathWarning{Index: len(res) - 1, Flag: r.OriginalKey, Reason: MissingPath})
		case r.Joined:
			if filepath.IsAbs(r.Values[0]) {
				res = append(res, r.Args[0])
				continue
			}
			res = append(res, r.OriginalKey+pathtranslator.JoinWorkingDir(workingDir, r.Values[0]))
		default:
			res = append(res, r.Args[0])
			value := r.Values[0]
			switch {
			case value == "":
				warnings = append(warnings, PathWarning{Index: len(res), Flag: r.OriginalKey, Value: value, Reason: EmptyPath})
			case filepath.IsAbs(value):
				warnings = append(warnings, PathWarning{Index: len(res), Flag: r.OriginalKey, Value: value, Reason: AlreadyAbsolute})
			default:
				value = pathtranslator.JoinWorkingDir(workingDir, value)
			}
			res = append(res, value)
		}
	}
	return res, warnings
}
