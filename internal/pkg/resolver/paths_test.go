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

//go:build !windows

package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMakeRelativePathsAbsolute(t *testing.T) {
	for _, tc := range []struct {
		name         string
		flags        []string
		wd           string
		want         []string
		wantWarnings []PathWarning
	}{
		{
			name:  "no path flags",
			flags: []string{"-Wall", "-Wextra", "-std=c++11", "-DERIS_TESTS", "foo.cc"},
			wd:    "/proj",
			want:  []string{"-Wall", "-Wextra", "-std=c++11", "-DERIS_TESTS", "foo.cc"},
		},
		{
			name:  "separated and joined sysroot",
			flags: []string{"-I", "include", "--sysroot=sys"},
			wd:    "/proj",
			want:  []string{"-I", "/proj/include", "--sysroot=/proj/sys"},
		},
		{
			name: "every prefix separated",
			flags: []string{
				"-isystem", "third_party",
				"-I", "src",
				"-iquote", "quoted",
				"--sysroot=", "sysroot",
			},
			wd: "/proj",
			want: []string{
				"-isystem", "/proj/third_party",
				"-I", "/proj/src",
				"-iquote", "/proj/quoted",
				"--sysroot=", "/proj/sysroot",
			},
		},
		{
			name:  "every prefix joined",
			flags: []string{"-isystemthird_party", "-Isrc", "-iquotequoted", "--sysroot=sysroot"},
			wd:    "/proj",
			want:  []string{"-isystem/proj/third_party", "-I/proj/src", "-iquote/proj/quoted", "--sysroot=/proj/sysroot"},
		},
		{
			name:  "dot and parent",
			flags: []string{"-I", ".", "-I../common"},
			wd:    "/proj/eris",
			want:  []string{"-I", "/proj/eris/.", "-I/proj/eris/../common"},
		},
		{
			name:  "symlink parent kept as written",
			flags: []string{"-Ilink/../inc", "-iquote", "a/./b"},
			wd:    "/proj",
			want:  []string{"-I/proj/link/../inc", "-iquote", "/proj/a/./b"},
		},
		{
			name:  "working directory with trailing separator",
			flags: []string{"-I", "include", "-Isrc"},
			wd:    "/proj/",
			want:  []string{"-I", "/proj/include", "-I/proj/src"},
		},
		{
			name:  "root working directory",
			flags: []string{"-I", "include"},
			wd:    "/",
			want:  []string{"-I", "/include"},
		},
		{
			name:  "absolute separated",
			flags: []string{"-I", "/usr/include/eigen3"},
			wd:    "/proj",
			want:  []string{"-I", "/usr/include/eigen3"},
			wantWarnings: []PathWarning{
				{Index: 1, Flag: "-I", Value: "/usr/include/eigen3", Reason: AlreadyAbsolute},
			},
		},
		{
			name:  "absolute joined",
			flags: []string{"-I/usr/include/", "--sysroot=/opt/sysroot"},
			wd:    "/proj",
			want:  []string{"-I/usr/include/", "--sysroot=/opt/sysroot"},
		},
		{
			name:  "empty value kept",
			flags: []string{"-I", "", "-Wall"},
			wd:    "/proj",
			want:  []string{"-I", "", "-Wall"},
			wantWarnings: []PathWarning{
				{Index: 1, Flag: "-I", Reason: EmptyPath},
			},
		},
		{
			name:  "trailing path flag",
			flags: []string{"-Wall", "-isystem"},
			wd:    "/proj",
			want:  []string{"-Wall", "-isystem"},
			wantWarnings: []PathWarning{
				{Index: 1, Flag: "-isystem", Reason: MissingPath},
			},
		},
		{
			name:  "value after path flag is always a path",
			flags: []string{"-I", "-DFOO", "-DBAR"},
			wd:    "/proj",
			want:  []string{"-I", "/proj/-DFOO", "-DBAR"},
		},
		{
			name:  "similar flags untouched",
			flags: []string{"-include", "config.h", "-isysroot", "sdk", "-iquoted"},
			wd:    "/proj",
			want:  []string{"-include", "config.h", "-isysroot", "sdk", "-iquote/proj/d"},
		},
		{
			name:  "duplicates preserved",
			flags: []string{"-I", "inc", "-I", "inc"},
			wd:    "/proj",
			want:  []string{"-I", "/proj/inc", "-I", "/proj/inc"},
		},
		{
			name:  "no working directory",
			flags: []string{"-I", "include", "--sysroot=sys"},
			want:  []string{"-I", "include", "--sysroot=sys"},
		},
		{
			name: "nil flags",
			wd:   "/proj",
			want: []string{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, gotWarnings := MakeRelativePathsAbsolute(tc.flags, tc.wd)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("MakeRelativePathsAbsolute(%q, %q) diff (-want +got):\n%s", tc.flags, tc.wd, diff)
			}
			if diff := cmp.Diff(tc.wantWarnings, gotWarnings); diff != "" {
				t.Errorf("MakeRelativePathsAbsolute(%q, %q) warnings diff (-want +got):\n%s", tc.flags, tc.wd, diff)
			}
		})
	}
}

func TestMakeRelativePathsAbsoluteIdempotent(t *testing.T) {
	flags := []string{
		"-Wall", "-I", ".", "-Iinclude", "-isystem", "third_party",
		"-iquote", "q", "--sysroot=sys", "--sysroot=", "other", "-DX=1",
	}
	once, _ := MakeRelativePathsAbsolute(flags, "/proj")
	twice, _ := MakeRelativePathsAbsolute(once, "/proj")
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("MakeRelativePathsAbsolute is not idempotent (-once +twice):\n%s", diff)
	}
	if len(once) != len(flags) {
		t.Errorf("MakeRelativePathsAbsolute(%q) returned %d flags, want %d", flags, len(once), len(flags))
	}
}

func TestMakeRelativePathsAbsoluteDoesNotModifyInput(t *testing.T) {
	flags := []string{"-I", "include"}
	MakeRelativePathsAbsolute(flags, "/proj")
	if diff := cmp.Diff([]string{"-I", "include"}, flags); diff != "" {
		t.Errorf("MakeRelativePathsAbsolute modified its input (-want +got):\n%s", diff)
	}
}

func TestWarningReasonString(t *testing.T) {
	for r, want := range map[WarningReason]string{
		EmptyPath:         "empty path",
		AlreadyAbsolute:   "already absolute",
		MissingPath:       "missing path",
		WarningReason(42): "WarningReason(42)",
	} {
		if got := r.String(); got != want {
			t.Errorf("WarningReason(%d).String() = %q, want %q", int(r), got, want)
		}
	}
}
