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

package pathtranslator

import (
	"os"
	"path/filepath"
	"testing"
)

// toAbs makes path to absolute path on any platform.
// "/foo/bar" is not absolute path on windows (missing "C:" etc)
func toAbs(t *testing.T, path string) string {
	t.Helper()
	absPath, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("Unable to get absolute path of %q: %v", path, err)
	}
	return absPath
}

func TestAbsFromWorkingDir(t *testing.T) {
	wd := toAbs(t, "/proj")
	tests := []struct {
		name string
		path string
		want string
	}{{
		name: "relative",
		path: "include",
		want: filepath.Join(wd, "include"),
	}, {
		name: "dot",
		path: ".",
		want: wd,
	}, {
		name: "parent",
		path: "../other/include",
		want: filepath.Join(filepath.Dir(wd), "other", "include"),
	}, {
		name: "absolute",
		path: toAbs(t, "/usr/include/eigen3"),
		want: toAbs(t, "/usr/include/eigen3"),
	}, {
		name: "absolute unclean",
		path: toAbs(t, "/usr/include") + string(filepath.Separator) + "..",
		want: toAbs(t, "/usr"),
	}, {
		name: "empty",
		path: "",
		want: "",
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := AbsFromWorkingDir(wd, test.path); got != test.want {
				t.Errorf("AbsFromWorkingDir(%q, %q) = %q, want %q", wd, test.path, got, test.want)
			}
		})
	}
}

func TestJoinWorkingDir(t *testing.T) {
	wd := toAbs(t, "/proj")
	sep := string(filepath.Separator)
	tests := []struct {
		name string
		wd   string
		path string
		want string
	}{{
		name: "relative",
		wd:   wd,
		path: "include",
		want: wd + sep + "include",
	}, {
		name: "dot kept",
		wd:   wd,
		path: ".",
		want: wd + sep + ".",
	}, {
		name: "parent kept",
		wd:   wd,
		path: "link" + sep + ".." + sep + "inc",
		want: wd + sep + "link" + sep + ".." + sep + "inc",
	}, {
		name: "trailing separator",
		wd:   wd + sep,
		path: "include",
		want: wd + sep + "include",
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := JoinWorkingDir(test.wd, test.path); got != test.want {
				t.Errorf("JoinWorkingDir(%q, %q) = %q, want %q", test.wd, test.path, got, test.want)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "flags.rsp")
	if err := os.WriteFile(cfg, []byte("-Wall\n"), 0644); err != nil {
		t.Fatalf("WriteFile(%q) failed: %v", cfg, err)
	}
	got, err := ConfigDir(cfg)
	if err != nil {
		t.Fatalf("ConfigDir(%q) failed: %v", cfg, err)
	}
	if got != dir {
		t.Errorf("ConfigDir(%q) = %q, want %q", cfg, got, dir)
	}
}

func TestConfigDirRelative(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	got, err := ConfigDir("flags.rsp")
	if err != nil {
		t.Fatalf("ConfigDir(flags.rsp) failed: %v", err)
	}
	if got != cwd {
		t.Errorf("ConfigDir(flags.rsp) = %q, want %q", got, cwd)
	}
}
