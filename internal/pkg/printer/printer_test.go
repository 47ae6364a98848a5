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

package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

func TestSetColorMode(t *testing.T) {
	old := color.NoColor
	t.Cleanup(func() { color.NoColor = old })

	for _, tc := range []struct {
		mode        string
		ok          bool
		wantNoColor bool
	}{
		{mode: "off", ok: true, wantNoColor: true},
		{mode: "on", ok: true, wantNoColor: false},
		{mode: "false", ok: true, wantNoColor: true},
		{mode: "true", ok: true, wantNoColor: false},
	} {
		if got := SetColorMode(tc.mode); got != tc.ok {
			t.Errorf("SetColorMode(%q) = %v, want %v", tc.mode, got, tc.ok)
		}
		if color.NoColor != tc.wantNoColor {
			t.Errorf("SetColorMode(%q) left NoColor = %v, want %v", tc.mode, color.NoColor, tc.wantNoColor)
		}
	}
	color.NoColor = true
	if SetColorMode("auto") != true || color.NoColor != true {
		t.Errorf("SetColorMode(auto) changed NoColor")
	}
	if SetColorMode("sometimes") {
		t.Errorf("SetColorMode(sometimes) = true, want false")
	}
}

func TestMessagesGoToStderr(t *testing.T) {
	oldErr, oldNoColor := color.Error, color.NoColor
	t.Cleanup(func() {
		color.Error = oldErr
		color.NoColor = oldNoColor
	})
	var buf bytes.Buffer
	color.Error = &buf
	color.NoColor = true

	Warning("flag \"-I\" at 1: empty path \"\" kept unchanged")
	Error("compiler probe failed")
	Info("resolving 2 files")

	want := "flag \"-I\" at 1: empty path \"\" kept unchanged\ncompiler probe failed\nresolving 2 files\n"
	if got := buf.String(); got != want {
		t.Errorf("printed %q, want %q", got, want)
	}
}

func TestStartFuncNoItems(t *testing.T) {
	oldErr := color.Error
	t.Cleanup(func() { color.Error = oldErr })
	color.Error = &bytes.Buffer{}

	advance, done := StartFunc("nothing to do", 0)
	advance(1)
	done()
}
