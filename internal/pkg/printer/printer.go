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

// Package printer prints user-facing diagnostics of ccflags to stderr.
// Stdout is reserved for resolved flags.
package printer

import (
	"os"

	"github.com/fatih/color"
	log "github.com/golang/glog"
	"github.com/vardius/progress-go"
)

var (
	fatalColor   = color.New(color.FgMagenta)
	errorColor   = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

// SetColorMode sets the color mode; one of "on", "off", "auto".
// It returns false for an unknown mode.
func SetColorMode(mode string) bool {
	switch mode {
	case "off", "false":
		color.NoColor = true
	case "on", "true":
		color.NoColor = false
	case "auto":
	default:
		return false
	}
	return true
}

// StartFunc starts logging a function's progress. Returns a function
// to advance the progress bar, and a function to complete it.
func StartFunc(header string, count int) (func(int), func()) {
	Info(header)
	if count == 0 {
		return func(_ int) {}, func() {}
	}
	bar := progress.New(1, int64(count), progress.Options{
		Graph: ">",
	})
	bar.Start()
	return func(x int) {
			bar.Advance(int64(x))
		}, func() {
			if _, err := bar.Stop(); err != nil {
				log.Errorf("Failed to finish progress: %v", err)
			}
		}
}

// Fatal prints an error message and exits.
func Fatal(msg string) {
	fatalColor.Fprintf(color.Error, "%v\n", msg)
	log.Flush()
	os.Exit(1)
}

// Error prints an error message.
func Error(msg string) {
	errorColor.Fprintf(color.Error, "%v\n", msg)
}

// Warning prints a warning message.
func Warning(msg string) {
	warningColor.Fprintf(color.Error, "%v\n", msg)
}

// Info prints an info message.
func Info(msg string) {
	infoColor.Fprintf(color.Error, "%v\n", msg)
}
