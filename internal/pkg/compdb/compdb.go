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

// Package compdb writes resolved flags as a clang compilation database
// (compile_commands.json).
package compdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ccflags/ccflags/internal/pkg/pathtranslator"
	"github.com/ccflags/ccflags/internal/pkg/resolver"

	log "github.com/golang/glog"
	"github.com/google/renameio"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism is the number of files resolved at once by Build.
const DefaultParallelism = 8

// Entry is one compile_commands.json entry.
type Entry struct {
	Directory string   `json:"directory"`
	Arguments []string `json:"arguments"`
	File      string   `json:"file"`
}

// FlagsResolver resolves the flags of a file.
type FlagsResolver interface {
	FlagsForFile(ctx context.Context, filePath string) (*resolver.Result, error)
}

// Options configures Build.
type Options struct {
	// Compiler is argv[0] of every entry.
	Compiler string
	// Directory is the entries' working directory. Relative files are
	// resolved against it.
	Directory string
	// Parallelism bounds concurrent resolutions. Zero means DefaultParallelism.
	Parallelism int
	// Advance, if set, is called with 1 after each file is resolved.
	Advance func(int)
}

// Build resolves flags for files and returns one entry per file, in the
// order of files. It fails on the first resolution error.
func Build(ctx context.Context, r FlagsResolver, files []string, opts Options) ([]Entry, error) {
	entries := make([]Entry, len(files))
	limit := opts.Parallelism
	if limit <= 0 {
		limit = DefaultParallelism
	}
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			file := pathtranslator.AbsFromWorkingDir(opts.Directory, f)
			res, err := r.FlagsForFile(ctx, file)
			if err != nil {
				return fmt.Errorf("resolving flags for %q: %w", f, err)
			}
			args := make([]string, 0, len(res.Flags)+2)
			args = append(args, opts.Compiler)
			args = append(args, res.Flags...)
			args = append(args, file)
			entries[i] = Entry{Directory: opts.Directory, Arguments: args, File: file}
			if opts.Advance != nil {
				mu.Lock()
				opts.Advance(1)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Write atomically replaces path with entries encoded as a compilation
// database.
func Write(path string, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	f, err := renameio.TempFile("", path)
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %v: %w", path, err)
	}
	defer f.Cleanup()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to write %v: %w", path, err)
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("failed to replace %v: %w", path, err)
	}
	log.V(1).Infof("Wrote %d entries to %v", len(entries), path)
	return nil
}
