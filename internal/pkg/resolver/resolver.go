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

// Package resolver computes the compiler flags a completion engine needs to
// parse a C++ file of a project.
//
// The result is the project's baseline flags with relative include, quote,
// system and sysroot paths made absolute, followed by the compiler's own
// system include directories as -isystem flags.
package resolver

import (
	"context"
	"errors"

	"github.com/ccflags/ccflags/internal/pkg/toolchain"

	log "github.com/golang/glog"
	"github.com/google/uuid"
)

// DefaultFlags is the baseline used when no flags are configured.
var DefaultFlags = []string{
	"-Wall",
	"-Wextra",
	"-std=c++11",
	"-I", ".",
	"-I", "/usr/include/eigen3",
	"-DERIS_TESTS",
}

// IncludeDiscoverer finds the compiler's system include flags.
type IncludeDiscoverer interface {
	DiscoverSystemIncludes(ctx context.Context) ([]string, error)
}

// Config is the static configuration of a Resolver.
type Config struct {
	// Flags is the baseline flag list.
	Flags []string

	// WorkingDirectory is the absolute directory relative paths in Flags are
	// resolved against. Empty disables path rewriting.
	WorkingDirectory string

	// Strict makes a failed compiler probe an error instead of falling back to
	// the baseline flags alone.
	Strict bool
}

// Result is the answer to a flags request.
type Result struct {
	// Flags is the final flag list.
	Flags []string

	// Cacheable tells the caller it may reuse Flags for later requests.
	// It is false when the system includes could not be discovered.
	Cacheable bool

	// SystemIncludesMissing is true when the compiler probe failed and Flags
	// holds only the baseline.
	SystemIncludesMissing bool

	// Warnings lists path flag values kept unchanged.
	Warnings []PathWarning
}

// Resolver resolves flags for files of one project. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	cfg      Config
	includes IncludeDiscoverer
}

// New returns a Resolver for cfg. A nil includes discovers nothing.
func New(cfg Config, includes IncludeDiscoverer) *Resolver {
	cfg.Flags = append([]string(nil), cfg.Flags...)
	return &Resolver{cfg: cfg, includes: includes}
}

// FlagsForFile returns the flags for filePath. The flags do not depend on
// filePath.
//
// If the compiler probe fails with *toolchain.InvocationError and the
// resolver is not strict, the baseline flags are returned with
// SystemIncludesMissing set and Cacheable cleared.
func (r *Resolver) FlagsForFile(ctx context.Context, filePath string) (*Result, error) {
	id := uuid.New().String()
	log.V(1).Infof("%s: resolving flags for %q in %q", id, filePath, r.cfg.WorkingDirectory)

	flags, warnings := MakeRelativePathsAbsolute(r.cfg.Flags, r.cfg.WorkingDirectory)
	for _, w := range warnings {
		if w.Reason == AlreadyAbsolute {
			log.V(1).Infof("%s: %v", id, w)
			continue
		}
		log.Warningf("%s: %v", id, w)
	}
	res := &Result{Flags: flags, Cacheable: true, Warnings: warnings}
	if r.includes == nil {
		return res, nil
	}

	includes, err := r.includes.DiscoverSystemIncludes(ctx)
	if err != nil {
		var ierr *toolchain.InvocationError
		if r.cfg.Strict || ctx.Err() != nil || !errors.As(err, &ierr) {
			return nil, err
		}
		log.Warningf("%s: continuing without system includes: %v\n%s", id, err, ierr.Output)
		res.Cacheable = false
		res.SystemIncludesMissing = true
		return res, nil
	}
	res.Flags = append(res.Flags, includes...)
	log.V(1).Infof("%s: %d flags (%d from the compiler)", id, len(res.Flags), len(includes))
	return res, nil
}

// ResolveFlags returns staticFlags with relative paths resolved against
// workingDirectory, followed by the system include flags from includes.
// Unlike Resolver.FlagsForFile it returns probe failures to the caller.
func ResolveFlags(ctx context.Context, filePath string, staticFlags []string, workingDirectory string, includes IncludeDiscoverer) ([]string, error) {
	r := New(Config{Flags: staticFlags, WorkingDirectory: workingDirectory, Strict: true}, includes)
	res, err := r.FlagsForFile(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return res.Flags, nil
}
