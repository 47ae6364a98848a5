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

// Package toolchain discovers the implicit include search path of the native compiler.
//
// The compiler is asked to preprocess an empty C++ translation unit in verbose
// mode, and the directories it lists between "#include <...> search starts
// here:" and "End of search list" are turned into -isystem flags.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ccflags/ccflags/internal/pkg/subprocess"

	"github.com/bazelbuild/remote-apis-sdks/go/pkg/command"
	log "github.com/golang/glog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCompiler is the compiler probed when none is configured.
	DefaultCompiler = "clang"

	// DefaultTimeout bounds a single compiler probe.
	DefaultTimeout = 10 * time.Second
)

// Executor runs a command to completion and returns its stdout and stderr.
// A non-zero exit is reported as *exec.ExitError.
type Executor interface {
	Execute(ctx context.Context, cmd *command.Command) (string, string, error)
}

// InvocationError is returned when the compiler could not be launched, did not
// exit cleanly, timed out, or printed no include search list.
type InvocationError struct {
	// Args is the probe command line.
	Args []string
	// ExitCode is the compiler's exit code, or -1 if it did not run to
	// completion.
	ExitCode int
	// Output is the captured stdout followed by stderr.
	Output string
	// Err is the underlying cause.
	Err error
}

func (e *InvocationError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("compiler probe %q exited with code %d: %v", e.Args, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("compiler probe %q failed: %v", e.Args, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// ProbeArgs returns the command line that makes compiler print its include
// search path: verbose, preprocess only, C++, source read from stdin.
func ProbeArgs(compiler string) []string {
	return []string{compiler, "-v", "-E", "-x", "c++", "-"}
}

// IsystemFlags turns dirs into -isystem flag pairs, in order.
func IsystemFlags(dirs []string) []string {
	flags := make([]string, 0, 2*len(dirs))
	for _, d := range dirs {
		flags = append(flags, "-isystem", d)
	}
	return flags
}

// IncludeProber finds the system include directories of a compiler.
// It keeps no results between calls; concurrent probes of the same compiler
// share one subprocess.
type IncludeProber struct {
	// Executor runs the compiler. Defaults to subprocess.SystemExecutor.
	Executor Executor

	// Compiler is the compiler binary name or path. Defaults to DefaultCompiler.
	Compiler string

	// Timeout bounds each probe. Zero means DefaultTimeout, negative means no
	// timeout.
	Timeout time.Duration

	// Env is the compiler environment. Nil inherits the current process
	// environment.
	Env map[string]string

	group singleflight.Group
}

// DiscoverSystemIncludes returns "-isystem", dir pairs for every system include
// directory the compiler reports. Failures are *InvocationError.
func (p *IncludeProber) DiscoverSystemIncludes(ctx context.Context) ([]string, error) {
	dirs, err := p.SystemIncludeDirs(ctx)
	if err != nil {
		return nil, err
	}
	return IsystemFlags(dirs), nil
}

// SystemIncludeDirs returns the system include directories the compiler
// reports, in search order.
func (p *IncludeProber) SystemIncludeDirs(ctx context.Context) ([]string, error) {
	args := ProbeArgs(p.compiler())
	v, err, shared := p.group.Do(strings.Join(args, "\x00"), func() (interface{}, error) {
		return p.probe(ctx, args)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.V(2).Infof("Shared compiler probe %q", args)
	}
	return append([]string(nil), v.([]string)...), nil
}

func (p *IncludeProber) probe(ctx context.Context, args []string) ([]string, error) {
	ctx, cancel := maybeWithTimeout(ctx, p.timeout())
	defer cancel()

	start := time.Now()
	cmd := &command.Command{Args: args}
	if p.Env != nil {
		cmd.InputSpec = &command.InputSpec{EnvironmentVariables: p.Env}
	}
	stdout, stderr, err := p.executor().Execute(ctx, cmd)
	output := stdout + stderr
	if err != nil {
		ierr := &InvocationError{Args: args, ExitCode: -1, Output: output, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			ierr.ExitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			ierr.ExitCode = -1
			ierr.Err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, ierr
	}
	dirs, err := ParseSearchList(output)
	if err != nil {
		return nil, &InvocationError{Args: args, Output: output, Err: err}
	}
	log.V(1).Infof("Compiler probe %q found %d system include dirs in %v", args, len(dirs), time.Since(start))
	return dirs, nil
}

func (p *IncludeProber) executor() Executor {
	if p.Executor == nil {
		return subprocess.SystemExecutor{}
	}
	return p.Executor
}

func (p *IncludeProber) compiler() string {
	if p.Compiler == "" {
		return DefaultCompiler
	}
	return p.Compiler
}

func (p *IncludeProber) timeout() time.Duration {
	if p.Timeout == 0 {
		return DefaultTimeout
	}
	return p.Timeout
}

func maybeWithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
