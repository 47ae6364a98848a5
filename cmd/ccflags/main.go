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

// Binary ccflags prints the compiler flags a completion engine needs to parse
// the C++ files of a project.
//
// The flags are the project's baseline flags, with relative include paths made
// absolute, followed by the system include directories of the compiler.
//
//	$ ccflags --flags_file=path/to/project/.ccflags src/main.cc
//	{"file":"src/main.cc","flags":["-Wall",...,"-isystem","/usr/include"],"do_cache":true}
//
//	$ ccflags --flags_file=.ccflags --compdb=compile_commands.json src/*.cc
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ccflags/ccflags/internal/pkg/cfgflag"
	"github.com/ccflags/ccflags/internal/pkg/compdb"
	"github.com/ccflags/ccflags/internal/pkg/printer"
	"github.com/ccflags/ccflags/internal/pkg/resolver"
	"github.com/ccflags/ccflags/internal/pkg/toolchain"
	"github.com/ccflags/ccflags/pkg/version"

	"github.com/bazelbuild/remote-apis-sdks/go/pkg/moreflag"
	log "github.com/golang/glog"
)

var (
	extraFlags   []string
	flagsFile    = flag.String("flags_file", "", "Response file with the baseline compiler flags. If empty, a built-in baseline is used.")
	workingDir   = flag.String("working_dir", "", "Directory relative paths in the baseline flags are resolved against. Defaults to the directory of --flags_file, or the current directory.")
	compiler     = flag.String("compiler", toolchain.DefaultCompiler, "Compiler probed for its system include directories.")
	probeTimeout = flag.Duration("probe_timeout", toolchain.DefaultTimeout, "Maximum duration of the compiler probe. Zero or negative disables the timeout.")
	strictProbe  = flag.Bool("strict_probe", false, "Fail if the compiler probe fails instead of printing the baseline flags alone.")
	noProbe      = flag.Bool("no_probe", false, "Do not probe the compiler for system include directories.")
	format       = flag.String("format", "json", "Output format; one of (json, lines).")
	compdbPath   = flag.String("compdb", "", "If set, write a compile_commands.json for the given files to this path instead of printing flags. Relative files are resolved against the current directory.")
	parallelism  = flag.Int("compdb_parallelism", compdb.DefaultParallelism, "Number of files resolved concurrently for --compdb.")
	colorize     = flag.String("color", "auto", "Control the output color mode; one of (off, on, auto)")
)

func main() {
	defer log.Flush()
	flag.Var((*moreflag.StringListValue)(&extraFlags), "extra_flag", "Comma-separated flags appended to the baseline flags.")
	version.PrintAndExitOnVersionFlag(true)
	cfgflag.LogAllFlags(1)

	if !printer.SetColorMode(strings.ToLower(*colorize)) {
		printer.Fatal(fmt.Sprintf("Invalid --color mode: %v", *colorize))
	}
	if *format != "json" && *format != "lines" {
		printer.Fatal(fmt.Sprintf("Invalid --format: %v", *format))
	}

	baseline, wd, err := loadBaseline(*flagsFile, *workingDir, extraFlags)
	if err != nil {
		printer.Fatal(err.Error())
	}
	var includes resolver.IncludeDiscoverer
	if !*noProbe {
		timeout := *probeTimeout
		if timeout <= 0 {
			timeout = -1
		}
		includes = &toolchain.IncludeProber{Compiler: *compiler, Timeout: timeout}
	}
	r := resolver.New(resolver.Config{
		Flags:            baseline,
		WorkingDirectory: wd,
		Strict:           *strictProbe,
	}, includes)

	ctx := context.Background()
	files := flag.Args()
	if *compdbPath != "" {
		if err := writeCompdb(ctx, r, *compiler, wd, files); err != nil {
			printer.Fatal(err.Error())
		}
		return
	}
	if len(files) == 0 {
		files = []string{""}
	}
	failed := false
	for _, f := range files {
		res, err := r.FlagsForFile(ctx, f)
		if err != nil {
			printer.Error(fmt.Sprintf("Failed to resolve flags for %q: %v", f, err))
			failed = true
			continue
		}
		reportDiagnostics(res)
		if err := writeResult(os.Stdout, *format, f, res); err != nil {
			printer.Fatal(fmt.Sprintf("Failed to write flags: %v", err))
		}
	}
	if failed {
		log.Flush()
		os.Exit(1)
	}
}

func writeCompdb(ctx context.Context, r *resolver.Resolver, compiler, wd string, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("--compdb needs at least one file")
	}
	files, err := filesFromCwd(files)
	if err != nil {
		return err
	}
	advance, done := printer.StartFunc(fmt.Sprintf("Resolving flags for %d files...", len(files)), len(files))
	entries, err := compdb.Build(ctx, r, files, compdb.Options{
		Compiler:    compiler,
		Directory:   wd,
		Parallelism: *parallelism,
		Advance:     advance,
	})
	done()
	if err != nil {
		return err
	}
	if err := compdb.Write(*compdbPath, entries); err != nil {
		return err
	}
	printer.Info(fmt.Sprintf("Wrote %d entries to %v", len(entries), *compdbPath))
	return nil
}

func reportDiagnostics(res *resolver.Result) {
	for _, w := range res.Warnings {
		if w.Reason != resolver.AlreadyAbsolute {
			printer.Warning(w.String())
		}
	}
	if res.SystemIncludesMissing {
		printer.Warning("System include directories are missing; the compiler probe failed (see logs).")
	}
}
