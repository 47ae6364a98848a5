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

// Package cfgflag parses flags that can also be set in environment variables
// or in a configuration file.
package cfgflag

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	log "github.com/golang/glog"
)

// EnvPrefixes are the environment variable prefixes checked for a flag, in
// order of precedence.
var EnvPrefixes = []string{"CCFLAGS_", "FLAG_"}

var (
	rgx = regexp.MustCompile(`[\s=]`)
)

// Parse parses the command line into flag.CommandLine. A flag may also be set
// with a CCFLAGS_ prefixed environment variable, otherwise a FLAG_ prefixed
// one. If the flag 'cfg' names a file, flags defined in that file that are not
// already set are set from it. Command line beats environment, environment
// beats the file.
func Parse() {
	if flag.Parsed() {
		return
	}
	if err := ParseFlagSet(flag.CommandLine, os.Args[1:]); err != nil {
		log.Exitf("%v", err)
	}
}

// ParseFlagSet is Parse for fs and arguments args. It defines the 'cfg' flag
// on fs if it is not defined yet.
func ParseFlagSet(fs *flag.FlagSet, args []string) error {
	var cfgFile *string
	if f := fs.Lookup("cfg"); f == nil {
		cfgFile = fs.String("cfg", "", "Optional configuration file containing command-line argument settings")
	}
	ParseFromEnv(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg := ""
	if cfgFile != nil {
		cfg = *cfgFile
	} else {
		cfg = fs.Lookup("cfg").Value.String()
	}
	if cfg == "" {
		return nil
	}
	cfgMap, err := parseFromFile(cfg)
	if err != nil {
		return fmt.Errorf("failed reading config file %v: %w", cfg, err)
	}
	// Remove keys from the map that are already set.
	fs.Visit(func(f *flag.Flag) {
		delete(cfgMap, f.Name)
	})
	for k, v := range cfgMap {
		if err := fs.Set(k, v); err != nil {
			log.Warningf("Failed to set flag %v to %q from %v: %v", k, v, cfg, err)
		}
	}
	return nil
}

// parseFromFile parses flags which are defined in a configuration file. The file format is a
// single argument per line. For arguments assigning values, they should be separated by '=' or
// whitespace.
// Prefixed dashes (single or double) should not be included, but will be removed if they are.
// Returns a map for the contents of the configuration file.
func parseFromFile(cfg string) (map[string]string, error) {
	f, err := os.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfgFlags := make(map[string]string)
	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		splits := rgx.Split(line, 2)
		splits[0] = strings.TrimPrefix(strings.TrimPrefix(splits[0], "-"), "-")
		if len(splits) == 1 {
			cfgFlags[splits[0]] = "true"
		} else {
			cfgFlags[splits[0]] = splits[1]
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return cfgFlags, nil
}

// ParseFromEnv sets flags of fs from environment variables named with one of
// EnvPrefixes followed by the flag name.
func ParseFromEnv(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		for _, prefix := range EnvPrefixes {
			if v, ok := os.LookupEnv(prefix + f.Name); ok {
				if err := fs.Set(f.Name, v); err != nil {
					log.Warningf("Failed to set flag %v from $%s%s=%q: %v", f.Name, prefix, f.Name, v, err)
				}
				return
			}
		}
	})
}

// LogAllFlags logs the current values of all flags.
func LogAllFlags(verbosity log.Level) {
	var cmd []string
	flag.VisitAll(func(f *flag.Flag) {
		cmd = append(cmd, fmt.Sprintf("--%v=%v", f.Name, f.Value))
	})
	log.V(verbosity).Infof("Command line flags:\n%s", strings.Join(cmd, " \\\n"))
}
