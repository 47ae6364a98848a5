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

// Package args scans compiler command line arguments.
package args

import (
	"sort"
	"strings"
)

// Scanner scans command line arguments.
// it scans args and gets (flag, args, values) in each Next call.
//
// for `-flagname`, it is recognized as flag by default,
// and it returns ("-flagname", ["-flagname"], nil).
//
// for `-flagnameflagvalue`, need to set "-flagname" in Joined,
// and it returns ("-flagname", ["-flagnameflagvalue"], ["flagvalue"]).
//
// for `-flagname flagvalue`, need to set Flags["-flagname"] = 1,
// and it returns ("-flagname", ["-flagname", "flagvalue"], ["flagvalue"]).
// If the flag is the last argument, the value is missing and
// it returns ("-flagname", ["-flagname"], nil).
//
// for non-flag "parameter", it returns ("", ["parameter"], ["parameter"]).
//
// if "-flagname" is used for both `-flagnameflagvalue` and
// `-flagname flagvalue`, need to set it both in Joined and Flags.
type Scanner struct {
	// Args is remaining arguments.
	Args []string

	// Flags are map keyed by -flag and number of argments for the flag.
	// The flag requires additional value from args if value > 0.
	// The flag doesn't require additional value from args if value == 0.
	Flags map[string]int

	// Joined are prefixes of flag that has value in the same arg.
	// Use SortPrefixes to keep them in reverse lexicographic order.
	Joined []PrefixOption

	// Normalized maps a flag to its canonical spelling.
	Normalized map[string]string
}

// PrefixOption is option for joined flags.
type PrefixOption struct {
	Prefix  string
	NumArgs int
}

// NextResult is a result of Scanner's NextResult operation.
type NextResult struct {
	Args          []string
	NormalizedKey string
	OriginalKey   string
	Values        []string
	Joined        bool
	// Missing is the number of values the flag asked for that were not
	// present because the arguments ran out.
	Missing int
}

// SortPrefixes sorts prefixes in reverse lexicographic order so a longer
// prefix is tried before a shorter one it starts with.
func SortPrefixes(prefixes []PrefixOption) {
	sort.Slice(prefixes, func(i, j int) bool {
		return prefixes[i].Prefix > prefixes[j].Prefix
	})
}

// HasNext returns true if there is more args to process.
func (s *Scanner) HasNext() bool {
	return len(s.Args) > 0
}

// NextResult returns next flag.
// NormalizedKey is normalized flag,
// or empty string if not started with "-".
// OriginalKey is a key before the normalization.
// Args are consumed arguments.
// Values are flag value if flag needs value (next arg in args) or
// Joined (rest after prefix in the arg).
func (s *Scanner) NextResult() *NextResult {
	flag := s.Args[0]
	normalizedFlag := s.normalizedFlag(flag)
	if numArgs, ok := s.Flags[normalizedFlag]; ok {
		res := &NextResult{NormalizedKey: normalizedFlag, OriginalKey: flag}
		res.Args, res.Missing = s.take(numArgs + 1)
		if len(res.Args) > 1 {
			res.Values = res.Args[1:]
		}
		return res
	}
	for _, f := range s.Joined {
		if !strings.HasPrefix(flag, f.Prefix) {
			continue
		}
		res := &NextResult{
			NormalizedKey: s.normalizedFlag(f.Prefix),
			OriginalKey:   f.Prefix,
			Values:        []string{strings.TrimPrefix(flag, f.Prefix)},
			Joined:        true,
		}
		res.Args, res.Missing = s.take(f.NumArgs + 1)
		if len(res.Args) > 1 {
			res.Values = append(res.Values, res.Args[1:]...)
		}
		return res
	}
	args, _ := s.take(1)
	if strings.HasPrefix(flag, "-") {
		return &NextResult{NormalizedKey: flag, OriginalKey: flag, Args: args}
	}
	return &NextResult{Args: args, Values: args[:]}
}

// Next returns next flag.
// flag is normalized flag,
// empty string if not started with "-".
// args are consumed arguments.
// values are flag value if flag needs value (next arg in args) or
// joined (rest after prefix in the arg).
func (s *Scanner) Next() (string, []string, []string, bool) {
	result := s.NextResult()
	return result.NormalizedKey, result.Args, result.Values, result.Joined
}

// take consumes n args, or all remaining args if n < 1 or there are fewer
// than n left. It returns the consumed args and how many were missing.
func (s *Scanner) take(n int) ([]string, int) {
	if n < 1 {
		args := s.Args
		s.Args = nil
		return args, 0
	}
	if n > len(s.Args) {
		args, missing := s.Args, n-len(s.Args)
		s.Args = nil
		return args, missing
	}
	args := s.Args[:n:n]
	s.Args = s.Args[n:]
	return args, 0
}

func (s *Scanner) normalizedFlag(flag string) string {
	if normalizedFlag, ok := s.Normalized[flag]; ok {
		return normalizedFlag
	}
	return flag
}
