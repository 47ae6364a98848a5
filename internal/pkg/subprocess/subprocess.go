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

// Package subprocess provides functionality to execute system commands.
package subprocess

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/bazelbuild/remote-apis-sdks/go/pkg/command"

	log "github.com/golang/glog"
)

// waitDelay bounds how long Execute keeps reading output after the process
// exited or was killed, in case a grandchild still holds the pipes open.
const waitDelay = 2 * time.Second

// SystemExecutor uses the native os/exec package to execute subprocesses.
type SystemExecutor struct{}

// Execute runs the given command with an empty stdin and returns stdout and stderr.
// Returns *exec.ExitError if the command ran with a non-zero exit code.
// The process is killed when ctx is done, and Execute does not return before
// the process has been waited for.
func (SystemExecutor) Execute(ctx context.Context, cmd *command.Command) (string, string, error) {
	cmdCtx, stdout, stderr, err := setupCommand(ctx, cmd)
	if err != nil {
		return "", "", err
	}
	err = cmdCtx.Run()
	if err != nil {
		log.V(2).Infof("Executed command %v\n >> stdout=%v\n >> stderr=%v\n >> err=%v", cmd.Args, stdout, stderr, err)
	}
	return stdout.String(), stderr.String(), err
}

func setupCommand(ctx context.Context, cmd *command.Command) (*exec.Cmd, *strings.Builder, *strings.Builder, error) {
	if cmd == nil || len(cmd.Args) < 1 {
		return nil, nil, nil, fmt.Errorf("command must have at least 1 argument")
	}
	cmdCtx := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	cmdCtx.Dir = filepath.Join(cmd.ExecRoot, cmd.WorkingDir)
	if cmd.InputSpec != nil && cmd.InputSpec.EnvironmentVariables != nil {
		cmdCtx.Env = envVarList(cmd.InputSpec.EnvironmentVariables)
	}
	var stdout, stderr strings.Builder
	cmdCtx.Stdin = strings.NewReader("")
	cmdCtx.Stdout = &stdout
	cmdCtx.Stderr = &stderr
	cmdCtx.WaitDelay = waitDelay
	setProcessGroup(cmdCtx)
	return cmdCtx, &stdout, &stderr, nil
}

func envVarList(envVars map[string]string) []string {
	lst := make([]string, 0, len(envVars))
	for k, v := range envVars {
		lst = append(lst, fmt.Sprintf("%s=%s", k, v))
	}
	return lst
}
