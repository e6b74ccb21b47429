package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"
)

const defaultGitPath = "git"

type Result struct {
	Stdout   string
	ExitCode int
}

// Runner executes git. Exit codes listed in successExitCodes are reported through
// Result.ExitCode; any other non-zero exit is returned as a *CommandError.
// An empty successExitCodes means only 0 is accepted.
type Runner interface {
	Run(ctx context.Context, dir string, args []string, successExitCodes ...int) (Result, error)
}

type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	name := "git"
	if len(e.Args) > 0 {
		name = "git " + e.Args[0]
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", name, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type execRunner struct {
	gitPath string
}

// NewExecRunner returns a Runner that shells out to the git executable at
// gitPath, or to "git" on PATH when gitPath is empty.
func NewExecRunner(gitPath string) Runner {
	if gitPath == "" {
		gitPath = defaultGitPath
	}
	return &execRunner{gitPath: gitPath}
}

func (r *execRunner) Run(ctx context.Context, dir string, args []string, successExitCodes ...int) (Result, error) {
	if strings.ContainsRune(dir, 0) {
		return Result{}, fmt.Errorf("dir contains null byte")
	}
	for _, arg := range args {
		if strings.ContainsRune(arg, 0) {
			return Result{}, fmt.Errorf("argument contains null byte")
		}
	}

	cmd := exec.CommandContext(ctx, r.gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_TERMINAL_PROMPT=0",
		"GIT_EDITOR=true",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, &CommandError{Args: args, ExitCode: -1, Stderr: strings.TrimSpace(stderr.String()), Err: err}
		}
		exitCode = exitErr.ExitCode()
	}
	slog.Debug("git command completed",
		slog.String("dir", dir),
		slog.Any("args", args),
		slog.Int("exit_code", exitCode),
		slog.Duration("duration", time.Since(start)),
	)
	if !exitCodeAllowed(exitCode, successExitCodes) {
		return Result{}, &CommandError{
			Args:     args,
			ExitCode: exitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	}
	return Result{Stdout: stdout.String(), ExitCode: exitCode}, nil
}

func exitCodeAllowed(code int, allowed []int) bool {
	if len(allowed) == 0 {
		return code == 0
	}
	return slices.Contains(allowed, code)
}
