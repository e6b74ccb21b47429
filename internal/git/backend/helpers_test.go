package backend

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

type fakeResponse struct {
	stdout   string
	exitCode int
	err      error
}

type fakeRunner struct {
	// respond maps a call to its output. Exit codes outside the caller's
	// allow-list turn into a *CommandError like the exec runner does.
	respond func(args []string) fakeResponse
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args []string, successExitCodes ...int) (Result, error) {
	f.calls = append(f.calls, slices.Clone(args))
	if f.respond == nil {
		return Result{}, fmt.Errorf("unexpected Run call: %v", args)
	}
	resp := f.respond(args)
	if resp.err != nil {
		return Result{}, resp.err
	}
	if !exitCodeAllowed(resp.exitCode, successExitCodes) {
		return Result{}, &CommandError{Args: args, ExitCode: resp.exitCode, Err: fmt.Errorf("exit status %d", resp.exitCode)}
	}
	return Result{Stdout: resp.stdout, ExitCode: resp.exitCode}, nil
}

func (f *fakeRunner) subcommands() []string {
	var out []string
	for _, call := range f.calls {
		if len(call) > 0 {
			out = append(out, call[0])
		}
	}
	return out
}

func encodeRefRecords(recs []refRecord) string {
	var b strings.Builder
	for _, r := range recs {
		for _, field := range []string{r.Ref, r.ShortName, r.Upstream, r.Hash, r.Author, r.Parents, r.Subject, r.Body} {
			b.WriteString(field)
			b.WriteString(fieldTerminator)
		}
		b.WriteString(recordSentinel)
		b.WriteString("\n")
	}
	return b.String()
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
}

var testEpoch = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func runGit(t *testing.T, dir string, env []string, args ...string) string {
	t.Helper()
	base := []string{
		"-c", "user.name=Test User",
		"-c", "user.email=test@example.com",
		"-c", "commit.gpgsign=false",
		"-c", "init.defaultBranch=main",
	}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1", "HOME="+dir)
	cmd.Env = append(cmd.Env, env...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func commitAt(t *testing.T, dir string, offset time.Duration, message string) string {
	t.Helper()
	when := testEpoch.Add(offset).Format(time.RFC3339)
	env := []string{"GIT_AUTHOR_DATE=" + when, "GIT_COMMITTER_DATE=" + when}
	runGit(t, dir, env, "commit", "--allow-empty", "--quiet", "-m", message)
	return runGit(t, dir, nil, "rev-parse", "HEAD")
}

type testRepo struct {
	dir     string
	initial string
	second  string
	feature string
}

// createTestRepo builds:
//
//	feature     -> third commit  (newest)
//	main        -> second commit, upstream origin/main
//	origin/main -> initial commit (oldest)
func createTestRepo(t *testing.T) testRepo {
	t.Helper()
	requireGit(t)
	dir := t.TempDir()
	runGit(t, dir, nil, "init", "--quiet")
	runGit(t, dir, nil, "symbolic-ref", "HEAD", "refs/heads/main")

	repo := testRepo{dir: dir}
	repo.initial = commitAt(t, dir, 0, "Initial commit")
	repo.second = commitAt(t, dir, time.Hour, "Second commit\n\nBody line one\nBody line two")
	runGit(t, dir, nil, "remote", "add", "origin", filepath.Join(dir, "missing-remote.git"))
	runGit(t, dir, nil, "update-ref", "refs/remotes/origin/main", repo.initial)
	runGit(t, dir, nil, "config", "branch.main.remote", "origin")
	runGit(t, dir, nil, "config", "branch.main.merge", "refs/heads/main")

	runGit(t, dir, nil, "checkout", "--quiet", "-b", "feature")
	repo.feature = commitAt(t, dir, 2*time.Hour, "Feature work")
	runGit(t, dir, nil, "checkout", "--quiet", "main")
	return repo
}

func branchNames(branches []Branch) []string {
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		names = append(names, b.Name)
	}
	return names
}
