package backend

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

type gitCLI struct {
	path   string
	runner Runner
	rec    reconstructor
}

func OpenCLI(ctx context.Context, repoPath string, opts Options) (Backend, error) {
	runner := opts.Runner
	cacheKey := ""
	if runner == nil {
		runner = NewExecRunner(opts.GitPath)
		cacheKey = opts.GitPath
		if cacheKey == "" {
			cacheKey = defaultGitPath
		}
	}
	if err := ensureMinGitVersion(ctx, runner, cacheKey); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	res, err := runner.Run(ctx, abs, []string{"rev-parse", "--show-toplevel"})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root := strings.TrimSpace(res.Stdout)
	if root == "" {
		return nil, fmt.Errorf("open repository: git rev-parse returned empty root")
	}
	return newGitCLI(root, runner, opts.ReverseOrder), nil
}

func newGitCLI(path string, runner Runner, reverseOrder bool) *gitCLI {
	return &gitCLI{path: path, runner: runner, rec: newReconstructor(reverseOrder)}
}

func (g *gitCLI) RepoPath() string {
	if g == nil {
		return ""
	}
	return g.path
}

func (g *gitCLI) run(ctx context.Context, args []string, successExitCodes ...int) (Result, error) {
	if g == nil || g.path == "" {
		return Result{}, fmt.Errorf("repository root not set")
	}
	return g.runner.Run(ctx, g.path, args, successExitCodes...)
}

func (g *gitCLI) ListBranches(ctx context.Context, prefixes ...string) ([]Branch, error) {
	if len(prefixes) == 0 {
		prefixes = defaultPrefixes
	}
	args := append([]string{
		"for-each-ref",
		"--sort=-committerdate",
		"--format=" + refListingFormat,
	}, prefixes...)
	res, err := g.run(ctx, args)
	if err != nil {
		return nil, err
	}
	records, err := decodeRefRecords(res.Stdout)
	if err != nil {
		return nil, err
	}
	branches, err := g.rec.branches(records)
	if err != nil {
		return nil, err
	}
	slog.Debug("listed branches",
		slog.Any("prefixes", prefixes),
		slog.Int("count", len(branches)),
		slog.Bool("reversed", g.rec.reverseOrder),
	)
	return branches, nil
}

func (g *gitCLI) CurrentBranch(ctx context.Context) (*Branch, error) {
	res, err := g.run(ctx, headQueryArgs, headQueryExitCodes()...)
	if err != nil {
		return nil, err
	}
	state, err := headStateForExitCode(res.ExitCode)
	if err != nil {
		return nil, err
	}
	if state != HeadBranch {
		slog.Debug("no current branch", slog.String("state", state.String()))
		return nil, nil
	}
	name := headBranchName(res.Stdout)
	if name == "" {
		return nil, nil
	}
	branches, err := g.ListBranches(ctx, LocalBranchPrefix+"/"+name)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		// Detached HEAD ("HEAD") or a branch deleted since rev-parse ran.
		slog.Debug("current branch not found", slog.String("name", name))
		return nil, nil
	}
	return &branches[0], nil
}
