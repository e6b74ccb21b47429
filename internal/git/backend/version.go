package backend

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Minimum supported git version for the CLI backend. Keep this aligned with the
// for-each-ref atoms we request (%(upstream:short), %(parent), %xx escapes) and
// "rev-parse --abbrev-ref".
var minGitVersion = gitVersion{major: 2, minor: 20, patch: 0}

type gitVersion struct {
	major int
	minor int
	patch int
}

func MinGitVersion() string {
	return minGitVersion.String()
}

func (v gitVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func (v gitVersion) less(other gitVersion) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	return v.patch < other.patch
}

func parseGitVersionOutput(out string) (gitVersion, bool) {
	s := strings.TrimSpace(out)
	if s == "" {
		return gitVersion{}, false
	}
	// Common formats:
	// - "git version 2.44.0"
	// - "git version 2.39.3 (Apple Git-146)"
	// - "git version 2.39.3.windows.1"
	if idx := strings.Index(s, "git version"); idx >= 0 {
		s = strings.TrimSpace(s[idx+len("git version"):])
	}
	start := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return gitVersion{}, false
	}
	s = s[start:]
	end := strings.IndexFunc(s, func(r rune) bool { return (r < '0' || r > '9') && r != '.' })
	if end >= 0 {
		s = s[:end]
	}
	s = strings.Trim(s, ".")

	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return gitVersion{}, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return gitVersion{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return gitVersion{}, false
	}
	patch := 0
	if len(parts) >= 3 {
		if p, err := strconv.Atoi(parts[2]); err == nil {
			patch = p
		}
	}
	return gitVersion{major: major, minor: minor, patch: patch}, true
}

func validateGitVersionOutput(out string) error {
	got, ok := parseGitVersionOutput(out)
	if !ok {
		return fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	if got.less(minGitVersion) {
		return fmt.Errorf("git %s is too old; git-branches requires git >= %s", got, minGitVersion)
	}
	return nil
}

type gitVersionInfo struct {
	out string
	err error
}

func queryGitVersion(ctx context.Context, runner Runner) gitVersionInfo {
	res, err := runner.Run(ctx, "", []string{"--version"})
	if err != nil {
		return gitVersionInfo{err: fmt.Errorf("git --version: %w", err)}
	}
	out := strings.TrimSpace(res.Stdout)
	return gitVersionInfo{out: out, err: validateGitVersionOutput(out)}
}

// gitVersionCache holds one result per git executable path.
var gitVersionCache sync.Map

func gitVersionInfoCached(ctx context.Context, runner Runner, key string) gitVersionInfo {
	if key == "" {
		return queryGitVersion(ctx, runner)
	}
	if cached, ok := gitVersionCache.Load(key); ok {
		return cached.(gitVersionInfo)
	}
	info := queryGitVersion(ctx, runner)
	// A canceled query says nothing about the executable.
	if ctx.Err() == nil {
		gitVersionCache.Store(key, info)
	}
	return info
}

// GitVersion returns the raw "git --version" output of the executable at gitPath.
func GitVersion(ctx context.Context, gitPath string) (string, error) {
	if gitPath == "" {
		gitPath = defaultGitPath
	}
	info := gitVersionInfoCached(ctx, NewExecRunner(gitPath), gitPath)
	if info.out == "" {
		return "", info.err
	}
	return info.out, nil
}

func ensureMinGitVersion(ctx context.Context, runner Runner, cacheKey string) error {
	return gitVersionInfoCached(ctx, runner, cacheKey).err
}
