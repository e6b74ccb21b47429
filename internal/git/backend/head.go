package backend

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type HeadState uint8

const (
	// HeadBranch means HEAD resolved to a name worth looking up.
	HeadBranch HeadState = iota
	// HeadNoBranch is rev-parse exit 1.
	HeadNoBranch
	// HeadUnborn is rev-parse exit 128: HEAD names a branch with no commits.
	HeadUnborn
)

func (s HeadState) String() string {
	switch s {
	case HeadNoBranch:
		return "no-branch"
	case HeadUnborn:
		return "unborn"
	default:
		return "branch"
	}
}

var headStatesByExitCode = map[int]HeadState{
	0:   HeadBranch,
	1:   HeadNoBranch,
	128: HeadUnborn,
}

// headQueryExitCodes lists the rev-parse exit codes that are not failures.
func headQueryExitCodes() []int {
	return slices.Sorted(maps.Keys(headStatesByExitCode))
}

func headStateForExitCode(code int) (HeadState, error) {
	state, ok := headStatesByExitCode[code]
	if !ok {
		return 0, fmt.Errorf("unexpected git rev-parse exit code %d", code)
	}
	return state, nil
}

var headQueryArgs = []string{"rev-parse", "--abbrev-ref", "HEAD"}

// headBranchName trims rev-parse output. Newly created branches can come back
// with a "heads/" prefix.
func headBranchName(out string) string {
	return strings.TrimPrefix(strings.TrimSpace(out), "heads/")
}
