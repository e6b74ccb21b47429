package backend

import "context"

const (
	LocalBranchPrefix  = "refs/heads"
	RemoteBranchPrefix = "refs/remotes"
)

var defaultPrefixes = []string{LocalBranchPrefix, RemoteBranchPrefix}

// Backend abstracts access to the branches of a repository.
//
// The default implementation shells out to the git executable; the go-git
// implementation is read-only and exists for environments without git.
type Backend interface {
	RepoPath() string

	// ListBranches lists branches under the given ref prefixes, most recently
	// committed first. No prefixes means local and remote-tracking branches.
	ListBranches(ctx context.Context, prefixes ...string) ([]Branch, error)
	// CurrentBranch returns nil without error when HEAD is unborn, detached, or
	// points to a branch that no longer exists.
	CurrentBranch(ctx context.Context) (*Branch, error)

	CreateBranch(ctx context.Context, name string, opts CreateOptions) error
	RenameBranch(ctx context.Context, branch Branch, newName string, force bool) error
	DeleteBranch(ctx context.Context, branch Branch, opts DeleteOptions) error
}

type Options struct {
	// GitPath is the git executable; empty means "git" on PATH.
	GitPath      string
	ReverseOrder bool
	// Runner replaces the exec based runner, mostly for tests.
	Runner Runner
}

type CreateOptions struct {
	StartPoint string
	Checkout   bool
}

type DeleteOptions struct {
	Force bool
	// Remote also deletes the branch on its remote when a remote-tracking ref
	// for it exists.
	Remote bool
}
