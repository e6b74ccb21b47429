package git

import (
	"context"
	"errors"
	"slices"

	gitbackend "github.com/thiagokokada/git-branches/internal/git/backend"
)

type fakeBackend struct {
	repoPath string

	listBranchesFunc  func(prefixes []string) ([]Branch, error)
	currentBranchFunc func() (*Branch, error)
	createBranchFunc  func(name string, opts CreateOptions) error
	renameBranchFunc  func(branch Branch, newName string, force bool) error
	deleteBranchFunc  func(branch Branch, opts DeleteOptions) error

	lastPrefixes []string
	lastBranch   *Branch
}

var _ gitbackend.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) RepoPath() string { return f.repoPath }

func (f *fakeBackend) ListBranches(_ context.Context, prefixes ...string) ([]Branch, error) {
	f.lastPrefixes = slices.Clone(prefixes)
	if f.listBranchesFunc != nil {
		return f.listBranchesFunc(prefixes)
	}
	return nil, errors.New("unexpected ListBranches call")
}

func (f *fakeBackend) CurrentBranch(context.Context) (*Branch, error) {
	if f.currentBranchFunc != nil {
		return f.currentBranchFunc()
	}
	return nil, errors.New("unexpected CurrentBranch call")
}

func (f *fakeBackend) CreateBranch(_ context.Context, name string, opts CreateOptions) error {
	if f.createBranchFunc != nil {
		return f.createBranchFunc(name, opts)
	}
	return errors.New("unexpected CreateBranch call")
}

func (f *fakeBackend) RenameBranch(_ context.Context, branch Branch, newName string, force bool) error {
	f.lastBranch = &branch
	if f.renameBranchFunc != nil {
		return f.renameBranchFunc(branch, newName, force)
	}
	return errors.New("unexpected RenameBranch call")
}

func (f *fakeBackend) DeleteBranch(_ context.Context, branch Branch, opts DeleteOptions) error {
	f.lastBranch = &branch
	if f.deleteBranchFunc != nil {
		return f.deleteBranchFunc(branch, opts)
	}
	return errors.New("unexpected DeleteBranch call")
}

// staticBranches answers listings like git would: only branches under the
// requested prefixes, in the given order.
func staticBranches(all ...Branch) func(prefixes []string) ([]Branch, error) {
	return func(prefixes []string) ([]Branch, error) {
		var out []Branch
		for _, b := range all {
			for _, p := range prefixes {
				if b.Ref == p || len(b.Ref) > len(p) && b.Ref[:len(p)+1] == p+"/" {
					out = append(out, b)
					break
				}
			}
		}
		return out, nil
	}
}

func local(name string) Branch {
	return Branch{Name: name, Ref: "refs/heads/" + name, Type: BranchLocal}
}

func remote(name string) Branch {
	return Branch{Name: name, Ref: "refs/remotes/" + name, Type: BranchRemote}
}
