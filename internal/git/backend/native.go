package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type native struct {
	path         string
	repo         *gitlib.Repository
	reverseOrder bool
}

// OpenNative opens a read-only backend that reads refs and commits with go-git.
// Symbolic refs such as refs/remotes/origin/HEAD are not listed.
func OpenNative(repoPath string, opts Options) (Backend, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}
	repo, err := gitlib.PlainOpenWithOptions(abs, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &native{path: root, repo: repo, reverseOrder: opts.ReverseOrder}, nil
}

func (n *native) RepoPath() string {
	if n == nil {
		return ""
	}
	return n.path
}

func (n *native) ListBranches(ctx context.Context, prefixes ...string) ([]Branch, error) {
	if len(prefixes) == 0 {
		prefixes = defaultPrefixes
	}
	cfg, err := n.repo.Config()
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	refs, err := n.repo.References()
	if err != nil {
		return nil, fmt.Errorf("read references: %w", err)
	}
	defer refs.Close()

	type entry struct {
		branch Branch
		when   time.Time
	}
	var entries []entry
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ref.Type() != plumbing.HashReference {
			return nil
		}
		name := ref.Name()
		if !name.IsBranch() && !name.IsRemote() {
			return nil
		}
		if !matchesRefPattern(name.String(), prefixes) {
			return nil
		}
		commit, err := n.repo.CommitObject(ref.Hash())
		if err != nil {
			return fmt.Errorf("read commit %s of %s: %w", ref.Hash(), name, err)
		}
		branch := Branch{
			Name: name.Short(),
			Ref:  name.String(),
			Type: BranchRemote,
			Tip:  tipFromCommit(commit),
		}
		if name.IsBranch() {
			branch.Type = BranchLocal
			branch.Upstream = upstreamFromConfig(cfg, branch.Name)
		}
		entries = append(entries, entry{branch: branch, when: commit.Committer.When})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Same order as for-each-ref --sort=-committerdate, which falls back to the
	// ref name for ties.
	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := b.when.Compare(a.when); c != 0 {
			return c
		}
		return strings.Compare(a.branch.Ref, b.branch.Ref)
	})
	branches := make([]Branch, 0, len(entries))
	for _, e := range entries {
		branches = append(branches, e.branch)
	}
	if n.reverseOrder {
		slices.Reverse(branches)
	}
	slog.Debug("listed branches (native)", slog.Any("prefixes", prefixes), slog.Int("count", len(branches)))
	return branches, nil
}

func (n *native) CurrentBranch(ctx context.Context) (*Branch, error) {
	head, err := n.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return nil, nil
	}
	// An unborn branch has no ref yet and simply yields no match.
	branches, err := n.ListBranches(ctx, head.Target().String())
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, nil
	}
	return &branches[0], nil
}

func (n *native) CreateBranch(context.Context, string, CreateOptions) error {
	return fmt.Errorf("create branch: %w", errors.ErrUnsupported)
}

func (n *native) RenameBranch(context.Context, Branch, string, bool) error {
	return fmt.Errorf("rename branch: %w", errors.ErrUnsupported)
}

func (n *native) DeleteBranch(context.Context, Branch, DeleteOptions) error {
	return fmt.Errorf("delete branch: %w", errors.ErrUnsupported)
}

// matchesRefPattern follows for-each-ref: a pattern matches itself and
// everything below it.
func matchesRefPattern(ref string, patterns []string) bool {
	for _, p := range patterns {
		p = strings.TrimSuffix(p, "/")
		if ref == p || strings.HasPrefix(ref, p+"/") {
			return true
		}
	}
	return false
}

func upstreamFromConfig(cfg *config.Config, branch string) string {
	bc, ok := cfg.Branches[branch]
	if !ok || bc == nil || bc.Merge == "" {
		return ""
	}
	if bc.Remote == "" || bc.Remote == "." {
		return bc.Merge.Short()
	}
	return bc.Remote + "/" + bc.Merge.Short()
}

func tipFromCommit(c *object.Commit) BranchTip {
	subject, body := splitCommitMessage(c.Message)
	var parents []string
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}
	return BranchTip{
		Hash:         c.Hash.String(),
		Summary:      subject,
		Body:         body,
		ParentHashes: parents,
		Author:       Signature{Name: c.Author.Name, Email: c.Author.Email, When: c.Author.When},
	}
}

// splitCommitMessage mirrors %(subject) and %(body): the subject is the first
// paragraph folded onto one line.
func splitCommitMessage(msg string) (subject, body string) {
	msg = strings.TrimLeft(msg, "\n")
	first, rest, _ := strings.Cut(msg, "\n\n")
	subject = strings.ReplaceAll(strings.TrimRight(first, "\n"), "\n", " ")
	body = strings.TrimLeft(rest, "\n")
	return subject, body
}
