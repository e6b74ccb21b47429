package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
)

var ErrInvalidBranchName = errors.New("invalid branch name")

func validateBranchName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: branch not specified", ErrInvalidBranchName)
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("%w: %q starts with '-'", ErrInvalidBranchName, name)
	}
	if strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace or control characters", ErrInvalidBranchName, name)
	}
	return nil
}

func createBranchArgs(name string, opts CreateOptions) []string {
	var args []string
	if opts.Checkout {
		args = []string{"checkout", "-b", name}
	} else {
		args = []string{"branch", name}
	}
	if opts.StartPoint != "" {
		args = append(args, opts.StartPoint)
	}
	return args
}

func renameBranchArgs(oldName, newName string, force bool) []string {
	flag := "-m"
	if force {
		flag = "-M"
	}
	return []string{"branch", flag, oldName, newName}
}

func deleteBranchArgs(name string, force bool) []string {
	flag := "-d"
	if force {
		flag = "-D"
	}
	return []string{"branch", flag, name}
}

func deleteRemoteBranchArgs(remote, name string) []string {
	return []string{"push", remote, ":" + name}
}

func (g *gitCLI) CreateBranch(ctx context.Context, name string, opts CreateOptions) error {
	if err := validateBranchName(name); err != nil {
		return err
	}
	if strings.HasPrefix(opts.StartPoint, "-") {
		return fmt.Errorf("invalid start point %q", opts.StartPoint)
	}
	_, err := g.run(ctx, createBranchArgs(name, opts))
	return err
}

func (g *gitCLI) RenameBranch(ctx context.Context, branch Branch, newName string, force bool) error {
	if !branch.IsLocal() {
		return fmt.Errorf("rename %s: remote-tracking branches cannot be renamed", branch.Name)
	}
	if err := validateBranchName(newName); err != nil {
		return err
	}
	_, err := g.run(ctx, renameBranchArgs(branch.Name, newName, force))
	return err
}

// DeleteBranch deletes a local branch and, when opts.Remote is set, the branch it
// tracks on its remote. The push only happens when the remote-tracking ref is
// still present, so deleting a branch that was already removed upstream does not
// fail.
func (g *gitCLI) DeleteBranch(ctx context.Context, branch Branch, opts DeleteOptions) error {
	if branch.IsLocal() {
		if err := validateBranchName(branch.Name); err != nil {
			return err
		}
		if _, err := g.run(ctx, deleteBranchArgs(branch.Name, opts.Force)); err != nil {
			return err
		}
	} else if !opts.Remote {
		return fmt.Errorf("delete %s: remote-tracking branches are only deleted together with the remote branch", branch.Name)
	}

	if !opts.Remote {
		return nil
	}
	remote := branch.Remote()
	if remote == "" {
		slog.Debug("branch has no remote, skipping remote delete", slog.String("branch", branch.Name))
		return nil
	}
	remoteName := branch.upstreamBranchName()
	tracking, err := g.ListBranches(ctx, RemoteBranchPrefix+"/"+remote+"/"+remoteName)
	if err != nil {
		return fmt.Errorf("look up %s/%s: %w", remote, remoteName, err)
	}
	if len(tracking) == 0 {
		slog.Debug("remote-tracking branch not found, skipping remote delete",
			slog.String("remote", remote),
			slog.String("branch", remoteName),
		)
		return nil
	}
	_, err = g.run(ctx, deleteRemoteBranchArgs(remote, remoteName))
	return err
}
