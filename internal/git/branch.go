package git

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

var ErrBranchNotFound = errors.New("branch not found")

// FindBranch looks a branch up by its short name. A local branch wins over a
// remote-tracking branch with the same short name.
func (s *Service) FindBranch(ctx context.Context, name string) (Branch, error) {
	if err := s.ready(); err != nil {
		return Branch{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findBranchLocked(ctx, name)
}

func (s *Service) findBranchLocked(ctx context.Context, name string) (Branch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Branch{}, fmt.Errorf("branch not specified")
	}
	branches, err := s.branchesLocked(ctx, FilterAll)
	if err != nil {
		return Branch{}, err
	}
	var found *Branch
	for i := range branches {
		if branches[i].Name != name {
			continue
		}
		if branches[i].IsLocal() {
			return branches[i], nil
		}
		if found == nil {
			found = &branches[i]
		}
	}
	if found == nil {
		return Branch{}, fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	return *found, nil
}

func (s *Service) CreateBranch(ctx context.Context, name string, opts CreateOptions) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.CreateBranch(ctx, name, opts); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	slog.Info("branch created",
		slog.String("branch", name),
		slog.String("start_point", opts.StartPoint),
		slog.Bool("checkout", opts.Checkout),
	)
	return nil
}

func (s *Service) RenameBranch(ctx context.Context, name, newName string, force bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	branch, err := s.findBranchLocked(ctx, name)
	if err != nil {
		return err
	}
	if err := s.backend.RenameBranch(ctx, branch, newName, force); err != nil {
		return fmt.Errorf("rename branch %s: %w", name, err)
	}
	slog.Info("branch renamed", slog.String("from", name), slog.String("to", newName))
	return nil
}

func (s *Service) DeleteBranch(ctx context.Context, name string, opts DeleteOptions) error {
	if err := s.ready(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	branch, err := s.findBranchLocked(ctx, name)
	if err != nil {
		return err
	}
	if err := s.backend.DeleteBranch(ctx, branch, opts); err != nil {
		return fmt.Errorf("delete branch %s: %w", name, err)
	}
	slog.Info("branch deleted",
		slog.String("branch", name),
		slog.Bool("force", opts.Force),
		slog.Bool("remote", opts.Remote),
	)
	return nil
}

// LocalBranchNames returns the sorted local branch names, mostly for shell
// completion.
func (s *Service) LocalBranchNames(ctx context.Context) ([]string, error) {
	branches, err := s.Branches(ctx, FilterLocal)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(branches))
	for _, b := range branches {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}
