package git

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	gitbackend "github.com/thiagokokada/git-branches/internal/git/backend"
)

type Service struct {
	// mu serializes mutations with the listings that resolve their targets.
	mu sync.Mutex

	backend Backend
}

type Options struct {
	Backend BackendKind
	// GitPath is the git executable used by the CLI backend.
	GitPath string
	// ReverseOrder flips listings for platforms where git returns the
	// committerdate sort reversed.
	ReverseOrder bool
}

func Open(ctx context.Context, repoPath string, opts Options) (*Service, error) {
	kind, err := ParseBackendKind(string(opts.Backend))
	if err != nil {
		return nil, err
	}
	bopts := gitbackend.Options{GitPath: opts.GitPath, ReverseOrder: opts.ReverseOrder}

	var b Backend
	switch kind {
	case BackendNative:
		b, err = gitbackend.OpenNative(repoPath, bopts)
	default:
		b, err = gitbackend.OpenCLI(ctx, repoPath, bopts)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("repository opened",
		slog.String("path", b.RepoPath()),
		slog.String("backend", string(kind)),
		slog.Bool("reverse_order", opts.ReverseOrder),
	)
	return NewWithBackend(b), nil
}

func NewWithBackend(b Backend) *Service {
	return &Service{backend: b}
}

func (s *Service) RepoPath() string {
	if s == nil || s.backend == nil {
		return ""
	}
	return s.backend.RepoPath()
}

func (s *Service) ready() error {
	if s == nil || s.backend == nil || s.backend.RepoPath() == "" {
		return fmt.Errorf("repository root not set")
	}
	return nil
}

// Branches lists branches in the namespaces selected by filter, most recently
// committed first.
func (s *Service) Branches(ctx context.Context, filter Filter) ([]Branch, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branchesLocked(ctx, filter)
}

func (s *Service) branchesLocked(ctx context.Context, filter Filter) ([]Branch, error) {
	branches, err := s.backend.ListBranches(ctx, filter.prefixes()...)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	out := branches[:0]
	for _, b := range branches {
		if filter.matches(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

// CurrentBranch returns nil when HEAD is detached, unborn, or otherwise not on a
// listed branch.
func (s *Service) CurrentBranch(ctx context.Context) (*Branch, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.backend.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("current branch: %w", err)
	}
	return cur, nil
}
