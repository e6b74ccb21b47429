package git

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestFindBranch(t *testing.T) {
	t.Parallel()

	shadow := remote("topic")
	shadow.Ref = "refs/remotes/topic"
	fb := &fakeBackend{
		repoPath:         "repo",
		listBranchesFunc: staticBranches(remote("origin/main"), shadow, local("topic"), local("main")),
	}
	svc := NewWithBackend(fb)
	ctx := context.Background()

	tests := []struct {
		name     string
		wantType BranchType
		wantErr  error
	}{
		{name: "main", wantType: BranchLocal},
		{name: " main\n", wantType: BranchLocal},
		{name: "origin/main", wantType: BranchRemote},
		{name: "topic", wantType: BranchLocal},
		{name: "missing", wantErr: ErrBranchNotFound},
	}
	for _, tt := range tests {
		got, err := svc.FindBranch(ctx, tt.name)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FindBranch(%q) error = %v, want %v", tt.name, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("FindBranch(%q) error = %v", tt.name, err)
		}
		if got.Type != tt.wantType {
			t.Fatalf("FindBranch(%q) type = %s, want %s", tt.name, got.Type, tt.wantType)
		}
	}
	if _, err := svc.FindBranch(ctx, "  "); err == nil || errors.Is(err, ErrBranchNotFound) {
		t.Fatalf("FindBranch(blank) error = %v, want a missing-name error", err)
	}
}

func TestCreateBranch(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotOpts CreateOptions
	fb := &fakeBackend{
		repoPath: "repo",
		createBranchFunc: func(name string, opts CreateOptions) error {
			gotName, gotOpts = name, opts
			return nil
		},
	}
	opts := CreateOptions{StartPoint: "origin/main", Checkout: true}
	if err := NewWithBackend(fb).CreateBranch(context.Background(), "topic", opts); err != nil {
		t.Fatalf("CreateBranch() error = %v", err)
	}
	if gotName != "topic" || gotOpts != opts {
		t.Fatalf("backend got %q %+v", gotName, gotOpts)
	}
}

func TestRenameBranch(t *testing.T) {
	t.Parallel()

	var gotNew string
	var gotForce bool
	fb := &fakeBackend{
		repoPath:         "repo",
		listBranchesFunc: staticBranches(local("old")),
		renameBranchFunc: func(_ Branch, newName string, force bool) error {
			gotNew, gotForce = newName, force
			return nil
		},
	}
	svc := NewWithBackend(fb)
	ctx := context.Background()

	if err := svc.RenameBranch(ctx, "old", "new", true); err != nil {
		t.Fatalf("RenameBranch() error = %v", err)
	}
	if fb.lastBranch == nil || fb.lastBranch.Ref != "refs/heads/old" {
		t.Fatalf("renamed branch = %+v", fb.lastBranch)
	}
	if gotNew != "new" || !gotForce {
		t.Fatalf("backend got %q force=%v", gotNew, gotForce)
	}

	fb.lastBranch = nil
	if err := svc.RenameBranch(ctx, "missing", "new", false); !errors.Is(err, ErrBranchNotFound) {
		t.Fatalf("RenameBranch(missing) error = %v, want ErrBranchNotFound", err)
	}
	if fb.lastBranch != nil {
		t.Fatalf("backend should not be called for unknown branch")
	}
}

func TestDeleteBranch(t *testing.T) {
	t.Parallel()

	tracked := local("topic")
	tracked.Upstream = "origin/topic"
	var gotOpts DeleteOptions
	fb := &fakeBackend{
		repoPath:         "repo",
		listBranchesFunc: staticBranches(tracked, remote("origin/topic")),
		deleteBranchFunc: func(_ Branch, opts DeleteOptions) error {
			gotOpts = opts
			return nil
		},
	}
	svc := NewWithBackend(fb)
	ctx := context.Background()

	opts := DeleteOptions{Force: true, Remote: true}
	if err := svc.DeleteBranch(ctx, "topic", opts); err != nil {
		t.Fatalf("DeleteBranch() error = %v", err)
	}
	if fb.lastBranch == nil || fb.lastBranch.Upstream != "origin/topic" || !fb.lastBranch.IsLocal() {
		t.Fatalf("deleted branch = %+v", fb.lastBranch)
	}
	if gotOpts != opts {
		t.Fatalf("opts = %+v, want %+v", gotOpts, opts)
	}

	if err := svc.DeleteBranch(ctx, "nope", DeleteOptions{}); !errors.Is(err, ErrBranchNotFound) {
		t.Fatalf("DeleteBranch(missing) error = %v, want ErrBranchNotFound", err)
	}
}

func TestDeleteBranch_WrapsBackendError(t *testing.T) {
	t.Parallel()

	boom := errors.New("not fully merged")
	fb := &fakeBackend{
		repoPath:         "repo",
		listBranchesFunc: staticBranches(local("topic")),
		deleteBranchFunc: func(Branch, DeleteOptions) error { return boom },
	}
	err := NewWithBackend(fb).DeleteBranch(context.Background(), "topic", DeleteOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("DeleteBranch() error = %v, want %v", err, boom)
	}
}

func TestLocalBranchNames_SortsAndDedupes(t *testing.T) {
	t.Parallel()

	fb := &fakeBackend{
		repoPath:         "repo",
		listBranchesFunc: staticBranches(local("z"), local("main"), local("main"), remote("origin/main")),
	}
	got, err := NewWithBackend(fb).LocalBranchNames(context.Background())
	if err != nil {
		t.Fatalf("LocalBranchNames() error = %v", err)
	}
	if !slices.Equal(got, []string{"main", "z"}) {
		t.Fatalf("LocalBranchNames() = %#v", got)
	}
}
