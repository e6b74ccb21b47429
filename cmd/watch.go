package cmd

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
	"github.com/thiagokokada/git-branches/internal/config"
	"github.com/thiagokokada/git-branches/internal/git"
	"github.com/thiagokokada/git-branches/internal/render"
	"github.com/thiagokokada/git-branches/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var filter listFilter
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the branch listing and a diff every time it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ignoreCanceled(a.watch(cmd.Context(), filter.get()))
		},
	}
	cmd.Flags().Duration("debounce", watch.DefaultDelay, "wait for changes to settle this long before listing again")
	if err := a.v.BindPFlag(config.KeyWatchDebounce, cmd.Flags().Lookup("debounce")); err != nil {
		panic(fmt.Sprintf("bind flag debounce: %v", err))
	}
	filter.register(cmd)
	return cmd
}

type listingWatcher struct {
	mu   sync.Mutex
	app  *app
	svc  *git.Service
	last string
}

func (a *app) watch(ctx context.Context, filter git.Filter) error {
	svc, err := a.openService(ctx)
	if err != nil {
		return err
	}
	lw := &listingWatcher{app: a, svc: svc}
	if err := lw.refresh(ctx, filter); err != nil {
		return err
	}

	w, err := watch.New(svc.RepoPath(), a.cfg.Watch.Debounce, func() {
		if err := lw.refresh(ctx, filter); err != nil && ctx.Err() == nil {
			slog.Error("refresh branches", slog.Any("error", err))
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	slog.Info("watching for branch changes", slog.String("git_dir", w.GitDir()))
	return w.Run(ctx)
}

// refresh renders the listing and prints it in full the first time, then only
// as a diff against the previous listing.
func (lw *listingWatcher) refresh(ctx context.Context, filter git.Filter) error {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	branches, err := lw.svc.Branches(ctx, filter)
	if err != nil {
		return err
	}
	current, err := lw.svc.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	opts := lw.app.renderOptions()
	plain := opts
	plain.Color = false
	var buf bytes.Buffer
	if err := render.Branches(&buf, branches, current, plain); err != nil {
		return err
	}
	next := buf.String()

	first := lw.last == "" && next != ""
	prev := lw.last
	lw.last = next
	if first {
		return render.Branches(lw.app.stdout, branches, current, opts)
	}
	diff, err := listingDiff(prev, next, time.Now())
	if err != nil {
		return err
	}
	return render.Diff(lw.app.stdout, diff, opts)
}

func listingDiff(prev, next string, at time.Time) (string, error) {
	if prev == next {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(prev),
		B:        difflib.SplitLines(next),
		FromFile: "branches",
		ToFile:   "branches",
		ToDate:   at.Format(time.RFC3339),
		Context:  1,
	})
}
