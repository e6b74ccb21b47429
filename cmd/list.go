package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thiagokokada/git-branches/internal/git"
	"github.com/thiagokokada/git-branches/internal/render"
)

func newListCmd(a *app) *cobra.Command {
	var filter listFilter
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List branches, most recently committed first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := a.openService(ctx)
			if err != nil {
				return err
			}
			branches, err := svc.Branches(ctx, filter.get())
			if err != nil {
				return err
			}
			current, err := svc.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			return render.Branches(a.stdout, branches, current, a.renderOptions())
		},
	}
	filter.register(cmd)
	return cmd
}

// listFilter holds the --local/--remote/--all flags.
type listFilter struct {
	local, remote, all bool
}

func (f *listFilter) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.local, "local", "l", false, "local branches only")
	fl.BoolVarP(&f.remote, "remote", "r", false, "remote-tracking branches only")
	fl.BoolVarP(&f.all, "all", "a", false, "local and remote-tracking branches (default)")
	cmd.MarkFlagsMutuallyExclusive("local", "remote", "all")
}

func (f *listFilter) get() git.Filter {
	switch {
	case f.local:
		return git.FilterLocal
	case f.remote:
		return git.FilterRemote
	default:
		return git.FilterAll
	}
}
