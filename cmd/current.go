package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thiagokokada/git-branches/internal/render"
)

func newCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the checked out branch",
		Long: `Print the checked out branch. Nothing is printed when HEAD is detached or
the current branch has no commits yet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			current, err := svc.CurrentBranch(cmd.Context())
			if err != nil {
				return err
			}
			return render.Current(a.stdout, current, a.renderOptions())
		},
	}
}
