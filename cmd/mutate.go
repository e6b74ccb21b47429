package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thiagokokada/git-branches/internal/git"
)

func newCreateCmd(a *app) *cobra.Command {
	var checkout bool
	cmd := &cobra.Command{
		Use:   "create <name> [<start-point>]",
		Short: "Create a branch",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := git.CreateOptions{Checkout: checkout}
			if len(args) == 2 {
				opts.StartPoint = args[1]
			}
			svc, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.CreateBranch(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().BoolVarP(&checkout, "checkout", "c", false, "check the new branch out")
	return cmd
}

func newRenameCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:               "rename <old> <new>",
		Aliases:           []string{"mv"},
		Short:             "Rename a local branch",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: a.completeLocalBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.RenameBranch(cmd.Context(), args[0], args[1], force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "rename even if the new name exists")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var opts git.DeleteOptions
	cmd := &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a branch",
		Long: `Delete a local branch. With --remote the branch it tracks is deleted on
its remote too, as long as a remote-tracking ref for it still exists.
Remote-tracking branches can only be deleted with --remote.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeLocalBranches,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.openService(cmd.Context())
			if err != nil {
				return err
			}
			return svc.DeleteBranch(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "delete even if not fully merged")
	cmd.Flags().BoolVar(&opts.Remote, "remote", false, "also delete the branch on its remote")
	return cmd
}
