package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thiagokokada/git-branches/internal/buildinfo"
	"github.com/thiagokokada/git-branches/internal/git"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := buildinfo.Read()
			fmt.Fprintf(a.stdout, "git-branches %s\n", info)
			if info.GoVersion != "" {
				fmt.Fprintf(a.stdout, "go: %s\n", info.GoVersion)
			}
			gitVersion, err := git.GitVersion(cmd.Context(), a.cfg.Git)
			if err != nil {
				gitVersion = fmt.Sprintf("unavailable (%v)", err)
			}
			fmt.Fprintf(a.stdout, "git: %s (requires >= %s)\n", gitVersion, git.MinGitVersion())
			return nil
		},
	}
}
