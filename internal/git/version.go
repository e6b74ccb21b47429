package git

import (
	"context"

	gitbackend "github.com/thiagokokada/git-branches/internal/git/backend"
)

func GitVersion(ctx context.Context, gitPath string) (string, error) {
	return gitbackend.GitVersion(ctx, gitPath)
}

func MinGitVersion() string {
	return gitbackend.MinGitVersion()
}
