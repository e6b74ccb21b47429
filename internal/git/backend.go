package git

import (
	"fmt"
	"strings"

	gitbackend "github.com/thiagokokada/git-branches/internal/git/backend"
)

type Backend = gitbackend.Backend

// BackendKind names a Backend implementation.
type BackendKind string

const (
	// BackendCLI shells out to git and supports every operation.
	BackendCLI BackendKind = "cli"
	// BackendNative reads the repository with go-git and cannot mutate it.
	BackendNative BackendKind = "native"
)

func ParseBackendKind(s string) (BackendKind, error) {
	switch k := BackendKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return BackendCLI, nil
	case BackendCLI, BackendNative:
		return k, nil
	default:
		return "", fmt.Errorf("unknown backend %q (want %q or %q)", s, BackendCLI, BackendNative)
	}
}
