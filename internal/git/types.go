package git

import gitbackend "github.com/thiagokokada/git-branches/internal/git/backend"

type (
	Signature     = gitbackend.Signature
	BranchTip     = gitbackend.BranchTip
	BranchType    = gitbackend.BranchType
	Branch        = gitbackend.Branch
	CreateOptions = gitbackend.CreateOptions
	DeleteOptions = gitbackend.DeleteOptions
)

const (
	BranchLocal  = gitbackend.BranchLocal
	BranchRemote = gitbackend.BranchRemote
)

// Filter selects which branch namespaces a listing covers.
type Filter uint8

const (
	FilterAll Filter = iota
	FilterLocal
	FilterRemote
)

func (f Filter) String() string {
	switch f {
	case FilterLocal:
		return "local"
	case FilterRemote:
		return "remote"
	default:
		return "all"
	}
}

func (f Filter) prefixes() []string {
	switch f {
	case FilterLocal:
		return []string{gitbackend.LocalBranchPrefix}
	case FilterRemote:
		return []string{gitbackend.RemoteBranchPrefix}
	default:
		return []string{gitbackend.LocalBranchPrefix, gitbackend.RemoteBranchPrefix}
	}
}

func (f Filter) matches(b Branch) bool {
	switch f {
	case FilterLocal:
		return b.Type == BranchLocal
	case FilterRemote:
		return b.Type == BranchRemote
	default:
		return true
	}
}
