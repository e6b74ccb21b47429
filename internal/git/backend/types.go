package backend

import (
	"strings"
	"time"
)

type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// BranchTip is the commit a branch points to at the time of the query.
type BranchTip struct {
	Hash         string
	Summary      string
	Body         string
	ParentHashes []string
	Author       Signature
}

type BranchType uint8

const (
	BranchLocal BranchType = iota
	BranchRemote
)

func (t BranchType) String() string {
	switch t {
	case BranchRemote:
		return "remote"
	default:
		return "local"
	}
}

type Branch struct {
	Name     string // short name: main, origin/main
	Upstream string // short upstream name, empty when the branch tracks nothing
	Tip      BranchTip
	Type     BranchType
	Ref      string // full ref path: refs/heads/main
}

func (b Branch) IsLocal() bool {
	return b.Type == BranchLocal
}

func (b Branch) HasUpstream() bool {
	return b.Upstream != ""
}

// Remote returns the remote a branch belongs to: the upstream's remote for local
// branches and the leading path element for remote-tracking branches.
func (b Branch) Remote() string {
	src := b.Name
	if b.IsLocal() {
		src = b.Upstream
	}
	remote, _, ok := strings.Cut(src, "/")
	if !ok {
		return ""
	}
	return remote
}

// NameWithoutRemote strips the remote from remote-tracking branch names.
func (b Branch) NameWithoutRemote() string {
	if b.IsLocal() {
		return b.Name
	}
	_, name, ok := strings.Cut(b.Name, "/")
	if !ok {
		return b.Name
	}
	return name
}

// upstreamBranchName is the branch name on the remote side of the upstream.
func (b Branch) upstreamBranchName() string {
	if !b.IsLocal() {
		return b.NameWithoutRemote()
	}
	_, name, ok := strings.Cut(b.Upstream, "/")
	if !ok {
		return b.Name
	}
	return name
}
