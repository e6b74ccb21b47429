package render

import (
	"time"

	"github.com/thiagokokada/git-branches/internal/git"
)

// BranchView is the serialized form of a branch in json and yaml output.
type BranchView struct {
	Name     string     `json:"name" yaml:"name"`
	Type     string     `json:"type" yaml:"type"`
	Current  bool       `json:"current" yaml:"current"`
	Ref      string     `json:"ref" yaml:"ref"`
	Upstream string     `json:"upstream,omitempty" yaml:"upstream,omitempty"`
	Tip      CommitView `json:"tip" yaml:"tip"`
}

type CommitView struct {
	Hash    string        `json:"hash" yaml:"hash"`
	Summary string        `json:"summary" yaml:"summary"`
	Body    string        `json:"body,omitempty" yaml:"body,omitempty"`
	Parents []string      `json:"parents" yaml:"parents"`
	Author  SignatureView `json:"author" yaml:"author"`
}

type SignatureView struct {
	Name  string    `json:"name" yaml:"name"`
	Email string    `json:"email" yaml:"email"`
	When  time.Time `json:"when" yaml:"when"`
}

func isCurrent(b git.Branch, current *git.Branch) bool {
	return current != nil && b.IsLocal() && b.Ref == current.Ref
}

func NewBranchView(b git.Branch, current bool) BranchView {
	parents := b.Tip.ParentHashes
	if parents == nil {
		parents = []string{}
	}
	return BranchView{
		Name:     b.Name,
		Type:     b.Type.String(),
		Current:  current,
		Ref:      b.Ref,
		Upstream: b.Upstream,
		Tip: CommitView{
			Hash:    b.Tip.Hash,
			Summary: b.Tip.Summary,
			Body:    b.Tip.Body,
			Parents: parents,
			Author: SignatureView{
				Name:  b.Tip.Author.Name,
				Email: b.Tip.Author.Email,
				When:  b.Tip.Author.When,
			},
		},
	}
}

func NewBranchViews(branches []git.Branch, current *git.Branch) []BranchView {
	views := make([]BranchView, 0, len(branches))
	for _, b := range branches {
		views = append(views, NewBranchView(b, isCurrent(b, current)))
	}
	return views
}
