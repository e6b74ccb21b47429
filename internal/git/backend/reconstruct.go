package backend

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

type reconstructor struct {
	// reverseOrder compensates for platforms where for-each-ref returns the
	// committerdate sort reversed.
	reverseOrder  bool
	parseIdentity func(raw string) (Signature, bool)
}

func newReconstructor(reverseOrder bool) reconstructor {
	return reconstructor{reverseOrder: reverseOrder, parseIdentity: parseIdentity}
}

// branches maps records to branches in listing order. The first malformed record
// aborts the whole listing.
func (r reconstructor) branches(records []refRecord) ([]Branch, error) {
	branches := make([]Branch, 0, len(records))
	for _, rec := range records {
		branch, err := r.branch(rec)
		if err != nil {
			return nil, err
		}
		branches = append(branches, branch)
	}
	if r.reverseOrder {
		slices.Reverse(branches)
	}
	return branches, nil
}

func (r reconstructor) branch(rec refRecord) (Branch, error) {
	if rec.ShortName == "" {
		return Branch{}, fmt.Errorf("%w: empty branch name for %q", ErrDecode, rec.Ref)
	}
	author, ok := r.parseIdentity(rec.Author)
	if !ok {
		return Branch{}, fmt.Errorf("%w: couldn't parse author identity %q of %s", ErrDecode, rec.Author, rec.ShortName)
	}
	branchType := BranchRemote
	if plumbing.ReferenceName(rec.Ref).IsBranch() {
		branchType = BranchLocal
	}
	return Branch{
		Name:     rec.ShortName,
		Upstream: rec.Upstream,
		Type:     branchType,
		Ref:      rec.Ref,
		Tip: BranchTip{
			Hash:         rec.Hash,
			Summary:      rec.Subject,
			Body:         rec.Body,
			ParentHashes: parseParents(rec.Parents),
			Author:       author,
		},
	}, nil
}

// parseParents returns nil for root commits instead of a single empty hash.
func parseParents(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, " ")
}
