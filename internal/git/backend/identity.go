package backend

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// parseIdentity decodes a raw identity line such as
// "Jane Doe <jane@example.com> 1700000000 +0100".
func parseIdentity(raw string) (Signature, bool) {
	raw = strings.TrimSpace(raw)
	open := strings.LastIndexByte(raw, '<')
	closing := strings.LastIndexByte(raw, '>')
	if open < 0 || closing < open {
		return Signature{}, false
	}
	var sig object.Signature
	sig.Decode([]byte(raw))
	// Decode leaves When unset when the timestamp is missing or malformed.
	if sig.When.IsZero() {
		return Signature{}, false
	}
	return Signature{Name: sig.Name, Email: sig.Email, When: sig.When}, true
}
