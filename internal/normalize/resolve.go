package normalize

import (
	"strings"

	"github.com/mrsyedhasan/congresstrading/internal/database"
)

// ResolveMember finds the member a raw subject name refers to, given a
// snapshot of existing members. A member matches when its stored name
// case-insensitively contains the candidate name and, when a chamber is
// known, the chambers are equal. Returns the matched ID and true, or
// zero and false when a new member needs to be created.
//
// Substring matching tolerates punctuation and middle-name variance in
// the sources, at the cost of occasional false merges ("John Smith"
// matches "John Smith Jr."). That imprecision is inherited deliberately;
// tightening it would change which members the collectors accrete to.
func ResolveMember(refs []database.MemberRef, name, chamber string) (int64, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return 0, false
	}
	for _, r := range refs {
		if chamber != "" && r.Chamber != chamber {
			continue
		}
		if strings.Contains(strings.ToLower(r.Name), needle) {
			return r.ID, true
		}
	}
	return 0, false
}
