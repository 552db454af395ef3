package normalize

import (
	"testing"

	"github.com/mrsyedhasan/congresstrading/internal/database"
)

var testRefs = []database.MemberRef{
	{ID: 1, Name: "Sheldon Whitehouse", Chamber: "Senate"},
	{ID: 2, Name: "Nancy Pelosi", Chamber: "House"},
	{ID: 3, Name: "A. Mitchell McConnell Jr.", Chamber: "Senate"},
}

func TestResolveMemberExact(t *testing.T) {
	id, ok := ResolveMember(testRefs, "Nancy Pelosi", "House")
	if !ok || id != 2 {
		t.Errorf("expected member 2, got %d (ok=%v)", id, ok)
	}
}

func TestResolveMemberSubstring(t *testing.T) {
	// The stored name carries honorifics the raw feed omits.
	id, ok := ResolveMember(testRefs, "Mitchell McConnell", "Senate")
	if !ok || id != 3 {
		t.Errorf("expected member 3, got %d (ok=%v)", id, ok)
	}
}

func TestResolveMemberCaseInsensitive(t *testing.T) {
	id, ok := ResolveMember(testRefs, "sheldon whitehouse", "Senate")
	if !ok || id != 1 {
		t.Errorf("expected member 1, got %d (ok=%v)", id, ok)
	}
}

func TestResolveMemberChamberMismatch(t *testing.T) {
	if _, ok := ResolveMember(testRefs, "Nancy Pelosi", "Senate"); ok {
		t.Error("expected no match across chambers")
	}
}

func TestResolveMemberEmptyChamberMatchesAny(t *testing.T) {
	id, ok := ResolveMember(testRefs, "Nancy Pelosi", "")
	if !ok || id != 2 {
		t.Errorf("expected member 2 with chamber unknown, got %d (ok=%v)", id, ok)
	}
}

func TestResolveMemberNoMatch(t *testing.T) {
	if _, ok := ResolveMember(testRefs, "Jane Nobody", "Senate"); ok {
		t.Error("expected no match for unknown name")
	}
	if _, ok := ResolveMember(testRefs, "   ", "Senate"); ok {
		t.Error("expected no match for blank name")
	}
}
