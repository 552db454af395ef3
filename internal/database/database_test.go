package database

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(s string) *string { return &s }

func fptr(f float64) *float64 { return &f }

func insertTestMember(t *testing.T, db *DB, name, chamber, state string, party *string) int64 {
	t.Helper()
	id, err := db.InsertMember(&Member{Name: name, Chamber: chamber, State: state, Party: party})
	if err != nil {
		t.Fatalf("inserting member: %v", err)
	}
	return id
}

func insertTestTrade(t *testing.T, db *DB, memberID int64, ticker, txType, txDate string) int64 {
	t.Helper()
	id, err := db.InsertTrade(&Trade{
		MemberID:        memberID,
		Ticker:          ticker,
		TransactionType: txType,
		TransactionDate: txDate,
		AmountMin:       fptr(1000),
		AmountMax:       fptr(15000),
		Source:          "Senate Stock Watcher",
	})
	if err != nil {
		t.Fatalf("inserting trade: %v", err)
	}
	return id
}

func TestInsertMember(t *testing.T) {
	db := openTestDB(t)
	id := insertTestMember(t, db, "Jane Smith", "Senate", "CA", ptr("Democrat"))
	if id == 0 {
		t.Error("expected non-zero member ID")
	}

	m, err := db.GetMemberByID(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected member, got nil")
	}
	if m.Name != "Jane Smith" || m.Chamber != "Senate" || m.State != "CA" {
		t.Errorf("unexpected member: %+v", m)
	}
	if m.Party == nil || *m.Party != "Democrat" {
		t.Errorf("expected party Democrat, got %v", m.Party)
	}
}

func TestGetMemberByIDNotFound(t *testing.T) {
	db := openTestDB(t)
	m, err := db.GetMemberByID(999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil for missing member, got %+v", m)
	}
}

func TestUpdateMemberContact(t *testing.T) {
	db := openTestDB(t)
	id := insertTestMember(t, db, "John Doe", "House", "TX", nil)

	if err := db.UpdateMemberContact(id, ptr("123 Cannon"), ptr("202-555-0100"), ptr("https://doe.house.gov")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := db.GetMemberByID(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Office == nil || *m.Office != "123 Cannon" {
		t.Errorf("expected office updated, got %v", m.Office)
	}
	if m.Phone == nil || *m.Phone != "202-555-0100" {
		t.Errorf("expected phone updated, got %v", m.Phone)
	}
}

func TestListMembersByChamber(t *testing.T) {
	db := openTestDB(t)
	insertTestMember(t, db, "A Senator", "Senate", "CA", nil)
	insertTestMember(t, db, "B Senator", "Senate", "NY", nil)
	insertTestMember(t, db, "C Rep", "House", "TX", nil)

	chamber := "Senate"
	members, err := db.ListMembers(MemberFilter{Chamber: &chamber, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 senators, got %d", len(members))
	}
}

func TestListMembersHasTrades(t *testing.T) {
	db := openTestDB(t)
	trader := insertTestMember(t, db, "Active Trader", "Senate", "CA", nil)
	insertTestMember(t, db, "Quiet Member", "Senate", "NY", nil)
	insertTestTrade(t, db, trader, "AAPL", "Buy", "2026-01-15T00:00:00Z")

	yes := true
	members, err := db.ListMembers(MemberFilter{HasTrades: &yes, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Active Trader" {
		t.Errorf("expected only the trading member, got %+v", members)
	}

	no := false
	members, err = db.ListMembers(MemberFilter{HasTrades: &no, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 || members[0].Name != "Quiet Member" {
		t.Errorf("expected only the non-trading member, got %+v", members)
	}
}

func TestSearchMembers(t *testing.T) {
	db := openTestDB(t)
	insertTestMember(t, db, "Nancy Johnson", "House", "CT", nil)
	insertTestMember(t, db, "Tim Johnson", "Senate", "SD", nil)
	insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)

	members, err := db.SearchMembers("johnson", 0, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 matches for johnson, got %d", len(members))
	}
}

func TestMostActiveMembers(t *testing.T) {
	db := openTestDB(t)
	busy := insertTestMember(t, db, "Busy Member", "Senate", "CA", nil)
	slow := insertTestMember(t, db, "Slow Member", "House", "TX", nil)
	insertTestMember(t, db, "No Trades", "Senate", "NY", nil)

	for i := 0; i < 3; i++ {
		insertTestTrade(t, db, busy, "AAPL", "Buy", "2026-01-15T00:00:00Z")
	}
	insertTestTrade(t, db, slow, "MSFT", "Sell", "2026-01-10T00:00:00Z")

	members, err := db.MostActiveMembers(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members with trades, got %d", len(members))
	}
	if members[0].Name != "Busy Member" {
		t.Errorf("expected Busy Member first, got %s", members[0].Name)
	}
}

func TestInsertTradeAndGet(t *testing.T) {
	db := openTestDB(t)
	memberID := insertTestMember(t, db, "Jane Smith", "Senate", "CA", ptr("Democrat"))

	id, err := db.InsertTrade(&Trade{
		MemberID:        memberID,
		Ticker:          "NVDA",
		CompanyName:     ptr("NVIDIA Corporation"),
		TransactionType: "Buy",
		TransactionDate: "2026-02-01T00:00:00Z",
		AmountExact:     fptr(50000),
		Source:          "Senate Stock Watcher",
		FilingDate:      ptr("2026-02-10T00:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := db.GetTradeByID(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected trade, got nil")
	}
	if got.Ticker != "NVDA" || got.TransactionType != "Buy" {
		t.Errorf("unexpected trade: %+v", got.Trade)
	}
	if got.AmountExact == nil || *got.AmountExact != 50000 {
		t.Errorf("expected exact amount 50000, got %v", got.AmountExact)
	}
	if got.Member.Name != "Jane Smith" {
		t.Errorf("expected joined member, got %+v", got.Member)
	}
}

func TestGetTradeByIDNotFound(t *testing.T) {
	db := openTestDB(t)
	got, err := db.GetTradeByID(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing trade, got %+v", got)
	}
}

func TestListTradesOrderedAndPaginated(t *testing.T) {
	db := openTestDB(t)
	memberID := insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)
	insertTestTrade(t, db, memberID, "AAPL", "Buy", "2026-01-01T00:00:00Z")
	insertTestTrade(t, db, memberID, "MSFT", "Sell", "2026-03-01T00:00:00Z")
	insertTestTrade(t, db, memberID, "NVDA", "Buy", "2026-02-01T00:00:00Z")

	trades, err := db.ListTrades(TradeFilter{Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}
	if trades[0].Ticker != "MSFT" || trades[1].Ticker != "NVDA" || trades[2].Ticker != "AAPL" {
		t.Errorf("expected newest-first order, got %s %s %s",
			trades[0].Ticker, trades[1].Ticker, trades[2].Ticker)
	}

	page, err := db.ListTrades(TradeFilter{Skip: 1, Limit: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page) != 1 || page[0].Ticker != "NVDA" {
		t.Errorf("expected second page to be NVDA, got %+v", page)
	}
}

func TestListTradesDateRange(t *testing.T) {
	db := openTestDB(t)
	memberID := insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)
	insertTestTrade(t, db, memberID, "OLD", "Buy", "2025-06-01T00:00:00Z")
	insertTestTrade(t, db, memberID, "MID", "Buy", "2026-01-15T00:00:00Z")
	insertTestTrade(t, db, memberID, "NEW", "Buy", "2026-03-01T00:00:00Z")

	trades, err := db.ListTrades(TradeFilter{
		StartDate: ptr("2026-01-01T00:00:00Z"),
		EndDate:   ptr("2026-02-01T00:00:00Z"),
		Limit:     100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 1 || trades[0].Ticker != "MID" {
		t.Errorf("expected only MID in range, got %+v", trades)
	}
}

func TestListTradesAmountFilter(t *testing.T) {
	db := openTestDB(t)
	memberID := insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)

	// Ranged amount 1k-15k and an exact 100k trade.
	insertTestTrade(t, db, memberID, "SMALL", "Buy", "2026-01-01T00:00:00Z")
	if _, err := db.InsertTrade(&Trade{
		MemberID: memberID, Ticker: "BIG", TransactionType: "Buy",
		TransactionDate: "2026-01-02T00:00:00Z", AmountExact: fptr(100000),
		Source: "Senate Stock Watcher",
	}); err != nil {
		t.Fatalf("inserting trade: %v", err)
	}

	trades, err := db.ListTrades(TradeFilter{MinAmount: fptr(50000), Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 1 || trades[0].Ticker != "BIG" {
		t.Errorf("expected only BIG above 50k, got %+v", trades)
	}
}

func TestListTradesByChamberAndParty(t *testing.T) {
	db := openTestDB(t)
	sen := insertTestMember(t, db, "A Senator", "Senate", "CA", ptr("Democrat"))
	rep := insertTestMember(t, db, "A Rep", "House", "TX", ptr("Republican"))
	insertTestTrade(t, db, sen, "AAPL", "Buy", "2026-01-01T00:00:00Z")
	insertTestTrade(t, db, rep, "MSFT", "Sell", "2026-01-02T00:00:00Z")

	chamber := "House"
	trades, err := db.ListTrades(TradeFilter{Chamber: &chamber, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 1 || trades[0].Ticker != "MSFT" {
		t.Errorf("expected only the House trade, got %+v", trades)
	}

	party := "Democrat"
	trades, err = db.ListTrades(TradeFilter{Party: &party, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 1 || trades[0].Ticker != "AAPL" {
		t.Errorf("expected only the Democrat trade, got %+v", trades)
	}
}

func TestRecentTrades(t *testing.T) {
	db := openTestDB(t)
	memberID := insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)
	insertTestTrade(t, db, memberID, "OLD", "Buy", "2025-01-01T00:00:00Z")
	insertTestTrade(t, db, memberID, "NEW", "Buy", "2026-02-01T00:00:00Z")

	trades, err := db.RecentTrades("2026-01-01T00:00:00Z", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 1 || trades[0].Ticker != "NEW" {
		t.Errorf("expected only the recent trade, got %+v", trades)
	}
}

func TestTradesByTicker(t *testing.T) {
	db := openTestDB(t)
	memberID := insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)
	insertTestTrade(t, db, memberID, "AAPL", "Buy", "2026-01-01T00:00:00Z")
	insertTestTrade(t, db, memberID, "AAPL", "Sell", "2026-02-01T00:00:00Z")
	insertTestTrade(t, db, memberID, "MSFT", "Buy", "2026-01-15T00:00:00Z")

	trades, err := db.TradesByTicker("AAPL", 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trades) != 2 {
		t.Errorf("expected 2 AAPL trades, got %d", len(trades))
	}
}

func TestInsertCommitteeAndLookup(t *testing.T) {
	db := openTestDB(t)
	id, err := db.InsertCommittee(&Committee{
		Name: "Committee on Finance", Code: "SSFI", Chamber: "Senate",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byCode, err := db.GetCommitteeByCode("SSFI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byCode == nil || byCode.ID != id {
		t.Errorf("expected committee %d by code, got %+v", id, byCode)
	}

	missing, err := db.GetCommitteeByID(999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing committee, got %+v", missing)
	}
}

func TestListCommitteesSubcommitteeFilter(t *testing.T) {
	db := openTestDB(t)
	parentID, err := db.InsertCommittee(&Committee{
		Name: "Committee on Armed Services", Code: "SSAS", Chamber: "Senate",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := db.InsertCommittee(&Committee{
		Name: "Subcommittee on Cybersecurity", Code: "SSAS15", Chamber: "Senate",
		Subcommittee: true, ParentCommitteeID: &parentID,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sub := true
	subs, err := db.ListCommittees(CommitteeFilter{Subcommittee: &sub, ParentID: &parentID, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 || subs[0].Code != "SSAS15" {
		t.Errorf("expected the cybersecurity subcommittee, got %+v", subs)
	}

	main := false
	mains, err := db.ListCommittees(CommitteeFilter{Subcommittee: &main, Limit: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mains) != 1 || mains[0].Code != "SSAS" {
		t.Errorf("expected only the main committee, got %+v", mains)
	}
}

func TestCommitteeMembershipRoundTrip(t *testing.T) {
	db := openTestDB(t)
	memberID := insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)
	committeeID, err := db.InsertCommittee(&Committee{
		Name: "Committee on Finance", Code: "SSFI", Chamber: "Senate",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := db.InsertMembership(&CommitteeMembership{
		MemberID: memberID, CommitteeID: committeeID,
		Position: ptr("Chair"), StartDate: ptr("2025-01-03T00:00:00Z"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	members, err := db.CommitteeMembers(committeeID, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 1 || members[0].ID != memberID {
		t.Errorf("expected the chair as sole member, got %+v", members)
	}

	committees, err := db.MemberCommittees(memberID, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(committees) != 1 || committees[0].ID != committeeID {
		t.Errorf("expected one committee for member, got %+v", committees)
	}

	memberships, err := db.CommitteeMemberships(committeeID, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(memberships) != 1 || memberships[0].Position == nil || *memberships[0].Position != "Chair" {
		t.Errorf("expected a Chair membership, got %+v", memberships)
	}
}

func TestMemberRefs(t *testing.T) {
	db := openTestDB(t)
	insertTestMember(t, db, "Jane Smith", "Senate", "CA", nil)
	insertTestMember(t, db, "John Doe", "House", "TX", nil)

	refs, err := db.MemberRefs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 2 {
		t.Errorf("expected 2 refs, got %d", len(refs))
	}
}
