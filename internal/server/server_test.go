package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mrsyedhasan/congresstrading/internal/config"
	"github.com/mrsyedhasan/congresstrading/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestServer(t *testing.T, db *database.DB) *Server {
	t.Helper()
	return New(&config.Config{}, db)
}

func ptr(s string) *string { return &s }

func fptr(f float64) *float64 { return &f }

func seedMember(t *testing.T, db *database.DB, name, chamber, state string) int64 {
	t.Helper()
	id, err := db.InsertMember(&database.Member{
		Name: name, Chamber: chamber, State: state, Party: ptr("Democrat"),
	})
	if err != nil {
		t.Fatalf("seeding member: %v", err)
	}
	return id
}

func seedTrade(t *testing.T, db *database.DB, memberID int64, ticker, date string) int64 {
	t.Helper()
	id, err := db.InsertTrade(&database.Trade{
		MemberID: memberID, Ticker: ticker, TransactionType: "Buy",
		TransactionDate: date, AmountMin: fptr(1000), AmountMax: fptr(15000),
		Source: "Senate Stock Watcher",
	})
	if err != nil {
		t.Fatalf("seeding trade: %v", err)
	}
	return id
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthRoute(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	for _, path := range []string{"/health", "/api/health"} {
		if rec := doGet(t, srv, path); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := doGet(t, srv, "/api/health")
	body := decode[map[string]string](t, rec)
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %q", body["status"])
	}
	if body["timestamp"] == "" {
		t.Error("expected a timestamp")
	}
}

func TestListTrades(t *testing.T) {
	db := openTestDB(t)
	memberID := seedMember(t, db, "Jane Smith", "Senate", "CA")
	seedTrade(t, db, memberID, "AAPL", "2026-02-01T00:00:00Z")
	seedTrade(t, db, memberID, "MSFT", "2026-03-01T00:00:00Z")

	srv := newTestServer(t, db)
	rec := doGet(t, srv, "/api/trades")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	trades := decode[[]tradeResponse](t, rec)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].Ticker != "MSFT" {
		t.Errorf("expected newest trade first, got %s", trades[0].Ticker)
	}
	if trades[0].Member == nil || trades[0].Member.Name != "Jane Smith" {
		t.Errorf("expected embedded member, got %+v", trades[0].Member)
	}
}

func TestListTradesTickerFilter(t *testing.T) {
	db := openTestDB(t)
	memberID := seedMember(t, db, "Jane Smith", "Senate", "CA")
	seedTrade(t, db, memberID, "AAPL", "2026-02-01T00:00:00Z")
	seedTrade(t, db, memberID, "MSFT", "2026-03-01T00:00:00Z")

	srv := newTestServer(t, db)
	rec := doGet(t, srv, "/api/trades?ticker=aapl")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	trades := decode[[]tradeResponse](t, rec)
	if len(trades) != 1 || trades[0].Ticker != "AAPL" {
		t.Errorf("expected only AAPL, got %+v", trades)
	}
}

func TestListTradesLimitCeiling(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	rec := doGet(t, srv, "/api/trades?limit=5000")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	body := decode[errorBody](t, rec)
	if body.Detail == "" {
		t.Error("expected an error detail")
	}
}

func TestListTradesInvalidChamber(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	rec := doGet(t, srv, "/api/trades?chamber=parliament")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestGetTrade(t *testing.T) {
	db := openTestDB(t)
	memberID := seedMember(t, db, "Jane Smith", "Senate", "CA")
	tradeID := seedTrade(t, db, memberID, "AAPL", "2026-02-01T00:00:00Z")

	srv := newTestServer(t, db)
	rec := doGet(t, srv, "/api/trades/"+itoa(tradeID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	trade := decode[tradeResponse](t, rec)
	if trade.ID != tradeID || trade.Ticker != "AAPL" {
		t.Errorf("unexpected trade: %+v", trade)
	}
	if trade.Member == nil {
		t.Error("expected embedded member")
	}
}

func TestGetTradeNotFound(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	rec := doGet(t, srv, "/api/trades/999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRecentTradesDaysValidation(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	rec := doGet(t, srv, "/api/trades/recent?days=0")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for days=0, got %d", rec.Code)
	}
	rec = doGet(t, srv, "/api/trades/recent?days=400")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for days=400, got %d", rec.Code)
	}
	rec = doGet(t, srv, "/api/trades/recent")
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for defaults, got %d", rec.Code)
	}
}

func TestStatsEmpty(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	rec := doGet(t, srv, "/api/trades/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	stats := decode[statsResponse](t, rec)
	if stats.TotalTrades != 0 || stats.TotalMembers != 0 {
		t.Errorf("expected zero totals, got %+v", stats)
	}
	if stats.TopTradedStocks == nil {
		t.Error("expected empty array for top stocks, not null")
	}
}

func TestTradesByMemberNotFound(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	rec := doGet(t, srv, "/api/trades/by-member/999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestTradesByTicker(t *testing.T) {
	db := openTestDB(t)
	memberID := seedMember(t, db, "Jane Smith", "Senate", "CA")
	seedTrade(t, db, memberID, "AAPL", "2026-02-01T00:00:00Z")
	seedTrade(t, db, memberID, "MSFT", "2026-03-01T00:00:00Z")

	srv := newTestServer(t, db)
	rec := doGet(t, srv, "/api/trades/by-ticker/aapl")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	trades := decode[[]tradeResponse](t, rec)
	if len(trades) != 1 || trades[0].Ticker != "AAPL" {
		t.Errorf("expected the AAPL trade, got %+v", trades)
	}
}

func TestListMembersAndChamberRoutes(t *testing.T) {
	db := openTestDB(t)
	seedMember(t, db, "Jane Smith", "Senate", "CA")
	seedMember(t, db, "John Doe", "House", "TX")

	srv := newTestServer(t, db)

	rec := doGet(t, srv, "/api/members")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if members := decode[[]memberResponse](t, rec); len(members) != 2 {
		t.Errorf("expected 2 members, got %d", len(members))
	}

	rec = doGet(t, srv, "/api/members/by-chamber/senate")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	members := decode[[]memberResponse](t, rec)
	if len(members) != 1 || members[0].Chamber != "Senate" {
		t.Errorf("expected the senator, got %+v", members)
	}

	rec = doGet(t, srv, "/api/members/by-chamber/parliament")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad chamber, got %d", rec.Code)
	}
}

func TestSearchMembers(t *testing.T) {
	db := openTestDB(t)
	seedMember(t, db, "Jane Smith", "Senate", "CA")
	seedMember(t, db, "John Doe", "House", "TX")

	srv := newTestServer(t, db)
	rec := doGet(t, srv, "/api/members/search/smith")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	members := decode[[]memberResponse](t, rec)
	if len(members) != 1 || members[0].Name != "Jane Smith" {
		t.Errorf("expected Jane Smith, got %+v", members)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	srv := newTestServer(t, openTestDB(t))

	rec := doGet(t, srv, "/api/members/999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCommitteeRoutes(t *testing.T) {
	db := openTestDB(t)
	memberID := seedMember(t, db, "Jane Smith", "Senate", "CA")
	parentID, err := db.InsertCommittee(&database.Committee{
		Name: "Committee on Finance", Code: "SSFI", Chamber: "Senate",
	})
	if err != nil {
		t.Fatalf("seeding committee: %v", err)
	}
	if _, err := db.InsertCommittee(&database.Committee{
		Name: "Subcommittee on Taxation", Code: "SSFI03", Chamber: "Senate",
		Subcommittee: true, ParentCommitteeID: &parentID,
	}); err != nil {
		t.Fatalf("seeding subcommittee: %v", err)
	}
	if _, err := db.InsertMembership(&database.CommitteeMembership{
		MemberID: memberID, CommitteeID: parentID, Position: ptr("Chair"),
	}); err != nil {
		t.Fatalf("seeding membership: %v", err)
	}

	srv := newTestServer(t, db)

	rec := doGet(t, srv, "/api/committees/main")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	mains := decode[[]committeeResponse](t, rec)
	if len(mains) != 1 || mains[0].Code != "SSFI" {
		t.Errorf("expected the main committee, got %+v", mains)
	}

	rec = doGet(t, srv, "/api/committees/subcommittees?parent_committee_id="+itoa(parentID))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	subs := decode[[]committeeResponse](t, rec)
	if len(subs) != 1 || subs[0].Code != "SSFI03" {
		t.Errorf("expected the subcommittee, got %+v", subs)
	}

	rec = doGet(t, srv, "/api/committees/"+itoa(parentID)+"/members")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if members := decode[[]memberResponse](t, rec); len(members) != 1 {
		t.Errorf("expected 1 committee member, got %d", len(members))
	}

	rec = doGet(t, srv, "/api/committees/member/"+itoa(memberID)+"/committees")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	committees := decode[[]committeeResponse](t, rec)
	if len(committees) != 1 || committees[0].ID != parentID {
		t.Errorf("expected the finance committee, got %+v", committees)
	}

	rec = doGet(t, srv, "/api/committees/999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
