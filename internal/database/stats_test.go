package database

import "testing"

func TestGetStatsEmpty(t *testing.T) {
	db := openTestDB(t)

	stats, err := db.GetStats("2026-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalTrades != 0 || stats.TotalMembers != 0 || stats.TotalCommittees != 0 {
		t.Errorf("expected zero totals, got %+v", stats)
	}
	if len(stats.TopTradedStocks) != 0 {
		t.Errorf("expected no top stocks, got %+v", stats.TopTradedStocks)
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	dem := insertTestMember(t, db, "Jane Smith", "Senate", "CA", ptr("Democrat"))
	unknown := insertTestMember(t, db, "John Doe", "House", "TX", nil)

	insertTestTrade(t, db, dem, "AAPL", "Buy", "2026-02-01T00:00:00Z")
	insertTestTrade(t, db, dem, "AAPL", "Sell", "2026-02-02T00:00:00Z")
	insertTestTrade(t, db, unknown, "MSFT", "Buy", "2025-06-01T00:00:00Z")

	if _, err := db.InsertCommittee(&Committee{
		Name: "Committee on Finance", Code: "SSFI", Chamber: "Senate",
	}); err != nil {
		t.Fatalf("inserting committee: %v", err)
	}

	stats, err := db.GetStats("2026-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalTrades != 3 || stats.TotalMembers != 2 || stats.TotalCommittees != 1 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.RecentTradesCount != 2 {
		t.Errorf("expected 2 recent trades, got %d", stats.RecentTradesCount)
	}
	if len(stats.TopTradedStocks) != 2 || stats.TopTradedStocks[0].Ticker != "AAPL" || stats.TopTradedStocks[0].TradeCount != 2 {
		t.Errorf("unexpected top stocks: %+v", stats.TopTradedStocks)
	}
	if stats.TradesByChamber["Senate"] != 2 || stats.TradesByChamber["House"] != 1 {
		t.Errorf("unexpected chamber counts: %+v", stats.TradesByChamber)
	}
	if stats.TradesByParty["Democrat"] != 2 || stats.TradesByParty["Unknown"] != 1 {
		t.Errorf("unexpected party counts: %+v", stats.TradesByParty)
	}
}
