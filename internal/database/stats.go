package database

// GetStats computes the dashboard aggregate statistics. recentCutoff is
// the RFC3339 timestamp 30 days before now; the caller supplies it so the
// rollup stays deterministic in tests.
func (db *DB) GetStats(recentCutoff string) (*Stats, error) {
	s := &Stats{
		TopTradedStocks: []TickerCount{},
		TradesByChamber: make(map[string]int),
		TradesByParty:   make(map[string]int),
	}

	var err error
	if s.TotalTrades, err = db.CountTrades(); err != nil {
		return nil, err
	}
	if s.TotalMembers, err = db.CountMembers(); err != nil {
		return nil, err
	}
	if s.TotalCommittees, err = db.CountCommittees(); err != nil {
		return nil, err
	}

	err = db.conn.QueryRow(
		"SELECT COUNT(*) FROM trades WHERE transaction_date >= ?", recentCutoff,
	).Scan(&s.RecentTradesCount)
	if err != nil {
		return nil, err
	}

	// Top 10 tickers by trade count; ticker order breaks count ties.
	rows, err := db.conn.Query(
		`SELECT ticker, COUNT(*) AS n FROM trades
		GROUP BY ticker ORDER BY n DESC, ticker ASC LIMIT 10`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var tc TickerCount
		if err := rows.Scan(&tc.Ticker, &tc.TradeCount); err != nil {
			return nil, err
		}
		s.TopTradedStocks = append(s.TopTradedStocks, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if s.TradesByChamber, err = db.tradeCountsBy("m.chamber"); err != nil {
		return nil, err
	}
	if s.TradesByParty, err = db.tradeCountsBy("COALESCE(m.party, 'Unknown')"); err != nil {
		return nil, err
	}

	return s, nil
}

func (db *DB) tradeCountsBy(expr string) (map[string]int, error) {
	rows, err := db.conn.Query(
		`SELECT ` + expr + `, COUNT(t.id) FROM trades t
		JOIN members m ON m.id = t.member_id GROUP BY 1`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key] = n
	}
	return counts, rows.Err()
}
